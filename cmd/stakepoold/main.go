package main

import (
	"os"

	"cosmossdk.io/log"

	"github.com/phala-network/stakepool/cmd/stakepoold/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.NewLogger(os.Stderr).Error("failure when running stakepoold", "err", err)
		os.Exit(1)
	}
}
