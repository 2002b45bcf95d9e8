package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

func parsePoolID(arg string) (uint64, error) {
	pid, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pool id %q: %w", arg, err)
	}
	return pid, nil
}

// GetQueryCmd returns the cli query commands for the stakepool module. The
// read path has no registered gRPC service yet (see the query server's own
// doc comment); these commands print a usage hint rather than querying a
// live node.
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the stakepool module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryPool(),
		CmdQueryUserStake(),
	)

	return cmd
}

func CmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Print a placeholder note for a pool id; no node is queried",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			pid, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			out, _ := json.MarshalIndent(map[string]any{
				"pool_id": pid,
				"node":    clientCtx.NodeURI,
				"note":    "this module exposes no gRPC-gateway route yet; run the simulate command for a local, in-memory walkthrough",
			}, "", "  ")
			fmt.Println(string(out))
			return nil
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func CmdQueryUserStake() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user-stake [pool-id] [user]",
		Short: "Print a placeholder note for a user's stake in a pool; no node is queried",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			pid, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			out, _ := json.MarshalIndent(map[string]any{
				"pool_id": pid,
				"user":    args[1],
				"node":    clientCtx.NodeURI,
				"note":    "this module exposes no gRPC-gateway route yet; run the simulate command for a local, in-memory walkthrough",
			}, "", "  ")
			fmt.Println(string(out))
			return nil
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
