package cmd

import (
	"os"

	"cosmossdk.io/x/tx/signing"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/config"
	"github.com/cosmos/cosmos-sdk/client/debug"
	"github.com/cosmos/cosmos-sdk/client/keys"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authcli "github.com/cosmos/cosmos-sdk/x/auth/client/cli"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/cosmos/cosmos-sdk/x/auth/tx"
	"github.com/cosmos/gogoproto/proto"
	"github.com/spf13/cobra"

	stakepool "github.com/phala-network/stakepool/x/stakepool"
	stakepoolcli "github.com/phala-network/stakepool/x/stakepool/client/cli"
)

// defaultHome is where config and keys live for the standalone stakepool
// client; unlike cmd/perpdexd this binary never starts a node, so it has no
// need of app.DefaultNodeHome's full validator home layout.
var defaultHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	defaultHome = userHomeDir + "/.stakepoold"
}

// NewRootCmd creates the root command for stakepoold, a client-only binary
// for submitting stakepool transactions, querying pool state, and running
// the accounting math locally via the simulate command. It mirrors the
// client-context setup cmd/perpdexd/cmd performs, trimmed of everything
// that exists only to run a consensus node: no genesis/init/pruning/
// snapshot/server commands, since this module is not wired into a running
// chain binary (see the same standalone posture x/riverpool takes).
func NewRootCmd() *cobra.Command {
	interfaceRegistry, err := codectypes.NewInterfaceRegistryWithOptions(codectypes.InterfaceRegistryOptions{
		ProtoFiles: proto.HybridResolver,
		SigningOptions: signing.Options{
			AddressCodec:          address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
			ValidatorAddressCodec: address.NewBech32Codec(sdk.GetConfig().GetBech32ValidatorAddrPrefix()),
		},
	})
	if err != nil {
		panic(err)
	}
	appCodec := codec.NewProtoCodec(interfaceRegistry)
	amino := codec.NewLegacyAmino()

	std.RegisterInterfaces(interfaceRegistry)
	std.RegisterLegacyAminoCodec(amino)
	stakepool.AppModuleBasic{}.RegisterInterfaces(interfaceRegistry)
	stakepool.AppModuleBasic{}.RegisterLegacyAminoCodec(amino)

	txConfig, err := tx.NewTxConfigWithOptions(appCodec, tx.ConfigOptions{
		EnabledSignModes: tx.DefaultSignModes,
	})
	if err != nil {
		panic(err)
	}

	initClientCtx := client.Context{}.
		WithCodec(appCodec).
		WithInterfaceRegistry(interfaceRegistry).
		WithTxConfig(txConfig).
		WithLegacyAmino(amino).
		WithInput(os.Stdin).
		WithAccountRetriever(authtypes.AccountRetriever{}).
		WithHomeDir(defaultHome).
		WithViper("STAKEPOOL")

	rootCmd := &cobra.Command{
		Use:   "stakepoold",
		Short: "Stake pool accounting engine client",
		Long: `stakepoold submits stakepool transactions to a node that has the module
wired in, and can run the deposit/reward/withdraw accounting locally via the
simulate command. Its query commands print a placeholder and query no node.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			clientCtx := initClientCtx.WithCmdContext(cmd.Context())
			clientCtx, err := client.ReadPersistentCommandFlags(clientCtx, cmd.Flags())
			if err != nil {
				return err
			}
			clientCtx, err = config.ReadFromClientConfig(clientCtx)
			if err != nil {
				return err
			}
			return client.SetCmdClientContextHandler(clientCtx, cmd)
		},
	}

	rootCmd.AddCommand(
		stakepoolcli.GetTxCmd(),
		stakepoolcli.GetQueryCmd(),
		stakepoolcli.CmdSimulate(),
		authcli.GetSignCommand(),
		debug.Cmd(),
		keys.Commands(),
		VersionCmd(),
	)

	return rootCmd
}

// VersionCmd returns a command to print the version.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stakepoold version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println("stakepoold dev")
			return nil
		},
	}
}
