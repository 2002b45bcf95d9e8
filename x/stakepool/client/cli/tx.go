package cli

import (
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

// GetTxCmd returns the transaction commands for the stakepool module.
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Stakepool module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreatePool(),
		CmdAddWorker(),
		CmdSetCap(),
		CmdSetPayoutPref(),
		CmdDeposit(),
		CmdWithdraw(),
		CmdClaimReward(),
		CmdStartMining(),
		CmdStopMining(),
	)

	return cmd
}

func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool",
		Short: "Create a new, empty stake pool owned by the signer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgCreatePool{Owner: clientCtx.GetFromAddress().String()}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func CmdAddWorker() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-worker [pool-id] [worker-id-hex]",
		Short: "Bind a registered worker to a pool owned by the signer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			pid, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			msg := &types.MsgAddWorker{
				Owner:    clientCtx.GetFromAddress().String(),
				PoolID:   pid,
				WorkerID: args[1],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func CmdSetCap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-cap [pool-id] [cap]",
		Short: "Set a pool's stake capacity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			pid, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			msg := &types.MsgSetCap{
				Owner:  clientCtx.GetFromAddress().String(),
				PoolID: pid,
				Cap:    args[1],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func CmdSetPayoutPref() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-payout-pref [pool-id] [rate]",
		Short: "Set a pool's owner commission rate, a decimal in [0,1]",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			pid, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			msg := &types.MsgSetPayoutPref{
				Owner:  clientCtx.GetFromAddress().String(),
				PoolID: pid,
				Rate:   args[1],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func CmdDeposit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [pool-id] [amount]",
		Short: "Deposit stake into a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			pid, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			msg := &types.MsgDeposit{
				Depositor: clientCtx.GetFromAddress().String(),
				PoolID:    pid,
				Amount:    args[1],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func CmdWithdraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [pool-id] [amount]",
		Short: "Request withdrawal of stake from a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			pid, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			msg := &types.MsgWithdraw{
				Withdrawer: clientCtx.GetFromAddress().String(),
				PoolID:     pid,
				Amount:     args[1],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func CmdClaimReward() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim-reward [pool-id] [target]",
		Short: "Claim available rewards from a pool to target",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			pid, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			msg := &types.MsgClaimReward{
				Caller: clientCtx.GetFromAddress().String(),
				PoolID: pid,
				Target: args[1],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func CmdStartMining() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-mining [pool-id] [worker-id-hex] [stake]",
		Short: "Commit stake to a worker and start mining",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			pid, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			msg := &types.MsgStartMining{
				Owner:    clientCtx.GetFromAddress().String(),
				PoolID:   pid,
				WorkerID: args[1],
				Stake:    args[2],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func CmdStopMining() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop-mining [pool-id] [worker-id-hex]",
		Short: "Request a worker's miner stop; stake returns via on_cleanup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			pid, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			msg := &types.MsgStopMining{
				Owner:    clientCtx.GetFromAddress().String(),
				PoolID:   pid,
				WorkerID: args[1],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
