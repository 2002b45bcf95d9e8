package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	storemetrics "cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/phala-network/stakepool/x/stakepool/keeper"
	"github.com/phala-network/stakepool/x/stakepool/types"
)

// simMiningKeeper is an in-memory stand-in for the mining subsystem: binds
// and start/stop succeed unconditionally, and deposits are recorded per
// miner. CmdSimulate does not print these deposits.
type simMiningKeeper struct {
	deposits map[string]math.Int
}

func newSimMiningKeeper() *simMiningKeeper {
	return &simMiningKeeper{deposits: map[string]math.Int{}}
}

func (m *simMiningKeeper) Bind(ctx context.Context, miner sdk.AccAddress, worker types.WorkerPubKey) error {
	return nil
}

func (m *simMiningKeeper) SetDeposit(ctx context.Context, miner sdk.AccAddress, stake math.Int) error {
	m.deposits[miner.String()] = stake
	return nil
}

func (m *simMiningKeeper) StartMining(ctx context.Context, miner sdk.AccAddress) error {
	return nil
}

func (m *simMiningKeeper) StopMining(ctx context.Context, miner sdk.AccAddress) error {
	return nil
}

// simRegistryKeeper reports every worker as registered with a benchmark
// already on file, regardless of caller.
type simRegistryKeeper struct{}

func (r simRegistryKeeper) GetWorker(ctx context.Context, worker types.WorkerPubKey) (types.RegisteredWorker, bool) {
	score := uint64(1)
	return types.RegisteredWorker{Operator: "", InitialScore: &score}, true
}

// simBankKeeper is an in-memory ledger keyed by bech32 address, seeded with
// a generous balance the first time an address is touched.
type simBankKeeper struct {
	balances map[string]math.Int
	escrow   math.Int
}

func newSimBankKeeper() *simBankKeeper {
	return &simBankKeeper{balances: map[string]math.Int{}, escrow: math.ZeroInt()}
}

func (b *simBankKeeper) balanceOf(addr string) math.Int {
	if amt, ok := b.balances[addr]; ok {
		return amt
	}
	seed := math.NewInt(1_000_000_000)
	b.balances[addr] = seed
	return seed
}

func (b *simBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	addr := senderAddr.String()
	have := b.balanceOf(addr)
	amount := amt.AmountOf(types.BondDenom)
	if have.LT(amount) {
		return fmt.Errorf("insufficient balance")
	}
	b.balances[addr] = have.Sub(amount)
	b.escrow = b.escrow.Add(amount)
	return nil
}

func (b *simBankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	addr := recipientAddr.String()
	amount := amt.AmountOf(types.BondDenom)
	b.escrow = b.escrow.Sub(amount)
	b.balances[addr] = b.balanceOf(addr).Add(amount)
	return nil
}

func (b *simBankKeeper) SpendableCoins(ctx context.Context, addr sdk.AccAddress) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(types.BondDenom, b.balanceOf(addr.String())))
}

// CmdSimulate builds an in-memory keeper over a fresh IAVL store and runs a
// deposit, a reward admission, and a withdraw against it, printing the
// resulting pool and user state. It exists for local integration testing of
// the accounting math without a running node.
func CmdSimulate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [depositor] [amount] [reward] [withdraw-amount]",
		Short: "Run a deposit/reward/withdraw cycle against an in-memory store",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			depositor := args[0]
			amount, ok := math.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid amount: %s", args[1])
			}
			reward, ok := math.NewIntFromString(args[2])
			if !ok {
				return fmt.Errorf("invalid reward: %s", args[2])
			}
			withdrawAmount, ok := math.NewIntFromString(args[3])
			if !ok {
				return fmt.Errorf("invalid withdraw amount: %s", args[3])
			}

			storeKey := storetypes.NewKVStoreKey(types.ModuleName)
			db := dbm.NewMemDB()
			stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), storemetrics.NewNoOpMetrics())
			stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
			if err := stateStore.LoadLatestVersion(); err != nil {
				return err
			}
			ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

			interfaceRegistry := codectypes.NewInterfaceRegistry()
			cdc := codec.NewProtoCodec(interfaceRegistry)

			k := keeper.NewKeeper(
				cdc, storeKey,
				newSimMiningKeeper(), simRegistryKeeper{}, newSimBankKeeper(),
				"sim-authority", types.BondDenom, math.NewInt(1),
				600, log.NewNopLogger(),
			)

			pid := k.CreatePool(ctx, depositor)
			if err := k.Deposit(ctx, depositor, pid, amount); err != nil {
				return err
			}
			if err := k.HandlePoolNewReward(ctx, pid, reward); err != nil {
				return err
			}
			immediate, queued, err := k.Withdraw(ctx, depositor, pid, withdrawAmount)
			if err != nil {
				return err
			}

			pool := k.GetPool(ctx, pid)
			user := k.GetUserStake(ctx, pid, depositor)

			out, _ := json.MarshalIndent(map[string]any{
				"pool":               pool,
				"user_stake":         user,
				"withdraw_immediate": immediate.String(),
				"withdraw_queued":    queued.String(),
			}, "", "  ")
			fmt.Println(string(out))
			return nil
		},
	}
	return cmd
}
