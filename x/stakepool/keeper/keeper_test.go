package keeper

import (
	"bytes"
	"context"
	"testing"

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

	"github.com/phala-network/stakepool/x/stakepool/types"
)

// mockMiningKeeper is a mock implementation of types.MiningKeeper for
// keeper-level tests, mirroring x/orderbook/keeper/benchmark_test.go's
// mockBenchPerpetualKeeper shape. bindErr/startErr, while set, make every
// Bind/StartMining call fail with that error. stops counts StopMining calls.
type mockMiningKeeper struct {
	deposits map[string]math.Int
	bindErr  error
	startErr error
	stops    int
}

func newMockMiningKeeper() *mockMiningKeeper {
	return &mockMiningKeeper{deposits: map[string]math.Int{}}
}

func (m *mockMiningKeeper) Bind(ctx context.Context, miner sdk.AccAddress, worker types.WorkerPubKey) error {
	return m.bindErr
}

func (m *mockMiningKeeper) SetDeposit(ctx context.Context, miner sdk.AccAddress, stake math.Int) error {
	m.deposits[miner.String()] = stake
	return nil
}

func (m *mockMiningKeeper) StartMining(ctx context.Context, miner sdk.AccAddress) error {
	return m.startErr
}

func (m *mockMiningKeeper) StopMining(ctx context.Context, miner sdk.AccAddress) error {
	m.stops++
	return nil
}

// mockRegistryKeeper reports every worker registered to whoever the test
// configures as operator, with an initial benchmark already on file unless
// noBenchmark is set.
type mockRegistryKeeper struct {
	operator    string
	noBenchmark bool
}

func (r mockRegistryKeeper) GetWorker(ctx context.Context, worker types.WorkerPubKey) (types.RegisteredWorker, bool) {
	if r.operator == "" {
		return types.RegisteredWorker{}, false
	}
	rw := types.RegisteredWorker{Operator: r.operator}
	if !r.noBenchmark {
		score := uint64(100)
		rw.InitialScore = &score
	}
	return rw, true
}

// mockBankKeeper is an in-memory ledger keyed by bech32 address.
type mockBankKeeper struct {
	balances map[string]math.Int
}

func newMockBankKeeper() *mockBankKeeper {
	return &mockBankKeeper{balances: map[string]math.Int{}}
}

func (b *mockBankKeeper) fund(addr string, amount math.Int) {
	b.balances[addr] = amount
}

func (b *mockBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	addr := senderAddr.String()
	amount := amt.AmountOf(types.BondDenom)
	have := b.balances[addr]
	if have.LT(amount) {
		return types.ErrInsufficientBalance
	}
	b.balances[addr] = have.Sub(amount)
	return nil
}

func (b *mockBankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	addr := recipientAddr.String()
	amount := amt.AmountOf(types.BondDenom)
	cur, ok := b.balances[addr]
	if !ok {
		cur = math.ZeroInt()
	}
	b.balances[addr] = cur.Add(amount)
	return nil
}

func (b *mockBankKeeper) SpendableCoins(ctx context.Context, addr sdk.AccAddress) sdk.Coins {
	amt, ok := b.balances[addr.String()]
	if !ok {
		amt = math.ZeroInt()
	}
	return sdk.NewCoins(sdk.NewCoin(types.BondDenom, amt))
}

// testAddr builds a deterministic, valid bech32 account address from a
// single repeated byte, so tests can refer to "staker A" / "staker B"
// without juggling real key material.
func testAddr(b byte) string {
	return sdk.AccAddress(bytes.Repeat([]byte{b}, 20)).String()
}

func setupTestKeeper(tb testing.TB) (*Keeper, sdk.Context, *mockBankKeeper, *mockMiningKeeper) {
	tb.Helper()
	return setupTestKeeperWithRegistry(tb, mockRegistryKeeper{operator: testAddr(0x09)})
}

func setupTestKeeperWithRegistry(tb testing.TB, registry mockRegistryKeeper) (*Keeper, sdk.Context, *mockBankKeeper, *mockMiningKeeper) {
	tb.Helper()

	storeKey := storetypes.NewKVStoreKey(types.ModuleName)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), storemetrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	bank := newMockBankKeeper()
	mining := newMockMiningKeeper()

	k := NewKeeper(cdc, storeKey, mining, registry, bank,
		"sp-authority", types.BondDenom, math.NewInt(1), 600, log.NewNopLogger())

	return k, ctx, bank, mining
}
