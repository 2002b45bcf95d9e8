package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

// QueryServer is the read-only query surface over stakepool state. It is
// not registered as a gRPC service: AppModule.RegisterServices constructs
// it but does not register it with the configurator.
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance.
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Pool returns a pool by id.
func (q *QueryServer) Pool(ctx context.Context, pid uint64) (*types.Pool, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx, pid)
	if pool == nil {
		return nil, types.ErrPoolNotExist
	}
	return pool, nil
}

// Pools returns every pool in the store.
func (q *QueryServer) Pools(ctx context.Context) []*types.Pool {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetAllPools(sdkCtx)
}

// UserStake returns a user's stake entry in a pool.
func (q *QueryServer) UserStake(ctx context.Context, pid uint64, user string) (*types.UserStake, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	stake := q.keeper.GetUserStake(sdkCtx, pid, user)
	if stake == nil {
		return nil, types.ErrStakeInfoNotFound
	}
	return stake, nil
}

// WithdrawQueue returns a pool's full FIFO withdraw queue, in order.
func (q *QueryServer) WithdrawQueue(ctx context.Context, pid uint64) []*types.WithdrawInfo {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetWithdrawQueue(sdkCtx, pid)
}

// WorkerPool returns the pool id a worker is bound to, if any.
func (q *QueryServer) WorkerPool(ctx context.Context, worker types.WorkerPubKey) (uint64, bool) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetWorkerPool(sdkCtx, WorkerKeyToHex(worker))
}

// LockedTotal returns an account's total locked stake across all pools,
// as recorded by the ledger adapter for the coins it holds in EscrowModuleName.
func (q *QueryServer) LockedTotal(ctx context.Context, account string) math.Int {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.Query(sdkCtx, account)
}

// PendingReward returns a user's currently pending (unsettled) reward in a
// pool, without mutating any state.
func (q *QueryServer) PendingReward(ctx context.Context, pid uint64, user string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx, pid)
	if pool == nil {
		return math.ZeroInt(), types.ErrPoolNotExist
	}
	stake := q.keeper.GetUserStake(sdkCtx, pid, user)
	if stake == nil {
		return math.ZeroInt(), types.ErrStakeInfoNotFound
	}
	return pool.PendingReward(stake), nil
}
