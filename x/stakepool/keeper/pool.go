package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

// CreatePool allocates the next pool id and inserts a zero-initialized pool
// owned by caller.
func (k *Keeper) CreatePool(ctx sdk.Context, caller string) uint64 {
	pid := k.nextPoolID(ctx)
	pool := types.NewPool(pid, caller)
	k.SetPool(ctx, pool)
	k.emit(func(h types.StakepoolHooks) { h.PoolCreated(ctx, caller, pid) })
	return pid
}

// SetCap sets the pool's capacity. cap must be at least the pool's current
// total_stake.
func (k *Keeper) SetCap(ctx sdk.Context, caller string, pid uint64, cap math.Int) error {
	pool := k.GetPool(ctx, pid)
	if pool == nil {
		return types.ErrPoolNotExist
	}
	if pool.Owner != caller {
		return types.ErrUnauthorizedPoolOwner
	}
	if cap.LT(pool.TotalStake) {
		return types.ErrInvalidCapacity
	}
	pool.Cap = &cap
	k.SetPool(ctx, pool)
	k.emit(func(h types.StakepoolHooks) { h.PoolCapacitySet(ctx, pid, cap) })
	return nil
}

// SetPayoutPref sets the pool's owner commission rate, clamped to [0,1].
func (k *Keeper) SetPayoutPref(ctx sdk.Context, caller string, pid uint64, rate math.LegacyDec) error {
	pool := k.GetPool(ctx, pid)
	if pool == nil {
		return types.ErrPoolNotExist
	}
	if pool.Owner != caller {
		return types.ErrUnauthorizedPoolOwner
	}
	if rate.IsNegative() {
		rate = math.LegacyZeroDec()
	}
	if rate.GT(math.LegacyOneDec()) {
		rate = math.LegacyOneDec()
	}
	pool.PayoutCommission = rate
	k.SetPool(ctx, pool)
	k.emit(func(h types.StakepoolHooks) { h.PoolCommissionSet(ctx, pid, rate) })
	return nil
}

// AddWorker binds a registered worker to a pool owned by caller, deriving
// the worker's deterministic miner sub-account and registering it with the
// mining subsystem.
func (k *Keeper) AddWorker(ctx sdk.Context, caller string, pid uint64, worker types.WorkerPubKey) (sdk.AccAddress, error) {
	workerHex := WorkerKeyToHex(worker)

	rw, found := k.registryKeeper.GetWorker(ctx, worker)
	if !found {
		return nil, types.ErrWorkerNotRegistered
	}
	if rw.Operator != caller {
		return nil, types.ErrUnauthorizedOperator
	}
	if rw.InitialScore == nil {
		return nil, types.ErrBenchmarkMissing
	}

	pool := k.GetPool(ctx, pid)
	if pool == nil {
		return nil, types.ErrPoolNotExist
	}
	if pool.Owner != caller {
		return nil, types.ErrUnauthorizedPoolOwner
	}
	if pool.HasWorker(workerHex) {
		return nil, types.ErrWorkerHasAdded
	}

	miner := PoolSubAccount(pid, worker)

	if err := k.miningKeeper.Bind(ctx, miner, worker); err != nil {
		return nil, types.ErrMinerBindingCallFailed
	}

	pool.Workers = append(pool.Workers, workerHex)
	k.SetPool(ctx, pool)
	k.SetWorkerPool(ctx, workerHex, pid)
	k.emit(func(h types.StakepoolHooks) { h.PoolWorkerAdded(ctx, pid, workerHex) })
	return miner, nil
}

// DestroyPool is a documented unimplemented operation: destroying a
// non-empty pool is out of scope (spec Non-goals), and a correct
// destruction would still need to require zero stake, an empty withdraw
// queue, and all miners stopped before cascade-deleting user stakes — a
// policy this module deliberately does not invent. Ownership is still
// checked so the error reflects a real caller/pool pair rather than
// masking a NotExist/authorization mistake behind "not implemented".
func (k *Keeper) DestroyPool(ctx sdk.Context, caller string, pid uint64) error {
	pool := k.GetPool(ctx, pid)
	if pool == nil {
		return types.ErrPoolNotExist
	}
	if pool.Owner != caller {
		return types.ErrUnauthorizedPoolOwner
	}
	return types.ErrDestroyNotImplemented
}
