package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

// StartMining commits stake from pool pid's free_stake to worker's miner
// sub-account and starts mining. Owner-only. If the mining subsystem
// rejects start_mining after accepting set_deposit, the deposit is rolled
// back to zero and the pool's free_stake is left untouched.
func (k *Keeper) StartMining(ctx sdk.Context, caller string, pid uint64, worker types.WorkerPubKey, stake math.Int) error {
	pool := k.GetPool(ctx, pid)
	if pool == nil {
		return types.ErrPoolNotExist
	}
	if pool.Owner != caller {
		return types.ErrUnauthorizedPoolOwner
	}
	workerHex := WorkerKeyToHex(worker)
	if !pool.HasWorker(workerHex) {
		return types.ErrWorkerHasNotAdded
	}
	if pool.FreeStake.LT(stake) {
		return types.ErrInsufficientStake
	}
	if status, ok := k.getWorkerMiningStatus(ctx, workerHex); ok && (status == workerStatusMining || status == workerStatusStopping) {
		return types.ErrPoolIsBusy
	}

	miner := PoolSubAccount(pid, worker)

	if err := k.miningKeeper.SetDeposit(ctx, miner, stake); err != nil {
		return types.ErrStartMiningCallFailed
	}
	if err := k.miningKeeper.StartMining(ctx, miner); err != nil {
		if rbErr := k.miningKeeper.SetDeposit(ctx, miner, math.ZeroInt()); rbErr != nil {
			k.Logger().Error("start_mining: failed to roll back deposit", "pool_id", pid, "worker", workerHex, "error", rbErr)
		}
		return types.ErrStartMiningCallFailed
	}

	pool.FreeStake = pool.FreeStake.Sub(stake)
	k.SetPool(ctx, pool)
	k.setWorkerMiningStatus(ctx, workerHex, workerStatusMining)
	return nil
}

// StopMining requests the mining subsystem stop worker's miner. Stake is
// restored asynchronously, via OnCleanup, once the subsystem's cool-down
// elapses.
func (k *Keeper) StopMining(ctx sdk.Context, caller string, pid uint64, worker types.WorkerPubKey) error {
	pool := k.GetPool(ctx, pid)
	if pool == nil {
		return types.ErrPoolNotExist
	}
	if pool.Owner != caller {
		return types.ErrUnauthorizedPoolOwner
	}
	workerHex := WorkerKeyToHex(worker)
	if !pool.HasWorker(workerHex) {
		return types.ErrWorkerHasNotAdded
	}
	if status, ok := k.getWorkerMiningStatus(ctx, workerHex); ok && status == workerStatusStopping {
		return types.ErrPoolIsBusy
	}

	miner := PoolSubAccount(pid, worker)
	if err := k.miningKeeper.StopMining(ctx, miner); err != nil {
		return err
	}
	k.setWorkerMiningStatus(ctx, workerHex, workerStatusStopping)
	return nil
}

// OnCleanup is invoked by the mining subsystem when worker's miner finishes
// stopping, returning deposit to the pool's free_stake. deposit may be less
// than what was originally committed (the mining subsystem's slashing path
// is out of scope here; see the design notes on this gap). The queue is
// then given a chance to drain with the newly freed liquidity.
func (k *Keeper) OnCleanup(ctx sdk.Context, worker types.WorkerPubKey, deposit math.Int) error {
	workerHex := WorkerKeyToHex(worker)
	pid, ok := k.GetWorkerPool(ctx, workerHex)
	if !ok {
		k.Logger().Error("on_cleanup: worker not bound to any pool", "worker", workerHex)
		return nil
	}
	pool := k.GetPool(ctx, pid)
	if pool == nil {
		return types.ErrPoolNotExist
	}

	pool.FreeStake = pool.FreeStake.Add(deposit)
	k.tryProcessWithdrawQueue(ctx, pool)
	k.SetPool(ctx, pool)
	k.recordPoolMetrics(ctx, pool)
	k.clearWorkerMiningStatus(ctx, workerHex)
	return nil
}
