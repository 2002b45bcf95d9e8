package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/phala-network/stakepool/metrics"
	"github.com/phala-network/stakepool/x/stakepool/types"
)

// HandlePoolNewReward admits reward r to pool pid, skimming commission to
// the owner and growing pool_acc. A no-op if the pool has no stake to pay.
// This only updates the accumulator; it does not move any coins. The
// mining subsystem calling this (directly, or via OnReward) is responsible
// for funding RewardEscrowModuleName with r's worth of coins, since that is
// what ClaimReward later pays out of.
func (k *Keeper) HandlePoolNewReward(ctx sdk.Context, pid uint64, r math.Int) error {
	pool := k.GetPool(ctx, pid)
	if pool == nil {
		return types.ErrPoolNotExist
	}
	pool.AddReward(r)
	k.SetPool(ctx, pool)
	rFloat, _ := math.LegacyNewDecFromInt(r).Float64()
	metrics.GetStakepoolCollector().RecordRewardAdmitted(strconv.FormatUint(pid, 10), rFloat)
	return nil
}

// SettleInfo is a single worker payout reported by the mining subsystem.
type SettleInfo struct {
	Worker types.WorkerPubKey
	Payout math.Int
}

// OnReward routes each worker's payout to its bound pool. A missing
// worker_in_pool entry for a reporting worker is a programming invariant
// violation in the mining subsystem; it is logged and skipped rather than
// panicking the whole batch.
func (k *Keeper) OnReward(ctx sdk.Context, settles []SettleInfo) {
	for _, s := range settles {
		workerHex := WorkerKeyToHex(s.Worker)
		pid, ok := k.GetWorkerPool(ctx, workerHex)
		if !ok {
			k.Logger().Error("on_reward: worker not bound to any pool", "worker", workerHex)
			continue
		}
		if err := k.HandlePoolNewReward(ctx, pid, s.Payout); err != nil {
			k.Logger().Error("on_reward: failed to settle reward", "pool_id", pid, "error", err)
		}
	}
}
