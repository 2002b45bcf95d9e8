package keeper

import (
	"strconv"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/phala-network/stakepool/metrics"
)

// EndBlocker walks the global withdraw-timestamp index and force-stops
// miners for pools whose queue head has aged past InsurancePeriod. It never
// mutates a pool's withdraw_queue itself — the queue only drains through
// try_withdraw / try_process_withdraw_queue once OnCleanup returns freed
// stake.
func (k *Keeper) EndBlocker(ctx sdk.Context) error {
	blockHeight := ctx.BlockHeight()
	start := time.Now()
	now := ctx.BlockTime().Unix()

	agedBuckets := k.PopAgedBuckets(ctx, now)

	stopped := 0
	for _, bucket := range agedBuckets {
		for _, pid := range bucket.Pools {
			pool := k.GetPool(ctx, pid)
			if pool == nil {
				continue
			}
			head, ok := k.PeekFrontWithdrawQueue(ctx, pid)
			if !ok || now-head.StartTime <= k.insurancePeriod {
				continue
			}
			for _, workerHex := range pool.Workers {
				worker, err := WorkerKeyFromHex(workerHex)
				if err != nil {
					continue
				}
				miner := PoolSubAccount(pid, worker)
				if err := k.miningKeeper.StopMining(ctx, miner); err != nil {
					k.logger.Debug("endblock: stop_mining best-effort failure", "pool_id", pid, "worker", workerHex, "error", err)
				} else {
					stopped++
					metrics.GetStakepoolCollector().RecordForceRelease(strconv.FormatUint(pid, 10))
				}
			}
		}
	}

	duration := time.Since(start)
	k.logger.Debug("stakepool EndBlocker completed",
		"block", blockHeight,
		"total_ms", duration.Milliseconds(),
		"aged_buckets", len(agedBuckets),
		"miners_stopped", stopped,
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"stakepool_endblock",
			sdk.NewAttribute("block_height", math.NewInt(blockHeight).String()),
			sdk.NewAttribute("duration_ms", math.NewInt(duration.Milliseconds()).String()),
			sdk.NewAttribute("aged_buckets", math.NewInt(int64(len(agedBuckets))).String()),
			sdk.NewAttribute("miners_stopped", math.NewInt(int64(stopped)).String()),
		),
	)

	return nil
}
