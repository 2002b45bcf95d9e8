package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/phala-network/stakepool/metrics"
	"github.com/phala-network/stakepool/x/stakepool/types"
)

// Deposit moves amount of the bond denom from caller into the pool,
// settling any pending reward first and draining the withdraw queue with
// the new liquidity before returning.
func (k *Keeper) Deposit(ctx sdk.Context, caller string, pid uint64, amount math.Int) error {
	if amount.LT(k.minDeposit) {
		return types.ErrLessThanMinDeposit
	}
	if !k.HasSpendableBalance(ctx, caller, amount, k.denom) {
		return types.ErrInsufficientBalance
	}

	pool := k.GetPool(ctx, pid)
	if pool == nil {
		return types.ErrPoolNotExist
	}
	if pool.Cap != nil {
		headroom := types.SaturatingSub(*pool.Cap, pool.TotalStake)
		if headroom.LT(amount) {
			return types.ErrStakeExceedCapacity
		}
	}

	user := k.GetOrCreateUserStake(ctx, pid, caller)
	user.SettlePendingReward(pool)
	user.Amount = user.Amount.Add(amount)
	user.UserDebt = user.Amount.Mul(pool.PoolAcc).Quo(types.Scale)

	if err := k.Accrue(ctx, caller, amount, k.denom); err != nil {
		return err
	}

	pool.TotalStake = pool.TotalStake.Add(amount)
	pool.FreeStake = pool.FreeStake.Add(amount)

	k.SetUserStake(ctx, user)
	k.SetPool(ctx, pool)

	k.tryProcessWithdrawQueue(ctx, pool)

	k.SetPool(ctx, pool)
	k.emit(func(h types.StakepoolHooks) { h.Deposited(ctx, pid, caller, amount) })

	k.recordPoolMetrics(ctx, pool)
	return nil
}

// recordPoolMetrics refreshes the exported TVL and withdraw-queue gauges
// for a pool after a state transition.
func (k *Keeper) recordPoolMetrics(ctx sdk.Context, pool *types.Pool) {
	poolID := strconv.FormatUint(pool.PoolID, 10)
	tvl, _ := math.LegacyNewDecFromInt(pool.TotalStake).Float64()
	metrics.GetStakepoolCollector().RecordTVL(poolID, tvl)

	queue := k.GetWithdrawQueue(ctx, pool.PoolID)
	queued := math.ZeroInt()
	for _, w := range queue {
		queued = queued.Add(w.Amount)
	}
	queuedFloat, _ := math.LegacyNewDecFromInt(queued).Float64()
	metrics.GetStakepoolCollector().RecordQueueState(poolID, len(queue), queuedFloat)
}
