package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

// Withdraw requests withdrawal of amount from pool pid on behalf of caller.
// Fulfilled immediately out of free_stake where possible; the remainder, if
// any, is queued. Returns the amounts released immediately and queued.
func (k *Keeper) Withdraw(ctx sdk.Context, caller string, pid uint64, amount math.Int) (immediate, queued math.Int, err error) {
	user := k.GetUserStake(ctx, pid, caller)
	if user == nil {
		return math.ZeroInt(), math.ZeroInt(), types.ErrStakeInfoNotFound
	}
	if !amount.IsPositive() || amount.GT(user.Amount) {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInvalidWithdrawAmount
	}

	pool := k.GetPool(ctx, pid)
	if pool == nil {
		return math.ZeroInt(), math.ZeroInt(), types.ErrPoolNotExist
	}

	user.SettlePendingReward(pool)
	now := ctx.BlockTime().Unix()

	if !k.IsWithdrawQueueEmpty(ctx, pid) {
		k.PushWithdrawQueue(ctx, pid, &types.WithdrawInfo{
			User:      caller,
			Amount:    amount,
			StartTime: now,
		})
		k.MaybeAddWithdrawQueue(ctx, now, pid)
		user.UserDebt = user.Amount.Mul(pool.PoolAcc).Quo(types.Scale)
		k.SetUserStake(ctx, user)
		k.SetPool(ctx, pool)
		k.recordPoolMetrics(ctx, pool)
		return math.ZeroInt(), amount, nil
	}

	immediate, queued = k.tryWithdraw(ctx, pool, user, amount, now)

	user.UserDebt = user.Amount.Mul(pool.PoolAcc).Quo(types.Scale)
	k.SetUserStake(ctx, user)
	k.SetPool(ctx, pool)
	k.recordPoolMetrics(ctx, pool)
	return immediate, queued, nil
}

// tryWithdraw fulfills amount out of pool.free_stake immediately, queuing
// any remainder. Mutates pool and user in place; callers persist.
func (k *Keeper) tryWithdraw(ctx sdk.Context, pool *types.Pool, user *types.UserStake, amount math.Int, now int64) (immediate, queued math.Int) {
	if pool.FreeStake.GTE(amount) {
		k.settleWithdraw(ctx, pool, user, amount)
		return amount, math.ZeroInt()
	}

	delta := pool.FreeStake
	remain := amount.Sub(delta)
	if delta.IsPositive() {
		k.settleWithdraw(ctx, pool, user, delta)
	}
	pool.FreeStake = math.ZeroInt()
	k.PushWithdrawQueue(ctx, pool.PoolID, &types.WithdrawInfo{
		User:      user.User,
		Amount:    remain,
		StartTime: now,
	})
	k.MaybeAddWithdrawQueue(ctx, now, pool.PoolID)
	return delta, remain
}

// settleWithdraw deducts delta from free_stake, total_stake, and the
// user's amount, releases it via the ledger, and emits Withdraw.
func (k *Keeper) settleWithdraw(ctx sdk.Context, pool *types.Pool, user *types.UserStake, delta math.Int) {
	if !delta.IsPositive() {
		return
	}
	pool.FreeStake = pool.FreeStake.Sub(delta)
	pool.TotalStake = pool.TotalStake.Sub(delta)
	user.Amount = user.Amount.Sub(delta)
	if err := k.Reduce(ctx, user.User, delta, k.denom); err != nil {
		k.Logger().Error("withdraw: ledger reduce failed", "user", user.User, "error", err)
		return
	}
	k.emit(func(h types.StakepoolHooks) { h.Withdrawn(ctx, pool.PoolID, user.User, delta) })
}

// tryProcessWithdrawQueue drains pool.withdraw_queue while free_stake > 0,
// touching only the head of the queue per iteration to bound cost. Persists
// the affected user stakes and queue entries, but only mutates pool in
// place; callers must persist pool themselves after this returns.
func (k *Keeper) tryProcessWithdrawQueue(ctx sdk.Context, pool *types.Pool) {
	for pool.FreeStake.IsPositive() {
		w, ok := k.PeekFrontWithdrawQueue(ctx, pool.PoolID)
		if !ok {
			return
		}
		user := k.GetUserStake(ctx, pool.PoolID, w.User)
		if user == nil {
			// Programming invariant violation: a queued withdraw with no
			// backing user stake. Drop the entry rather than loop forever.
			k.PopFrontWithdrawQueue(ctx, pool.PoolID, w.Seq)
			continue
		}
		user.SettlePendingReward(pool)

		delta := w.Amount
		if pool.FreeStake.LT(delta) {
			delta = pool.FreeStake
		}
		k.settleWithdraw(ctx, pool, user, delta)
		w.Amount = w.Amount.Sub(delta)

		user.UserDebt = user.Amount.Mul(pool.PoolAcc).Quo(types.Scale)
		k.SetUserStake(ctx, user)

		if w.Amount.IsZero() {
			k.PopFrontWithdrawQueue(ctx, pool.PoolID, w.Seq)
		} else {
			k.SetWithdrawQueueFront(ctx, pool.PoolID, w)
			return
		}
	}
}

// ClaimReward settles caller's pending reward in pid, then pays the full
// available_rewards balance to target and zeroes it. Paid coins are drawn
// from RewardEscrowModuleName, not EscrowModuleName: see that constant's
// doc comment for the funding assumption this relies on.
func (k *Keeper) ClaimReward(ctx sdk.Context, caller string, pid uint64, target string) (math.Int, error) {
	user := k.GetUserStake(ctx, pid, caller)
	if user == nil {
		return math.ZeroInt(), types.ErrStakeInfoNotFound
	}
	pool := k.GetPool(ctx, pid)
	if pool == nil {
		return math.ZeroInt(), types.ErrPoolNotExist
	}

	user.SettlePendingReward(pool)
	paid := user.AvailableRewards
	if paid.IsPositive() {
		addr, err := sdk.AccAddressFromBech32(target)
		if err != nil {
			return math.ZeroInt(), err
		}
		coins := sdk.NewCoins(sdk.NewCoin(k.denom, paid))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, RewardEscrowModuleName, addr, coins); err != nil {
			return math.ZeroInt(), err
		}
	}
	user.AvailableRewards = math.ZeroInt()
	k.SetUserStake(ctx, user)
	k.emit(func(h types.StakepoolHooks) { h.RewardsClaimed(ctx, pid, caller, paid) })
	return paid, nil
}
