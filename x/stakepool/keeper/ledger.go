package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

// EscrowModuleName is the module account that custodies deposited stake
// while it is locked. Corresponds to the source's LockId / PalletId
// namespace (types.LockID, types.PalletID).
const EscrowModuleName = types.ModuleName

// RewardEscrowModuleName is a distinct module account that ClaimReward pays
// out of. It is deliberately separate from EscrowModuleName: reward
// admission (reward.go's HandlePoolNewReward/OnReward) only grows pool_acc,
// it never moves coins, so paying rewards out of EscrowModuleName would
// draw on other stakers' locked principal. The mining subsystem that
// reports on_reward is assumed to fund RewardEscrowModuleName with the
// matching reward coins out of band (e.g. a mint, or a transfer from a
// separate treasury) before or alongside calling HandlePoolNewReward/
// OnReward; this module only accounts for the owner/staker split and does
// not itself source reward coins.
const RewardEscrowModuleName = types.ModuleName + "Reward"

// Ledger adapter: tracks per-account total locked stake across all pools
// and mirrors it as coin custody in the module escrow account. Spec.md
// §4.1's "update the lock to locked[who]" becomes, in a Cosmos bank model,
// moving the coins themselves into/out of the escrow account; the
// lockedTotalKey entry is the bookkeeping mirror used to answer `query`
// and to verify the testable property that it always equals the sum of a
// user's stake across all pools.

// Accrue increases who's locked total by amount and moves amount of denom
// into the module escrow account. All arithmetic saturates; amount must
// already be validated as non-negative by the caller.
func (k *Keeper) Accrue(ctx sdk.Context, who string, amount math.Int, denom string) error {
	if !amount.IsPositive() {
		return nil
	}
	addr, err := sdk.AccAddressFromBech32(who)
	if err != nil {
		return err
	}
	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, addr, EscrowModuleName, coins); err != nil {
		return err
	}
	k.setLockedTotal(ctx, who, k.lockedTotal(ctx, who).Add(amount))
	return nil
}

// Reduce decreases who's locked total by amount (saturating at zero) and
// releases amount of denom back from the module escrow account. If the
// locked total reaches zero the entry is removed entirely.
func (k *Keeper) Reduce(ctx sdk.Context, who string, amount math.Int, denom string) error {
	if !amount.IsPositive() {
		return nil
	}
	addr, err := sdk.AccAddressFromBech32(who)
	if err != nil {
		return err
	}
	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, EscrowModuleName, addr, coins); err != nil {
		return err
	}
	remaining := types.SaturatingSub(k.lockedTotal(ctx, who), amount)
	if remaining.IsZero() {
		k.GetStore(ctx).Delete(lockedTotalKey(who))
		return nil
	}
	k.setLockedTotal(ctx, who, remaining)
	return nil
}

// Query reads who's total locked stake across all pools, defaulting to zero.
func (k *Keeper) Query(ctx sdk.Context, who string) math.Int {
	return k.lockedTotal(ctx, who)
}

// HasSpendableBalance reports whether who's spendable balance of denom is
// at least amount, the free-balance precondition deposit must check.
func (k *Keeper) HasSpendableBalance(ctx sdk.Context, who string, amount math.Int, denom string) bool {
	addr, err := sdk.AccAddressFromBech32(who)
	if err != nil {
		return false
	}
	spendable := k.bankKeeper.SpendableCoins(ctx, addr)
	return spendable.AmountOf(denom).GTE(amount)
}

func (k *Keeper) lockedTotal(ctx sdk.Context, account string) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(lockedTotalKey(account))
	if bz == nil {
		return math.ZeroInt()
	}
	amt, ok := math.NewIntFromString(string(bz))
	if !ok {
		return math.ZeroInt()
	}
	return amt
}

func (k *Keeper) setLockedTotal(ctx sdk.Context, account string, amount math.Int) {
	store := k.GetStore(ctx)
	store.Set(lockedTotalKey(account), []byte(amount.String()))
}
