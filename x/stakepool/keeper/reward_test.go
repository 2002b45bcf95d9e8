package keeper

import (
	"testing"

	"cosmossdk.io/math"
)

// TestBasicStakeAndReward covers spec scenario 1: staker A deposits 100,
// staker B deposits 400; inject reward of 500; expected pending A=100,
// B=400. After A claims: A receives 100, user_debt[A]=100; next identical
// reward of 500 yields pending A=100, B=800.
func TestBasicStakeAndReward(t *testing.T) {
	k, ctx, bank, _ := setupTestKeeper(t)
	owner := testAddr(0x01)
	stakerA := testAddr(0x02)
	stakerB := testAddr(0x03)
	bank.fund(stakerA, math.NewInt(1_000_000))
	bank.fund(stakerB, math.NewInt(1_000_000))

	pid := k.CreatePool(ctx, owner)
	if err := k.Deposit(ctx, stakerA, pid, math.NewInt(100)); err != nil {
		t.Fatalf("deposit A failed: %v", err)
	}
	if err := k.Deposit(ctx, stakerB, pid, math.NewInt(400)); err != nil {
		t.Fatalf("deposit B failed: %v", err)
	}

	if err := k.HandlePoolNewReward(ctx, pid, math.NewInt(500)); err != nil {
		t.Fatalf("handle_pool_new_reward failed: %v", err)
	}

	pool := k.GetPool(ctx, pid)
	userA := k.GetUserStake(ctx, pid, stakerA)
	userB := k.GetUserStake(ctx, pid, stakerB)

	if got := pool.PendingReward(userA); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected A pending 100, got %s", got)
	}
	if got := pool.PendingReward(userB); !got.Equal(math.NewInt(400)) {
		t.Errorf("expected B pending 400, got %s", got)
	}

	paid, err := k.ClaimReward(ctx, stakerA, pid, stakerA)
	if err != nil {
		t.Fatalf("claim_reward failed: %v", err)
	}
	if !paid.Equal(math.NewInt(100)) {
		t.Errorf("expected A to receive 100, got %s", paid)
	}

	userA = k.GetUserStake(ctx, pid, stakerA)
	expectedDebt := userA.Amount.Mul(pool.PoolAcc).Quo(math.NewInt(1_000_000))
	if !userA.UserDebt.Equal(expectedDebt) {
		t.Errorf("expected user_debt[A] re-anchored to %s, got %s", expectedDebt, userA.UserDebt)
	}

	// Idempotence: a second claim with no new reward transfers zero.
	paid, err = k.ClaimReward(ctx, stakerA, pid, stakerA)
	if err != nil {
		t.Fatalf("second claim_reward failed: %v", err)
	}
	if !paid.IsZero() {
		t.Errorf("expected idempotent claim to pay zero, got %s", paid)
	}

	if err := k.HandlePoolNewReward(ctx, pid, math.NewInt(500)); err != nil {
		t.Fatalf("second handle_pool_new_reward failed: %v", err)
	}
	pool = k.GetPool(ctx, pid)
	userA = k.GetUserStake(ctx, pid, stakerA)
	userB = k.GetUserStake(ctx, pid, stakerB)
	if got := pool.PendingReward(userA); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected A pending 100 after second reward, got %s", got)
	}
	if got := pool.PendingReward(userB); !got.Equal(math.NewInt(800)) {
		t.Errorf("expected B pending 800 after second reward, got %s", got)
	}
}

// TestCommission covers spec scenario 2: commission 50% parts-per-million;
// after a 500 reward, owner_reward += 250 and pool_acc grows by
// 250*10^6/S.
func TestCommission(t *testing.T) {
	k, ctx, bank, _ := setupTestKeeper(t)
	owner := testAddr(0x01)
	staker := testAddr(0x02)
	bank.fund(staker, math.NewInt(1_000_000))

	pid := k.CreatePool(ctx, owner)
	if err := k.SetPayoutPref(ctx, owner, pid, math.LegacyNewDecWithPrec(5, 1)); err != nil {
		t.Fatalf("set_payout_pref failed: %v", err)
	}
	if err := k.Deposit(ctx, staker, pid, math.NewInt(1000)); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	if err := k.HandlePoolNewReward(ctx, pid, math.NewInt(500)); err != nil {
		t.Fatalf("handle_pool_new_reward failed: %v", err)
	}

	pool := k.GetPool(ctx, pid)
	if !pool.OwnerReward.Equal(math.NewInt(250)) {
		t.Errorf("expected owner_reward 250, got %s", pool.OwnerReward)
	}
	expectedAcc := math.NewInt(250).Mul(math.NewInt(1_000_000)).Quo(pool.TotalStake)
	if !pool.PoolAcc.Equal(expectedAcc) {
		t.Errorf("expected pool_acc %s, got %s", expectedAcc, pool.PoolAcc)
	}
}

func TestAddRewardNoOpWithoutStake(t *testing.T) {
	k, ctx, _, _ := setupTestKeeper(t)
	owner := testAddr(0x01)
	pid := k.CreatePool(ctx, owner)

	if err := k.HandlePoolNewReward(ctx, pid, math.NewInt(500)); err != nil {
		t.Fatalf("handle_pool_new_reward failed: %v", err)
	}
	pool := k.GetPool(ctx, pid)
	if !pool.PoolAcc.IsZero() {
		t.Errorf("expected pool_acc to stay zero with no stake, got %s", pool.PoolAcc)
	}
	if !pool.OwnerReward.IsZero() {
		t.Errorf("expected owner_reward to stay zero with no stake, got %s", pool.OwnerReward)
	}
}
