package types_test

import (
	"testing"

	"cosmossdk.io/math"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

func TestNewPoolZeroValues(t *testing.T) {
	pool := types.NewPool(1, "owner")
	if pool.PoolID != 1 {
		t.Errorf("expected pool id 1, got %d", pool.PoolID)
	}
	if !pool.PoolAcc.IsZero() || !pool.TotalStake.IsZero() || !pool.FreeStake.IsZero() {
		t.Errorf("expected a new pool to start with zero accumulator and stake")
	}
	if !pool.PayoutCommission.IsZero() {
		t.Errorf("expected a new pool to start with zero commission")
	}
	if pool.HasWorker("anything") {
		t.Errorf("expected a new pool to have no bound workers")
	}
}

func TestPendingRewardZeroForZeroAmount(t *testing.T) {
	pool := types.NewPool(1, "owner")
	pool.PoolAcc = math.NewInt(500)
	user := types.NewUserStake(1, "user")

	if got := pool.PendingReward(user); !got.IsZero() {
		t.Errorf("expected zero pending reward for zero-amount stake, got %s", got)
	}
}

func TestAddRewardGrowsAccumulatorAndSkimsCommission(t *testing.T) {
	pool := types.NewPool(1, "owner")
	pool.TotalStake = math.NewInt(1000)
	pool.PayoutCommission = math.LegacyNewDecWithPrec(1, 1) // 10%

	commission := pool.AddReward(math.NewInt(100))
	if !commission.Equal(math.NewInt(10)) {
		t.Errorf("expected commission 10, got %s", commission)
	}
	if !pool.OwnerReward.Equal(math.NewInt(10)) {
		t.Errorf("expected owner_reward 10, got %s", pool.OwnerReward)
	}
	expectedAcc := math.NewInt(90).Mul(types.Scale).Quo(math.NewInt(1000))
	if !pool.PoolAcc.Equal(expectedAcc) {
		t.Errorf("expected pool_acc %s, got %s", expectedAcc, pool.PoolAcc)
	}
}

func TestAddRewardNoOpWithZeroTotalStake(t *testing.T) {
	pool := types.NewPool(1, "owner")
	before := pool.PoolAcc

	commission := pool.AddReward(math.NewInt(500))
	if !commission.IsZero() {
		t.Errorf("expected zero commission skimmed with no stake, got %s", commission)
	}
	if !pool.PoolAcc.Equal(before) {
		t.Errorf("expected pool_acc unchanged with no stake, got %s", pool.PoolAcc)
	}
}

func TestSettlePendingRewardMovesPendingAndReanchorsDebt(t *testing.T) {
	pool := types.NewPool(1, "owner")
	pool.TotalStake = math.NewInt(100)
	pool.AddReward(math.NewInt(100)) // pool_acc = 100 * SCALE / 100 = SCALE

	user := types.NewUserStake(1, "user")
	user.Amount = math.NewInt(100)

	user.SettlePendingReward(pool)
	if !user.AvailableRewards.Equal(math.NewInt(100)) {
		t.Errorf("expected available_rewards 100, got %s", user.AvailableRewards)
	}
	expectedDebt := user.Amount.Mul(pool.PoolAcc).Quo(types.Scale)
	if !user.UserDebt.Equal(expectedDebt) {
		t.Errorf("expected user_debt re-anchored to %s, got %s", expectedDebt, user.UserDebt)
	}

	// A second settle with no new reward must be a no-op.
	user.SettlePendingReward(pool)
	if !user.AvailableRewards.Equal(math.NewInt(100)) {
		t.Errorf("expected available_rewards unchanged on a second settle, got %s", user.AvailableRewards)
	}
}

func TestSaturatingSub(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{10, 3, 7},
		{3, 10, 0},
		{5, 5, 0},
	}
	for _, c := range cases {
		got := types.SaturatingSub(math.NewInt(c.a), math.NewInt(c.b))
		if !got.Equal(math.NewInt(c.want)) {
			t.Errorf("SaturatingSub(%d, %d) = %s, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestPoolAccMonotonicAcrossRewards(t *testing.T) {
	pool := types.NewPool(1, "owner")
	pool.TotalStake = math.NewInt(1000)

	prev := pool.PoolAcc
	for i := 0; i < 5; i++ {
		pool.AddReward(math.NewInt(137))
		if pool.PoolAcc.LT(prev) {
			t.Fatalf("expected pool_acc to never decrease, went from %s to %s", prev, pool.PoolAcc)
		}
		prev = pool.PoolAcc
	}
}
