package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

// TestEndBlockerForceReleasesAgedQueue verifies the finalization hook
// stops a pool's miners once its queue head has aged past InsurancePeriod,
// and does not touch pools whose queue is still within the grace window.
// It must never mutate the withdraw_queue itself (spec §4.12) — only
// inspect it.
func TestEndBlockerForceReleasesAgedQueue(t *testing.T) {
	k, ctx, bank, mining := setupTestKeeper(t)
	operator := testAddr(0x09)
	staker := testAddr(0x02)
	bank.fund(staker, math.NewInt(1_000_000))

	start := time.Unix(1_700_000_000, 0)
	ctx = ctx.WithBlockTime(start)

	pid := k.CreatePool(ctx, operator)
	if err := k.Deposit(ctx, staker, pid, math.NewInt(100)); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	var worker types.WorkerPubKey
	worker[0] = 0x01
	if _, err := k.AddWorker(ctx, operator, pid, worker); err != nil {
		t.Fatalf("add_worker failed: %v", err)
	}
	if err := k.StartMining(ctx, operator, pid, worker, math.NewInt(100)); err != nil {
		t.Fatalf("start_mining failed: %v", err)
	}

	// free_stake is now 0: the withdraw queues entirely.
	if _, _, err := k.Withdraw(ctx, staker, pid, math.NewInt(100)); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}

	// Still within the grace window: EndBlocker must not force-stop.
	withinWindow := ctx.WithBlockTime(start.Add(60 * time.Second))
	if err := k.EndBlocker(withinWindow); err != nil {
		t.Fatalf("EndBlocker failed: %v", err)
	}
	if len(mining.deposits) != 1 {
		t.Fatalf("expected StartMining's single deposit record untouched, got %d entries", len(mining.deposits))
	}
	if mining.stops != 0 {
		t.Fatalf("expected no stop_mining call within the grace window, got %d", mining.stops)
	}
	q := k.GetWithdrawQueue(withinWindow, pid)
	if len(q) != 1 {
		t.Fatalf("expected EndBlocker to leave the queue untouched, got %d entries", len(q))
	}

	// Past InsurancePeriod (600s): EndBlocker must force-stop the pool's
	// miner, but the queue itself is unchanged (only on_cleanup or a deposit
	// actually drains it).
	pastWindow := ctx.WithBlockTime(start.Add(700 * time.Second))
	if err := k.EndBlocker(pastWindow); err != nil {
		t.Fatalf("EndBlocker failed: %v", err)
	}
	if mining.stops != 1 {
		t.Errorf("expected EndBlocker to force-stop the pool's single miner, got %d stop_mining calls", mining.stops)
	}
	q = k.GetWithdrawQueue(pastWindow, pid)
	if len(q) != 1 {
		t.Errorf("expected EndBlocker to never mutate the withdraw queue directly, got %d entries", len(q))
	}
}

func TestEndBlockerNoOpWithEmptyQueue(t *testing.T) {
	k, ctx, _, _ := setupTestKeeper(t)
	ctx = ctx.WithBlockTime(time.Unix(1_700_000_000, 0))
	if err := k.EndBlocker(ctx); err != nil {
		t.Fatalf("EndBlocker on an empty module should be a no-op, got %v", err)
	}
}
