package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

// TestStartMiningRejectsDoubleStart covers the state-transition guard:
// calling start_mining again on a worker that is already mining must fail
// with ErrPoolIsBusy rather than silently re-committing stake.
func TestStartMiningRejectsDoubleStart(t *testing.T) {
	k, ctx, bank, _ := setupTestKeeper(t)
	operator := testAddr(0x09)
	staker := testAddr(0x02)
	bank.fund(staker, math.NewInt(1_000_000))

	pid := k.CreatePool(ctx, operator)
	if err := k.Deposit(ctx, staker, pid, math.NewInt(200)); err != nil {
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

	if err := k.StartMining(ctx, operator, pid, worker, math.NewInt(50)); !errors.Is(err, types.ErrPoolIsBusy) {
		t.Errorf("expected ErrPoolIsBusy on a second start_mining, got %v", err)
	}
}

// TestStopMiningRejectsDoubleStop covers the matching guard on the other
// side of the transition: a second stop_mining before OnCleanup has fired
// must fail rather than issuing a redundant stop request.
func TestStopMiningRejectsDoubleStop(t *testing.T) {
	k, ctx, bank, _ := setupTestKeeper(t)
	operator := testAddr(0x09)
	staker := testAddr(0x02)
	bank.fund(staker, math.NewInt(1_000_000))

	pid := k.CreatePool(ctx, operator)
	if err := k.Deposit(ctx, staker, pid, math.NewInt(200)); err != nil {
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
	if err := k.StopMining(ctx, operator, pid, worker); err != nil {
		t.Fatalf("stop_mining failed: %v", err)
	}

	if err := k.StopMining(ctx, operator, pid, worker); !errors.Is(err, types.ErrPoolIsBusy) {
		t.Errorf("expected ErrPoolIsBusy on a second stop_mining, got %v", err)
	}

	// OnCleanup clears the transition, so the worker can be restarted.
	if err := k.OnCleanup(ctx, worker, math.NewInt(100)); err != nil {
		t.Fatalf("on_cleanup failed: %v", err)
	}
	if err := k.StartMining(ctx, operator, pid, worker, math.NewInt(100)); err != nil {
		t.Errorf("expected start_mining to succeed again after on_cleanup, got %v", err)
	}
}

// TestStartMiningRejectsWhileStopping covers starting a worker whose stop
// request is still in flight: OnCleanup hasn't landed yet, so the worker
// must not be restarted out from under the pending stop.
func TestStartMiningRejectsWhileStopping(t *testing.T) {
	k, ctx, bank, _ := setupTestKeeper(t)
	operator := testAddr(0x09)
	staker := testAddr(0x02)
	bank.fund(staker, math.NewInt(1_000_000))

	pid := k.CreatePool(ctx, operator)
	if err := k.Deposit(ctx, staker, pid, math.NewInt(200)); err != nil {
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
	if err := k.StopMining(ctx, operator, pid, worker); err != nil {
		t.Fatalf("stop_mining failed: %v", err)
	}

	if err := k.StartMining(ctx, operator, pid, worker, math.NewInt(50)); !errors.Is(err, types.ErrPoolIsBusy) {
		t.Errorf("expected ErrPoolIsBusy starting a worker with a stop in flight, got %v", err)
	}
}
