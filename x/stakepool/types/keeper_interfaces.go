package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MiningKeeper is the narrow surface this module consumes from the mining
// subsystem. The mining subsystem itself is out of scope; only this
// interface and the two inbound callbacks (OnReward, OnCleanup) couple the
// two subsystems together.
type MiningKeeper interface {
	Bind(ctx context.Context, miner sdk.AccAddress, worker WorkerPubKey) error
	SetDeposit(ctx context.Context, miner sdk.AccAddress, stake math.Int) error
	StartMining(ctx context.Context, miner sdk.AccAddress) error
	StopMining(ctx context.Context, miner sdk.AccAddress) error
}

// RegisteredWorker is the subset of worker-registry state this module reads.
type RegisteredWorker struct {
	Operator     string
	InitialScore *uint64
}

// WorkerRegistryKeeper is the narrow surface this module consumes from the
// worker registry: lookup by public key only.
type WorkerRegistryKeeper interface {
	GetWorker(ctx context.Context, worker WorkerPubKey) (RegisteredWorker, bool)
}

// BankKeeper is the currency primitive's "lockable currency" surface,
// realized here via standard bank-module coin transfers into and out of a
// module escrow account (see keeper/ledger.go).
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	SpendableCoins(ctx context.Context, addr sdk.AccAddress) sdk.Coins
}

// StakepoolHooks lets an integrating application observe every operation
// this module emits an event for, without this module depending on a
// concrete event bus type.
type StakepoolHooks interface {
	PoolCreated(ctx sdk.Context, owner string, pid uint64)
	PoolWorkerAdded(ctx sdk.Context, pid uint64, worker string)
	PoolCapacitySet(ctx sdk.Context, pid uint64, cap math.Int)
	PoolCommissionSet(ctx sdk.Context, pid uint64, rate math.LegacyDec)
	Deposited(ctx sdk.Context, pid uint64, user string, amount math.Int)
	Withdrawn(ctx sdk.Context, pid uint64, user string, amount math.Int)
	RewardsClaimed(ctx sdk.Context, pid uint64, user string, amount math.Int)
}

// MultiStakepoolHooks dispatches to a set of hooks in order, mirroring the
// cosmos-sdk convention for combining module hooks.
type MultiStakepoolHooks []StakepoolHooks

func (h MultiStakepoolHooks) PoolCreated(ctx sdk.Context, owner string, pid uint64) {
	for _, hh := range h {
		hh.PoolCreated(ctx, owner, pid)
	}
}

func (h MultiStakepoolHooks) PoolWorkerAdded(ctx sdk.Context, pid uint64, worker string) {
	for _, hh := range h {
		hh.PoolWorkerAdded(ctx, pid, worker)
	}
}

func (h MultiStakepoolHooks) PoolCapacitySet(ctx sdk.Context, pid uint64, cap math.Int) {
	for _, hh := range h {
		hh.PoolCapacitySet(ctx, pid, cap)
	}
}

func (h MultiStakepoolHooks) PoolCommissionSet(ctx sdk.Context, pid uint64, rate math.LegacyDec) {
	for _, hh := range h {
		hh.PoolCommissionSet(ctx, pid, rate)
	}
}

func (h MultiStakepoolHooks) Deposited(ctx sdk.Context, pid uint64, user string, amount math.Int) {
	for _, hh := range h {
		hh.Deposited(ctx, pid, user, amount)
	}
}

func (h MultiStakepoolHooks) Withdrawn(ctx sdk.Context, pid uint64, user string, amount math.Int) {
	for _, hh := range h {
		hh.Withdrawn(ctx, pid, user, amount)
	}
}

func (h MultiStakepoolHooks) RewardsClaimed(ctx sdk.Context, pid uint64, user string, amount math.Int) {
	for _, hh := range h {
		hh.RewardsClaimed(ctx, pid, user, amount)
	}
}
