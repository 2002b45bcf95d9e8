package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "stakepool"
	StoreKey   = ModuleName
)

// Scale is the fixed-point scaling factor applied to the per-share reward
// accumulator. Reward admission multiplies by Scale before dividing by
// total stake; claims divide back out by Scale.
var Scale = math.NewInt(1_000_000)

const (
	// PalletID is the source pallet's identifier. Miner sub-account
	// derivation is seeded with SubAccountDomainTag, not with this value.
	PalletID = "phala/sp"
	// LockID is the source pallet's currency-lock namespace. The ledger
	// adapter custodies stake in the EscrowModuleName module account and
	// does not use this value.
	LockID = "phala/sp"
	// SubAccountDomainTag prefixes the hash input for sub-account derivation.
	SubAccountDomainTag = "spm/"
	// BondDenom is the native asset pools are denominated in.
	BondDenom = "upha"
)

// WorkerPubKey identifies an off-chain compute worker.
type WorkerPubKey [32]byte

// Pool is a collective stake account aggregating multiple users' funds,
// owned by one account, and associated with zero or more workers.
type Pool struct {
	PoolID           uint64         `json:"pool_id"`
	Owner            string         `json:"owner"`
	PayoutCommission math.LegacyDec `json:"payout_commission"`
	OwnerReward      math.Int       `json:"owner_reward"`
	Cap              *math.Int      `json:"cap,omitempty"`
	PoolAcc          math.Int       `json:"pool_acc"`
	TotalStake       math.Int       `json:"total_stake"`
	FreeStake        math.Int       `json:"free_stake"`
	Workers          []string       `json:"workers"`
}

// NewPool allocates a zero-initialized pool owned by owner.
func NewPool(pid uint64, owner string) *Pool {
	return &Pool{
		PoolID:           pid,
		Owner:            owner,
		PayoutCommission: math.LegacyZeroDec(),
		OwnerReward:      math.ZeroInt(),
		PoolAcc:          math.ZeroInt(),
		TotalStake:       math.ZeroInt(),
		FreeStake:        math.ZeroInt(),
		Workers:          []string{},
	}
}

// HasWorker reports whether worker is already bound to the pool.
func (p *Pool) HasWorker(worker string) bool {
	for _, w := range p.Workers {
		if w == worker {
			return true
		}
	}
	return false
}

// PendingReward computes the pending reward owed to u under p's current
// accumulator, per spec: amount*pool_acc/SCALE - user_debt.
func (p *Pool) PendingReward(u *UserStake) math.Int {
	if u.Amount.IsZero() {
		return math.ZeroInt()
	}
	accrued := u.Amount.Mul(p.PoolAcc).Quo(Scale)
	return SaturatingSub(accrued, u.UserDebt)
}

// AddReward admits reward r to the pool, skimming commission to the owner
// and growing pool_acc by the residue scaled by Scale. Returns zero without
// mutating pool_acc if the pool currently has no stake (no one to pay).
func (p *Pool) AddReward(r math.Int) (commission math.Int) {
	if p.TotalStake.IsZero() || !p.TotalStake.IsPositive() {
		return math.ZeroInt()
	}
	commission = p.PayoutCommission.MulInt(r).TruncateInt()
	p.OwnerReward = p.OwnerReward.Add(commission)
	net := r.Sub(commission)
	p.PoolAcc = p.PoolAcc.Add(net.Mul(Scale).Quo(p.TotalStake))
	return commission
}

// UserStake is a single account's position in a single pool.
type UserStake struct {
	PoolID           uint64   `json:"pool_id"`
	User             string   `json:"user"`
	Amount           math.Int `json:"amount"`
	AvailableRewards math.Int `json:"available_rewards"`
	UserDebt         math.Int `json:"user_debt"`
}

// NewUserStake creates a zero-valued stake entry for user in pool pid.
func NewUserStake(pid uint64, user string) *UserStake {
	return &UserStake{
		PoolID:           pid,
		User:             user,
		Amount:           math.ZeroInt(),
		AvailableRewards: math.ZeroInt(),
		UserDebt:         math.ZeroInt(),
	}
}

// SettlePendingReward moves the currently pending reward into
// AvailableRewards and re-anchors UserDebt to the pool's current
// accumulator. Every code path that is about to change Amount must call
// this first; it is the invariant that keeps reward distribution O(1).
func (u *UserStake) SettlePendingReward(p *Pool) {
	pending := p.PendingReward(u)
	if pending.IsPositive() {
		u.AvailableRewards = u.AvailableRewards.Add(pending)
	}
	u.UserDebt = u.Amount.Mul(p.PoolAcc).Quo(Scale)
}

// WithdrawInfo is a single queued withdrawal request.
type WithdrawInfo struct {
	ID        string   `json:"id"`
	Seq       uint64   `json:"seq"`
	User      string   `json:"user"`
	Amount    math.Int `json:"amount"`
	StartTime int64    `json:"start_time"`
}

// SaturatingSub returns a-b, clamped to zero rather than going negative.
// All balance arithmetic in this module saturates instead of wrapping.
func SaturatingSub(a, b math.Int) math.Int {
	if a.LT(b) {
		return math.ZeroInt()
	}
	return a.Sub(b)
}
