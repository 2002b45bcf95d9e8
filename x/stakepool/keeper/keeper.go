package keeper

import (
	"encoding/binary"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

// Store key prefixes.
var (
	PoolKeyPrefix            = []byte{0x01}
	UserStakeKeyPrefix       = []byte{0x02}
	WorkerInPoolKeyPrefix    = []byte{0x03}
	LockedTotalKeyPrefix     = []byte{0x04}
	PoolCounterKey           = []byte{0x05}
	WithdrawTimestampPrefix  = []byte{0x06}
	WithdrawQueuePrefix      = []byte{0x07}
	PoolQueueSeqCounterPrefix = []byte{0x08}
	WorkerMiningStatusPrefix  = []byte{0x09}
)

// Per-worker mining status values, tracked so StartMining/StopMining can
// reject a call that races an in-flight transition (ErrPoolIsBusy) instead
// of double-committing stake or double-issuing a stop request.
const (
	workerStatusMining   byte = 0x01
	workerStatusStopping byte = 0x02
)

// Keeper manages the stakepool module state.
type Keeper struct {
	cdc             codec.BinaryCodec
	storeKey        storetypes.StoreKey
	miningKeeper    types.MiningKeeper
	registryKeeper  types.WorkerRegistryKeeper
	bankKeeper      types.BankKeeper
	hooks           types.StakepoolHooks
	logger          log.Logger
	authority       string
	denom           string
	minDeposit      math.Int
	insurancePeriod int64 // seconds
}

// NewKeeper creates a new stakepool keeper.
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	miningKeeper types.MiningKeeper,
	registryKeeper types.WorkerRegistryKeeper,
	bankKeeper types.BankKeeper,
	authority string,
	denom string,
	minDeposit math.Int,
	insurancePeriod int64,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:             cdc,
		storeKey:        storeKey,
		miningKeeper:    miningKeeper,
		registryKeeper:  registryKeeper,
		bankKeeper:      bankKeeper,
		authority:       authority,
		denom:           denom,
		minDeposit:      minDeposit,
		insurancePeriod: insurancePeriod,
		logger:          logger.With("module", "x/"+types.ModuleName),
	}
}

// Denom returns the native asset pools are denominated in.
func (k *Keeper) Denom() string {
	return k.denom
}

// MinDeposit returns the minimum accepted deposit amount.
func (k *Keeper) MinDeposit() math.Int {
	return k.minDeposit
}

// Logger returns the module logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the governance authority address.
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// SetHooks registers the observer hooks. Panics if called twice, matching
// the usual cosmos-sdk one-shot wiring convention.
func (k *Keeper) SetHooks(h types.StakepoolHooks) {
	if k.hooks != nil {
		panic("stakepool hooks already set")
	}
	k.hooks = h
}

func (k *Keeper) emit(fn func(types.StakepoolHooks)) {
	if k.hooks != nil {
		fn(k.hooks)
	}
}

// GetStore returns the module's KVStore.
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// InsurancePeriod returns the configured grace period, in seconds.
func (k *Keeper) InsurancePeriod() int64 {
	return k.insurancePeriod
}

func poolIDBytes(pid uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, pid)
	return b
}

func poolKey(pid uint64) []byte {
	return append(append([]byte{}, PoolKeyPrefix...), poolIDBytes(pid)...)
}

func userStakeKey(pid uint64, user string) []byte {
	key := append(append([]byte{}, UserStakeKeyPrefix...), poolIDBytes(pid)...)
	return append(key, []byte(user)...)
}

func workerInPoolKey(worker string) []byte {
	return append(append([]byte{}, WorkerInPoolKeyPrefix...), []byte(worker)...)
}

func lockedTotalKey(account string) []byte {
	return append(append([]byte{}, LockedTotalKeyPrefix...), []byte(account)...)
}

func workerMiningStatusKey(worker string) []byte {
	return append(append([]byte{}, WorkerMiningStatusPrefix...), []byte(worker)...)
}

// getWorkerMiningStatus returns worker's current mining transition status,
// and whether any status is on file at all (absent means idle: never
// started, or a prior stop already completed via OnCleanup).
func (k *Keeper) getWorkerMiningStatus(ctx sdk.Context, worker string) (byte, bool) {
	bz := k.GetStore(ctx).Get(workerMiningStatusKey(worker))
	if bz == nil {
		return 0, false
	}
	return bz[0], true
}

func (k *Keeper) setWorkerMiningStatus(ctx sdk.Context, worker string, status byte) {
	k.GetStore(ctx).Set(workerMiningStatusKey(worker), []byte{status})
}

func (k *Keeper) clearWorkerMiningStatus(ctx sdk.Context, worker string) {
	k.GetStore(ctx).Delete(workerMiningStatusKey(worker))
}

// ============ Pool Operations ============

// SetPool saves a pool to the store.
func (k *Keeper) SetPool(ctx sdk.Context, pool *types.Pool) {
	store := k.GetStore(ctx)
	bz, err := json.Marshal(pool)
	if err != nil {
		panic(err)
	}
	store.Set(poolKey(pool.PoolID), bz)
}

// GetPool retrieves a pool from the store, or nil if it does not exist.
func (k *Keeper) GetPool(ctx sdk.Context, pid uint64) *types.Pool {
	store := k.GetStore(ctx)
	bz := store.Get(poolKey(pid))
	if bz == nil {
		return nil
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return nil
	}
	return &pool
}

// GetAllPools returns every pool in the store.
func (k *Keeper) GetAllPools(ctx sdk.Context) []*types.Pool {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PoolKeyPrefix)
	defer iterator.Close()

	var pools []*types.Pool
	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			continue
		}
		pools = append(pools, &pool)
	}
	return pools
}

// nextPoolID allocates and persists the next pool id counter.
func (k *Keeper) nextPoolID(ctx sdk.Context) uint64 {
	store := k.GetStore(ctx)
	var next uint64
	bz := store.Get(PoolCounterKey)
	if bz != nil {
		next = binary.BigEndian.Uint64(bz)
	}
	id := next
	next++
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, next)
	store.Set(PoolCounterKey, out)
	return id
}

// ============ UserStake Operations ============

// SetUserStake saves a user's stake entry to the store.
func (k *Keeper) SetUserStake(ctx sdk.Context, stake *types.UserStake) {
	store := k.GetStore(ctx)
	bz, err := json.Marshal(stake)
	if err != nil {
		panic(err)
	}
	store.Set(userStakeKey(stake.PoolID, stake.User), bz)
}

// GetUserStake retrieves a user's stake entry, or nil if none exists.
func (k *Keeper) GetUserStake(ctx sdk.Context, pid uint64, user string) *types.UserStake {
	store := k.GetStore(ctx)
	bz := store.Get(userStakeKey(pid, user))
	if bz == nil {
		return nil
	}
	var stake types.UserStake
	if err := json.Unmarshal(bz, &stake); err != nil {
		return nil
	}
	return &stake
}

// GetOrCreateUserStake loads the user's stake entry, creating a
// zero-valued one (not yet persisted) if absent.
func (k *Keeper) GetOrCreateUserStake(ctx sdk.Context, pid uint64, user string) *types.UserStake {
	if s := k.GetUserStake(ctx, pid, user); s != nil {
		return s
	}
	return types.NewUserStake(pid, user)
}

// ============ Worker Index ============

// SetWorkerPool indexes worker as bound to pool pid.
func (k *Keeper) SetWorkerPool(ctx sdk.Context, worker string, pid uint64) {
	store := k.GetStore(ctx)
	store.Set(workerInPoolKey(worker), poolIDBytes(pid))
}

// GetWorkerPool returns the pool id worker is bound to, and whether it is bound at all.
func (k *Keeper) GetWorkerPool(ctx sdk.Context, worker string) (uint64, bool) {
	store := k.GetStore(ctx)
	bz := store.Get(workerInPoolKey(worker))
	if bz == nil {
		return 0, false
	}
	return binary.BigEndian.Uint64(bz), true
}
