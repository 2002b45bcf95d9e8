package keeper

import (
	"encoding/binary"
	"encoding/json"

	storetypes "cosmossdk.io/store/types"
	"github.com/google/btree"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// btreeDegree mirrors the degree chosen for the order-book price-level
// index this pattern is grounded on.
const btreeDegree = 32

func timestampKeyBytes(t int64) []byte {
	b := make([]byte, 8)
	// Shift into unsigned space so lexicographic byte order matches
	// numeric order for the range of timestamps this module deals with
	// (UNIX seconds, always non-negative).
	binary.BigEndian.PutUint64(b, uint64(t))
	return b
}

func withdrawTimestampKey(t int64) []byte {
	return append(append([]byte{}, WithdrawTimestampPrefix...), timestampKeyBytes(t)...)
}

// timestampBucket is withdraw_pools[t]: the set of pool ids that received a
// queued withdraw at time t.
type timestampBucket struct {
	T     int64
	Pools []uint64
}

// timestampBucketItem adapts timestampBucket to btree.Item, ordered
// ascending by timestamp — the same wrapper shape as the order book's
// priceLevelItem.
type timestampBucketItem struct {
	bucket *timestampBucket
}

func (a *timestampBucketItem) Less(b btree.Item) bool {
	return a.bucket.T < b.(*timestampBucketItem).bucket.T
}

func (k *Keeper) saveBucket(ctx sdk.Context, b *timestampBucket) {
	store := k.GetStore(ctx)
	bz, err := json.Marshal(b)
	if err != nil {
		panic(err)
	}
	store.Set(withdrawTimestampKey(b.T), bz)
}

func (k *Keeper) deleteBucket(ctx sdk.Context, t int64) {
	k.GetStore(ctx).Delete(withdrawTimestampKey(t))
}

func (k *Keeper) getBucket(ctx sdk.Context, t int64) *timestampBucket {
	store := k.GetStore(ctx)
	bz := store.Get(withdrawTimestampKey(t))
	if bz == nil {
		return nil
	}
	var b timestampBucket
	if err := json.Unmarshal(bz, &b); err != nil {
		return nil
	}
	return &b
}

// backTimestamp returns the most recently created bucket's timestamp and
// whether one exists, by reading the last key under the prefix — the
// store's own lexicographic ordering over fixed-width keys already gives
// us this without needing a tree walk.
func (k *Keeper) backTimestamp(ctx sdk.Context) (int64, bool) {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStoreReversePrefixIterator(store, WithdrawTimestampPrefix)
	defer iterator.Close()
	if !iterator.Valid() {
		return 0, false
	}
	var b timestampBucket
	if err := json.Unmarshal(iterator.Value(), &b); err != nil {
		return 0, false
	}
	return b.T, true
}

// frontTimestamp returns the earliest bucket's timestamp and whether one exists.
func (k *Keeper) frontTimestamp(ctx sdk.Context) (int64, bool) {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, WithdrawTimestampPrefix)
	defer iterator.Close()
	if !iterator.Valid() {
		return 0, false
	}
	var b timestampBucket
	if err := json.Unmarshal(iterator.Value(), &b); err != nil {
		return 0, false
	}
	return b.T, true
}

// MaybeAddWithdrawQueue implements spec §4.13: if the back of
// withdraw_timestamps is < t, push t (or push unconditionally if empty);
// same-timestamp calls within the block share the existing bucket. Then
// insert pid into withdraw_pools[t] if not already present.
func (k *Keeper) MaybeAddWithdrawQueue(ctx sdk.Context, t int64, pid uint64) {
	back, ok := k.backTimestamp(ctx)
	if !ok || back < t {
		k.saveBucket(ctx, &timestampBucket{T: t, Pools: []uint64{}})
	}

	b := k.getBucket(ctx, t)
	if b == nil {
		b = &timestampBucket{T: t, Pools: []uint64{}}
	}
	for _, p := range b.Pools {
		if p == pid {
			return
		}
	}
	b.Pools = append(b.Pools, pid)
	k.saveBucket(ctx, b)
}

// PopAgedBuckets walks the ordered withdraw-timestamp index from its
// front, removing and returning every bucket whose timestamp t satisfies
// now-t > insurancePeriod. It loads the outstanding buckets into an
// in-memory btree (grounded on the same google/btree usage the order book
// uses for its price-level index) and Ascends from the minimum, stopping
// as soon as a bucket is not yet aged — bounding the walk to the k aged
// buckets spec §4.12 describes, since the number of outstanding buckets is
// itself bounded by block rate times the insurance period.
func (k *Keeper) PopAgedBuckets(ctx sdk.Context, now int64) []*timestampBucket {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, WithdrawTimestampPrefix)
	tree := btree.New(btreeDegree)
	for ; iterator.Valid(); iterator.Next() {
		var b timestampBucket
		if err := json.Unmarshal(iterator.Value(), &b); err != nil {
			continue
		}
		bucket := b
		tree.ReplaceOrInsert(&timestampBucketItem{bucket: &bucket})
	}
	iterator.Close()

	var aged []*timestampBucket
	for {
		min := tree.Min()
		if min == nil {
			break
		}
		item := min.(*timestampBucketItem)
		if now-item.bucket.T <= k.insurancePeriod {
			break
		}
		aged = append(aged, item.bucket)
		tree.Delete(item)
		k.deleteBucket(ctx, item.bucket.T)
	}
	return aged
}
