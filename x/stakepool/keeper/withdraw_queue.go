package keeper

import (
	"encoding/binary"
	"encoding/json"

	storetypes "cosmossdk.io/store/types"
	"github.com/google/uuid"
	"github.com/huandu/skiplist"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

func withdrawQueuePrefix(pid uint64) []byte {
	return append(append([]byte{}, WithdrawQueuePrefix...), poolIDBytes(pid)...)
}

func withdrawQueueKey(pid uint64, seq uint64) []byte {
	key := withdrawQueuePrefix(pid)
	seqBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(seqBytes, seq)
	return append(key, seqBytes...)
}

func poolQueueSeqKey(pid uint64) []byte {
	return append(append([]byte{}, PoolQueueSeqCounterPrefix...), poolIDBytes(pid)...)
}

func (k *Keeper) nextQueueSeq(ctx sdk.Context, pid uint64) uint64 {
	store := k.GetStore(ctx)
	var next uint64
	bz := store.Get(poolQueueSeqKey(pid))
	if bz != nil {
		next = binary.BigEndian.Uint64(bz)
	}
	seq := next
	next++
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, next)
	store.Set(poolQueueSeqKey(pid), out)
	return seq
}

// PushWithdrawQueue appends info to the back of pool pid's FIFO, assigning
// it the next monotonically increasing sequence number.
func (k *Keeper) PushWithdrawQueue(ctx sdk.Context, pid uint64, info *types.WithdrawInfo) {
	info.Seq = k.nextQueueSeq(ctx, pid)
	if info.ID == "" {
		info.ID = uuid.NewString()
	}
	store := k.GetStore(ctx)
	bz, err := json.Marshal(info)
	if err != nil {
		panic(err)
	}
	store.Set(withdrawQueueKey(pid, info.Seq), bz)
}

// PeekFrontWithdrawQueue returns the head of pool pid's FIFO without
// removing it, and whether the queue is non-empty. Reads a single key.
func (k *Keeper) PeekFrontWithdrawQueue(ctx sdk.Context, pid uint64) (*types.WithdrawInfo, bool) {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, withdrawQueuePrefix(pid))
	defer iterator.Close()
	if !iterator.Valid() {
		return nil, false
	}
	var info types.WithdrawInfo
	if err := json.Unmarshal(iterator.Value(), &info); err != nil {
		return nil, false
	}
	return &info, true
}

// SetWithdrawQueueFront writes back an updated head entry in place
// (spec §4.7: "write back the updated front" after a partial drain).
func (k *Keeper) SetWithdrawQueueFront(ctx sdk.Context, pid uint64, info *types.WithdrawInfo) {
	store := k.GetStore(ctx)
	bz, err := json.Marshal(info)
	if err != nil {
		panic(err)
	}
	store.Set(withdrawQueueKey(pid, info.Seq), bz)
}

// PopFrontWithdrawQueue removes the head entry of pool pid's FIFO.
func (k *Keeper) PopFrontWithdrawQueue(ctx sdk.Context, pid uint64, seq uint64) {
	k.GetStore(ctx).Delete(withdrawQueueKey(pid, seq))
}

// IsWithdrawQueueEmpty reports whether pool pid's FIFO has no entries.
func (k *Keeper) IsWithdrawQueueEmpty(ctx sdk.Context, pid uint64) bool {
	_, ok := k.PeekFrontWithdrawQueue(ctx, pid)
	return !ok
}

// seqKeyAsc orders withdraw-queue entries ascending by sequence number,
// the same comparator-struct shape the order book uses for its price-key
// ordering (priceKeyAsc/priceKeyDesc).
type seqKeyAsc struct{}

func (k seqKeyAsc) Compare(lhs, rhs interface{}) int {
	l := lhs.(uint64)
	r := rhs.(uint64)
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func (k seqKeyAsc) CalcScore(key interface{}) float64 {
	return float64(key.(uint64))
}

// GetWithdrawQueue returns every queued withdrawal for pool pid, in FIFO
// order. Built as an ephemeral ordered skiplist keyed by sequence number
// (the same ordered-collection idiom the order book uses for its bid/ask
// sides), then walked front to back.
func (k *Keeper) GetWithdrawQueue(ctx sdk.Context, pid uint64) []*types.WithdrawInfo {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, withdrawQueuePrefix(pid))
	defer iterator.Close()

	list := skiplist.New(seqKeyAsc{})
	for ; iterator.Valid(); iterator.Next() {
		var info types.WithdrawInfo
		if err := json.Unmarshal(iterator.Value(), &info); err != nil {
			continue
		}
		entry := info
		list.Set(entry.Seq, &entry)
	}

	result := make([]*types.WithdrawInfo, 0, list.Len())
	for elem := list.Front(); elem != nil; elem = elem.Next() {
		result = append(result, elem.Value.(*types.WithdrawInfo))
	}
	return result
}
