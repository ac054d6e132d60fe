package hamt

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"lukechampine.com/blake3"
)

// HashFunc selects which keyed hash computes a name's bitmap index.
type HashFunc byte

const (
	// HashXXHash64 is the default, non-cryptographic keyed hash.
	HashXXHash64 HashFunc = 0
	// HashBlake3Keyed is the reserved alternate slot (§4.8), selected by
	// a 1-bit flag in the directory's HAMT configuration.
	HashBlake3Keyed HashFunc = 1
)

// hashName computes the 64-bit keyed hash of name under the selected
// function and key.
func hashName(fn HashFunc, key [32]byte, name string) uint64 {
	switch fn {
	case HashBlake3Keyed:
		h := blake3.New(8, key[:])
		h.Write([]byte(name))
		sum := h.Sum(nil)
		return binary.LittleEndian.Uint64(sum)
	default:
		d := xxhash.New()
		d.Write(key[:])
		d.Write([]byte(name))
		return d.Sum64()
	}
}

// slotAt returns the 5-bit bitmap index at depth, consuming bits
// [5*depth, 5*depth+5) of h in little-endian bit order (§4.8).
func slotAt(h uint64, depth int) int {
	shift := uint(depth * BitsPerLevel)
	if shift >= 64 {
		// Beyond the hash's bit width (only reachable with an
		// astronomically deep trie); fold back to keep indexing total.
		shift %= 64
	}
	return int((h >> shift) & (Branching - 1))
}
