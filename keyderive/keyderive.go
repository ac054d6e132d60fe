// Package keyderive implements the single key-derivation primitive the
// rest of the core builds on (§4.2): every piece of child key material in
// this system, from identity sub-seeds down to per-directory write keys,
// is produced by one of these two functions and nothing else.
package keyderive

import (
	"encoding/binary"

	"github.com/s5-go/s5/crypto"
)

// Base32 is a 32-byte key-derivation parent.
type Base32 = [32]byte

// Integer derives a child key from base and an integer tweak:
// blake3(base || le(tweak, 32)).
func Integer(suite crypto.Suite, base Base32, tweak uint64) Base32 {
	var tweakBytes [32]byte
	binary.LittleEndian.PutUint64(tweakBytes[:8], tweak)

	buf := make([]byte, 0, 64)
	buf = append(buf, base[:]...)
	buf = append(buf, tweakBytes[:]...)
	return suite.Blake3(buf)
}

// Bytes derives a child key from base and an arbitrary-length byte tweak:
// blake3(base || blake3(tweak)).
func Bytes(suite crypto.Suite, base Base32, tweak []byte) Base32 {
	tweakHash := suite.Blake3(tweak)

	buf := make([]byte, 0, 64)
	buf = append(buf, base[:]...)
	buf = append(buf, tweakHash[:]...)
	return suite.Blake3(buf)
}
