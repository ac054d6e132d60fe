// Package cid implements the content-identifier surface of §3.1/§6.4: the
// 33-byte tagged BLAKE3 hash, the BlobRef wire encoding, and the
// multibase-encoded CID strings clients exchange out-of-band.
package cid

import (
	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/errs"
)

const (
	// DigestSize is the length of a bare BLAKE3 digest.
	DigestSize = crypto.HashSize

	// TagBlake3 is the hash-algorithm tag this implementation always
	// writes for new hashes.
	TagBlake3 byte = 0x1e
	// TagBlake3Legacy is accepted on decode for interoperability with an
	// older client generation that stamped this tag instead; never
	// written by this implementation (§9 Open Questions).
	TagBlake3Legacy byte = 0x1f

	// HashSize is the length of a tagged hash: 1 tag byte + 32 digest bytes.
	HashSize = DigestSize + 1
)

// Hash is a 33-byte content identifier: a 1-byte algorithm tag followed by
// the 32-byte BLAKE3 digest of some blob's bytes.
type Hash [HashSize]byte

// NewHash computes the tagged hash of data.
func NewHash(suite crypto.Suite, data []byte) Hash {
	var h Hash
	h[0] = TagBlake3
	digest := suite.Blake3(data)
	copy(h[1:], digest[:])
	return h
}

// Digest returns the 32-byte BLAKE3 digest, stripped of its tag byte.
func (h Hash) Digest() [DigestSize]byte {
	var d [DigestSize]byte
	copy(d[:], h[1:])
	return d
}

// Tag returns the hash's algorithm tag byte.
func (h Hash) Tag() byte { return h[0] }

// ParseHash validates and wraps a 33-byte tagged hash.
func ParseHash(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, errs.New(errs.IntegrityFailure, "cid.ParseHash", "hash must be 33 bytes")
	}
	if b[0] != TagBlake3 && b[0] != TagBlake3Legacy {
		return h, errs.New(errs.IntegrityFailure, "cid.ParseHash", "unrecognised hash algorithm tag")
	}
	copy(h[:], b)
	return h, nil
}

// VerifyHash reports whether data's BLAKE3 digest matches h, ignoring h's
// tag byte so both the modern and legacy tag verify the same way.
func VerifyHash(suite crypto.Suite, h Hash, data []byte) bool {
	digest := suite.Blake3(data)
	return digest == h.Digest()
}
