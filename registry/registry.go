// Package registry implements the mutable-over-immutable registry entry
// of §4.4: a signed (public key, revision, data) tuple that lets a
// stable key point at successive content-addressed directory snapshots.
package registry

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/errs"
)

// RecordTag identifies the registry entry's record kind on the wire.
const RecordTag = 0x07

// MaxDataSize is the largest payload a registry entry may carry (a
// content hash plus a little room for framing, never a full blob).
const MaxDataSize = 64

// PublicKeySize is the length of the tagged Ed25519 public key carried
// in a registry entry (1 scheme-tag byte + 32 raw key bytes).
const PublicKeySize = crypto.PublicKeySize + 1

// MaxRevision is the largest revision number a registry entry may carry
// (2^48 - 1); entries above this are rejected outright (§8).
const MaxRevision = 1<<48 - 1

// Entry is one signed registry record.
type Entry struct {
	PublicKey [PublicKeySize]byte
	Revision  uint64
	Data      []byte
	Signature [crypto.SignatureSize]byte
}

// signingInput reconstructs the exact bytes Sign/Verify operate over:
// record_tag(1) || le(revision, 8) || data_len(1) || data.
func signingInput(revision uint64, data []byte) []byte {
	buf := make([]byte, 0, 1+8+1+len(data))
	buf = append(buf, RecordTag)
	var rev [8]byte
	binary.LittleEndian.PutUint64(rev[:], revision)
	buf = append(buf, rev[:]...)
	buf = append(buf, byte(len(data)))
	buf = append(buf, data...)
	return buf
}

// Sign builds a new Entry for pub/priv over data at revision, deriving
// the tagged public key from pub.
func Sign(suite crypto.Suite, tag byte, priv ed25519.PrivateKey, pub [crypto.PublicKeySize]byte, revision uint64, data []byte) (Entry, error) {
	if len(data) > MaxDataSize {
		return Entry{}, errs.New(errs.IntegrityFailure, "registry.Sign", "data exceeds max registry entry size")
	}
	if revision > MaxRevision {
		return Entry{}, errs.New(errs.IntegrityFailure, "registry.Sign", "revision exceeds 2^48-1")
	}
	sig := suite.Ed25519Sign(priv, signingInput(revision, data))

	var e Entry
	e.PublicKey[0] = tag
	copy(e.PublicKey[1:], pub[:])
	e.Revision = revision
	e.Data = append([]byte{}, data...)
	e.Signature = sig
	return e, nil
}

// Verify reports whether e's signature is valid over its own fields.
func Verify(suite crypto.Suite, e Entry) bool {
	var pub [crypto.PublicKeySize]byte
	copy(pub[:], e.PublicKey[1:])
	return suite.Ed25519Verify(pub, signingInput(e.Revision, e.Data), e.Signature)
}

// Encode serialises e for transport: record_tag || public_key(33) ||
// le(revision,8) || data_len(1) || data || signature(64).
func Encode(e Entry) []byte {
	out := make([]byte, 0, 1+PublicKeySize+8+1+len(e.Data)+crypto.SignatureSize)
	out = append(out, RecordTag)
	out = append(out, e.PublicKey[:]...)
	var rev [8]byte
	binary.LittleEndian.PutUint64(rev[:], e.Revision)
	out = append(out, rev[:]...)
	out = append(out, byte(len(e.Data)))
	out = append(out, e.Data...)
	out = append(out, e.Signature[:]...)
	return out
}

// Decode parses the bytes Encode produces.
func Decode(b []byte) (Entry, error) {
	const minLen = 1 + PublicKeySize + 8 + 1 + crypto.SignatureSize
	if len(b) < minLen {
		return Entry{}, errs.New(errs.IntegrityFailure, "registry.Decode", "entry shorter than minimum framing")
	}
	if b[0] != RecordTag {
		return Entry{}, errs.New(errs.IntegrityFailure, "registry.Decode", "unrecognised record tag")
	}
	pos := 1
	var e Entry
	copy(e.PublicKey[:], b[pos:pos+PublicKeySize])
	pos += PublicKeySize
	e.Revision = binary.LittleEndian.Uint64(b[pos : pos+8])
	pos += 8
	dataLen := int(b[pos])
	pos++
	if len(b) != pos+dataLen+crypto.SignatureSize {
		return Entry{}, errs.New(errs.IntegrityFailure, "registry.Decode", "data_len inconsistent with entry length")
	}
	e.Data = append([]byte{}, b[pos:pos+dataLen]...)
	pos += dataLen
	copy(e.Signature[:], b[pos:])
	return e, nil
}
