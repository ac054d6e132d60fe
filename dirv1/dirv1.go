// Package dirv1 implements the canonical directory codec of §3.1/§4.7:
// a deterministic binary encoding of a directory's header and its
// sorted-key entry map, where two conforming encoders of logically equal
// directories MUST produce byte-identical output.
//
// Encoding is delegated to github.com/fxamacker/cbor/v2's canonical
// (RFC 7049 §3.9) encoding mode, which already guarantees sorted map
// keys, minimal-width integers, and no indefinite-length containers —
// exactly the properties §4.7 requires, without hand-rolling a second
// self-describing binary format.
package dirv1

import (
	"bytes"
	"sort"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/s5-go/s5/errs"
)

// FormatVersion is the directory codec version this package reads and
// writes.
const FormatVersion = 1

// Header carries the directory's format version.
type Header struct {
	Version uint64 `cbor:"version"`
}

// EncryptionDescriptor is the per-file AEAD metadata §4.6 describes.
type EncryptionDescriptor struct {
	Algorithm     string `cbor:"algorithm"`
	Key           []byte `cbor:"key"`
	PlaintextHash []byte `cbor:"plaintextHash"`
	ChunkSize     uint64 `cbor:"chunkSize"`
}

// FileRef is a directory entry pointing at an immutable file blob.
type FileRef struct {
	Hash       []byte                `cbor:"hash"`
	Size       uint64                `cbor:"size"`
	MediaType  string                `cbor:"mediaType,omitempty"`
	Timestamp  uint64                `cbor:"timestamp,omitempty"`
	Encryption *EncryptionDescriptor `cbor:"encryption,omitempty"`
}

// DirRef is a directory entry pointing at a child directory's registry
// entry, carrying the key material needed to descend into it.
type DirRef struct {
	CreatedAt uint64 `cbor:"createdAt"`
	// PublicKey is the child directory's 33-byte tagged Ed25519 public key.
	PublicKey []byte `cbor:"publicKey"`
	// EncryptedWriteKey is the child's 32-byte write seed, wrapped in a
	// blobenv envelope under the parent's write key (§4.7).
	EncryptedWriteKey []byte `cbor:"encryptedWriteKey"`
	// EncryptionKey is the child directory's 32-byte content-encryption
	// key, present only when the child directory is itself encrypted.
	EncryptionKey []byte `cbor:"encryptionKey,omitempty"`
}

// Entry is the tagged variant { File(FileRef) | Dir(DirRef) }. Exactly
// one of File or Dir is set; the omitted field collapses to a single-key
// map on the wire.
type Entry struct {
	File *FileRef `cbor:"file,omitempty"`
	Dir  *DirRef  `cbor:"dir,omitempty"`
}

// Directory is the full decoded directory object: header plus either an
// inline name-sorted entry map, or, once the directory has grown past
// its sharding threshold, a pointer at a HAMT root node in HAMTRoot
// (§3.1/§4.8). Exactly one of Entries or HAMTRoot is meaningful at a
// time; Sharded reports which.
type Directory struct {
	Header  Header           `cbor:"header"`
	Entries map[string]Entry `cbor:"entries"`
	// HAMTRoot is the content hash of the directory's root HAMT node,
	// set once the directory has been sharded. Entries is left empty
	// when this is set.
	HAMTRoot []byte `cbor:"hamtRoot,omitempty"`
}

// New returns an empty directory at the current format version.
func New() Directory {
	return Directory{
		Header:  Header{Version: FormatVersion},
		Entries: make(map[string]Entry),
	}
}

// Sharded reports whether d's body has been replaced by a HAMT root.
func Sharded(d Directory) bool {
	return len(d.HAMTRoot) > 0
}

var (
	canonicalMode cbor.EncMode
	canonicalOnce sync.Once
	canonicalErr  error
)

func getCanonicalMode() (cbor.EncMode, error) {
	canonicalOnce.Do(func() {
		canonicalMode, canonicalErr = cbor.CanonicalEncOptions().EncMode()
	})
	return canonicalMode, canonicalErr
}

// Encode serialises d to its canonical byte form. Equal directories
// (same entry set, same field values) always produce identical bytes.
func Encode(d Directory) ([]byte, error) {
	mode, err := getCanonicalMode()
	if err != nil {
		return nil, errs.Wrap(errs.IntegrityFailure, "dirv1.Encode", "constructing canonical CBOR encoder", err)
	}
	var buf bytes.Buffer
	if err := mode.NewEncoder(&buf).Encode(d); err != nil {
		return nil, errs.Wrap(errs.IntegrityFailure, "dirv1.Encode", "encoding directory", err)
	}
	return buf.Bytes(), nil
}

// Decode parses the bytes Encode produces.
func Decode(data []byte) (Directory, error) {
	var d Directory
	if err := cbor.Unmarshal(data, &d); err != nil {
		return Directory{}, errs.Wrap(errs.IntegrityFailure, "dirv1.Decode", "decoding directory", err)
	}
	if d.Entries == nil {
		d.Entries = make(map[string]Entry)
	}
	return d, nil
}

// SortedNames returns the directory's entry names in unicode-codepoint
// order. Go's native string comparison already orders valid UTF-8
// byte-for-byte in codepoint order, so a plain sort.Strings suffices.
func SortedNames(d Directory) []string {
	names := make([]string, 0, len(d.Entries))
	for name := range d.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
