package cid

import (
	"github.com/multiformats/go-multibase"
	varint "github.com/multiformats/go-varint"

	"github.com/s5-go/s5/errs"
)

const (
	// BlobRefSchemeTag marks the first prefix byte as a raw-blob BlobRef.
	BlobRefSchemeTag byte = 0x01
	// BlobRefSchemeSubtype is the second prefix byte; reserved for future
	// BlobRef subtypes (e.g. directory vs. file blob), currently always 0.
	BlobRefSchemeSubtype byte = 0x00

	blobRefPrefixSize = 2
)

// BlobRef is a content-addressed handle to an immutable blob: its tagged
// hash plus its byte size (§3.1).
type BlobRef struct {
	Hash Hash
	Size uint64
}

// Encode serialises r as prefix(2) || hash(33) || varint_le(size), the
// wire form §6.4 describes.
func (r BlobRef) Encode() []byte {
	sizeBytes := varint.ToUvarint(r.Size)
	out := make([]byte, 0, blobRefPrefixSize+HashSize+len(sizeBytes))
	out = append(out, BlobRefSchemeTag, BlobRefSchemeSubtype)
	out = append(out, r.Hash[:]...)
	out = append(out, sizeBytes...)
	return out
}

// DecodeBlobRef parses the wire form Encode produces.
func DecodeBlobRef(b []byte) (BlobRef, error) {
	var ref BlobRef
	if len(b) < blobRefPrefixSize+HashSize {
		return ref, errs.New(errs.IntegrityFailure, "cid.DecodeBlobRef", "buffer too short for a BlobRef")
	}
	if b[0] != BlobRefSchemeTag {
		return ref, errs.New(errs.IntegrityFailure, "cid.DecodeBlobRef", "unrecognised BlobRef scheme tag")
	}
	hash, err := ParseHash(b[blobRefPrefixSize : blobRefPrefixSize+HashSize])
	if err != nil {
		return ref, err
	}
	size, _, err := varint.FromUvarint(b[blobRefPrefixSize+HashSize:])
	if err != nil {
		return ref, errs.Wrap(errs.IntegrityFailure, "cid.DecodeBlobRef", "decoding size varint", err)
	}
	ref.Hash = hash
	ref.Size = size
	return ref, nil
}

// RawCID returns the externally-presentable form of a bare digest: base32
// multibase of the 32-byte BLAKE3 digest (53 characters including the
// leading "b" multibase prefix).
func RawCID(h Hash) (string, error) {
	digest := h.Digest()
	s, err := multibase.Encode(multibase.Base32, digest[:])
	if err != nil {
		return "", errs.Wrap(errs.Crypto, "cid.RawCID", "multibase encoding digest", err)
	}
	return s, nil
}

// ParseRawCID decodes a base32-multibase digest CID back into a tagged
// Hash, stamping the modern algorithm tag.
func ParseRawCID(s string) (Hash, error) {
	var h Hash
	_, data, err := multibase.Decode(s)
	if err != nil {
		return h, errs.Wrap(errs.IntegrityFailure, "cid.ParseRawCID", "multibase decoding", err)
	}
	if len(data) != DigestSize {
		return h, errs.New(errs.IntegrityFailure, "cid.ParseRawCID", "decoded digest must be 32 bytes")
	}
	h[0] = TagBlake3
	copy(h[1:], data)
	return h, nil
}

// BlobRefCID returns the externally-presentable form of a BlobRef: base32
// multibase of its Encode() wire form.
func BlobRefCID(r BlobRef) (string, error) {
	s, err := multibase.Encode(multibase.Base32, r.Encode())
	if err != nil {
		return "", errs.Wrap(errs.Crypto, "cid.BlobRefCID", "multibase encoding BlobRef", err)
	}
	return s, nil
}

// ParseBlobRefCID decodes a base32-multibase BlobRef CID.
func ParseBlobRefCID(s string) (BlobRef, error) {
	var ref BlobRef
	_, data, err := multibase.Decode(s)
	if err != nil {
		return ref, errs.Wrap(errs.IntegrityFailure, "cid.ParseBlobRefCID", "multibase decoding", err)
	}
	return DecodeBlobRef(data)
}
