package cid

import (
	gocid "github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/s5-go/s5/errs"
)

// blake3MulticodecCode is the multicodec table entry for BLAKE3-256,
// which happens to equal this package's own tag byte for the modern
// hash (§9 Open Questions) — convenient, but coincidental; the two
// encodings are otherwise unrelated (multihash carries an explicit
// length field, this package's Hash does not).
const blake3MulticodecCode = 0x1e

// ToIPFSCid renders h as a standards-compliant CIDv1 for interop with
// IPFS-ecosystem tooling (not used by the core wire formats, which stick
// to the fixed 33-byte tagged hash and the BlobRef encoding of §6.4).
func ToIPFSCid(h Hash) (gocid.Cid, error) {
	digest := h.Digest()
	mh, err := multihash.Encode(digest[:], blake3MulticodecCode)
	if err != nil {
		return gocid.Cid{}, errs.Wrap(errs.Crypto, "cid.ToIPFSCid", "encoding multihash", err)
	}
	return gocid.NewCidV1(gocid.Raw, mh), nil
}

// FromIPFSCid extracts this package's tagged Hash from an interop CID
// produced by ToIPFSCid.
func FromIPFSCid(c gocid.Cid) (Hash, error) {
	decoded, err := multihash.Decode(c.Hash())
	if err != nil {
		return Hash{}, errs.Wrap(errs.Crypto, "cid.FromIPFSCid", "decoding multihash", err)
	}
	if decoded.Code != blake3MulticodecCode {
		return Hash{}, errs.New(errs.IntegrityFailure, "cid.FromIPFSCid", "unexpected multicodec code")
	}
	if len(decoded.Digest) != DigestSize {
		return Hash{}, errs.New(errs.IntegrityFailure, "cid.FromIPFSCid", "digest must be 32 bytes")
	}
	var h Hash
	h[0] = TagBlake3
	copy(h[1:], decoded.Digest)
	return h, nil
}
