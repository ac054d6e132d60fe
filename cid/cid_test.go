package cid_test

import (
	"testing"

	"github.com/s5-go/s5/cid"
	"github.com/s5-go/s5/crypto"
	"github.com/stretchr/testify/require"
)

func TestNewHashAndVerify(t *testing.T) {
	suite := crypto.New()
	data := []byte("some blob content")
	h := cid.NewHash(suite, data)
	require.Equal(t, cid.TagBlake3, h.Tag())
	require.True(t, cid.VerifyHash(suite, h, data))
	require.False(t, cid.VerifyHash(suite, h, []byte("different content")))
}

func TestParseHashAcceptsLegacyTag(t *testing.T) {
	suite := crypto.New()
	h := cid.NewHash(suite, []byte("x"))
	legacy := h
	legacy[0] = cid.TagBlake3Legacy

	parsed, err := cid.ParseHash(legacy[:])
	require.NoError(t, err)
	require.Equal(t, cid.TagBlake3Legacy, parsed.Tag())
}

func TestParseHashRejectsWrongSize(t *testing.T) {
	_, err := cid.ParseHash([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestParseHashRejectsUnknownTag(t *testing.T) {
	var raw [cid.HashSize]byte
	raw[0] = 0xff
	_, err := cid.ParseHash(raw[:])
	require.Error(t, err)
}

func TestRawCIDRoundTrip(t *testing.T) {
	suite := crypto.New()
	h := cid.NewHash(suite, []byte("round trip me"))

	s, err := cid.RawCID(h)
	require.NoError(t, err)
	require.Len(t, s, 53)

	got, err := cid.ParseRawCID(s)
	require.NoError(t, err)
	require.Equal(t, h.Digest(), got.Digest())
}

func TestBlobRefEncodeDecodeRoundTrip(t *testing.T) {
	suite := crypto.New()
	ref := cid.BlobRef{Hash: cid.NewHash(suite, []byte("blob bytes")), Size: 12345}

	encoded := ref.Encode()
	got, err := cid.DecodeBlobRef(encoded)
	require.NoError(t, err)
	require.Equal(t, ref, got)
}

func TestBlobRefCIDRoundTrip(t *testing.T) {
	suite := crypto.New()
	ref := cid.BlobRef{Hash: cid.NewHash(suite, []byte("blob bytes")), Size: 99}

	s, err := cid.BlobRefCID(ref)
	require.NoError(t, err)

	got, err := cid.ParseBlobRefCID(s)
	require.NoError(t, err)
	require.Equal(t, ref, got)
}

func TestBlobRefEncodingVariesSizeWidth(t *testing.T) {
	suite := crypto.New()
	small := cid.BlobRef{Hash: cid.NewHash(suite, []byte("a")), Size: 1}
	large := cid.BlobRef{Hash: cid.NewHash(suite, []byte("a")), Size: 1 << 40}

	require.Less(t, len(small.Encode()), len(large.Encode()))
}

func TestDecodeBlobRefRejectsShortBuffer(t *testing.T) {
	_, err := cid.DecodeBlobRef([]byte{0x01, 0x00})
	require.Error(t, err)
}
