package blobenv_test

import (
	"testing"

	"github.com/s5-go/s5/blobenv"
	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/errs"
	"github.com/stretchr/testify/require"
)

func testKey() [crypto.KeySize]byte {
	var k [crypto.KeySize]byte
	copy(k[:], []byte("0123456789abcdef0123456789abcdef"))
	return k
}

func TestRoundTrip(t *testing.T) {
	suite := crypto.New()
	key := testKey()
	plaintext := []byte("hello mutable world")

	blob, err := blobenv.Encode(suite, key, plaintext)
	require.NoError(t, err)

	got, err := blobenv.Decode(suite, key, blob)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestEncodeProducesPaddedSizeClass(t *testing.T) {
	suite := crypto.New()
	key := testKey()

	a, err := blobenv.Encode(suite, key, []byte("short"))
	require.NoError(t, err)
	b, err := blobenv.Encode(suite, key, make([]byte, 10))
	require.NoError(t, err)
	// Two short plaintexts of different length should still land in the
	// same padded class, since padding masks exact lengths.
	require.Equal(t, len(a), len(b))
}

func TestDifferentLengthsCanProduceDifferentClasses(t *testing.T) {
	suite := crypto.New()
	key := testKey()

	small, err := blobenv.Encode(suite, key, []byte("short"))
	require.NoError(t, err)
	large, err := blobenv.Encode(suite, key, make([]byte, 100_000))
	require.NoError(t, err)
	require.Greater(t, len(large), len(small))
}

func TestTamperedCiphertextFailsWithWrongKeyClass(t *testing.T) {
	suite := crypto.New()
	key := testKey()

	blob, err := blobenv.Encode(suite, key, []byte("tamper test"))
	require.NoError(t, err)
	blob[len(blob)-1] ^= 0xFF

	_, err = blobenv.Decode(suite, key, blob)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.Crypto))
}

func TestWrongKeyFails(t *testing.T) {
	suite := crypto.New()
	key := testKey()
	var wrongKey [crypto.KeySize]byte
	copy(wrongKey[:], []byte("fedcba9876543210fedcba9876543210"))

	blob, err := blobenv.Encode(suite, key, []byte("secret payload"))
	require.NoError(t, err)

	_, err = blobenv.Decode(suite, wrongKey, blob)
	require.Error(t, err)
}

func TestBadMagicFailsAsCorrupt(t *testing.T) {
	suite := crypto.New()
	key := testKey()

	blob, err := blobenv.Encode(suite, key, []byte("x"))
	require.NoError(t, err)
	blob[0] = 0x00

	_, err = blobenv.Decode(suite, key, blob)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.IntegrityFailure))
}

func TestTruncatedBlobFails(t *testing.T) {
	suite := crypto.New()
	key := testKey()

	blob, err := blobenv.Encode(suite, key, []byte("x"))
	require.NoError(t, err)

	_, err = blobenv.Decode(suite, key, blob[:5])
	require.Error(t, err)
}
