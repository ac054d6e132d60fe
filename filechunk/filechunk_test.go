package filechunk_test

import (
	"testing"

	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/filechunk"
	"github.com/stretchr/testify/require"
)

func testKeyAndNonce() ([crypto.KeySize]byte, [crypto.NonceSize]byte) {
	var key [crypto.KeySize]byte
	copy(key[:], []byte("0123456789abcdef0123456789abcdef"))
	var nonce [crypto.NonceSize]byte
	copy(nonce[:], []byte("012345678901234567890123"))
	return key, nonce
}

func TestRoundTripSingleChunk(t *testing.T) {
	suite := crypto.New()
	key, nonce := testKeyAndNonce()
	plaintext := []byte("small file content")

	ct, err := filechunk.Encrypt(suite, key, nonce, filechunk.DefaultChunkSize, plaintext)
	require.NoError(t, err)

	pt, err := filechunk.Decrypt(suite, key, nonce, filechunk.DefaultChunkSize, len(plaintext), ct)
	require.NoError(t, err)
	require.Equal(t, plaintext, pt)
}

func TestRoundTripMultipleChunks(t *testing.T) {
	suite := crypto.New()
	key, nonce := testKeyAndNonce()
	chunkSize := 16
	plaintext := make([]byte, chunkSize*5+7)
	for i := range plaintext {
		plaintext[i] = byte(i % 251)
	}

	ct, err := filechunk.Encrypt(suite, key, nonce, chunkSize, plaintext)
	require.NoError(t, err)
	require.Equal(t, filechunk.EncryptedSize(chunkSize, len(plaintext)), len(ct))

	pt, err := filechunk.Decrypt(suite, key, nonce, chunkSize, len(plaintext), ct)
	require.NoError(t, err)
	require.Equal(t, plaintext, pt)
}

func TestChunksUseDistinctNonces(t *testing.T) {
	suite := crypto.New()
	key, nonce := testKeyAndNonce()
	chunkSize := 8
	// Two identical chunks of plaintext should encrypt to different
	// ciphertext, since each chunk's nonce embeds a distinct index.
	plaintext := make([]byte, chunkSize*2)

	ct, err := filechunk.Encrypt(suite, key, nonce, chunkSize, plaintext)
	require.NoError(t, err)

	chunk0 := ct[:chunkSize+16]
	chunk1 := ct[chunkSize+16:]
	require.NotEqual(t, chunk0, chunk1)
}

func TestEmptyFileEncryptsOneChunk(t *testing.T) {
	suite := crypto.New()
	key, nonce := testKeyAndNonce()

	ct, err := filechunk.Encrypt(suite, key, nonce, filechunk.DefaultChunkSize, nil)
	require.NoError(t, err)
	require.Equal(t, filechunk.EncryptedSize(filechunk.DefaultChunkSize, 0), len(ct))

	pt, err := filechunk.Decrypt(suite, key, nonce, filechunk.DefaultChunkSize, 0, ct)
	require.NoError(t, err)
	require.Empty(t, pt)
}

func TestDeriveNonceBaseIsDeterministicAndKeyDependent(t *testing.T) {
	suite := crypto.New()
	key, _ := testKeyAndNonce()

	a := filechunk.DeriveNonceBase(suite, key)
	b := filechunk.DeriveNonceBase(suite, key)
	require.Equal(t, a, b)

	var otherKey [crypto.KeySize]byte
	copy(otherKey[:], []byte("fedcba9876543210fedcba9876543210"))
	c := filechunk.DeriveNonceBase(suite, otherKey)
	require.NotEqual(t, a, c)
}

func TestTamperedChunkFails(t *testing.T) {
	suite := crypto.New()
	key, nonce := testKeyAndNonce()
	chunkSize := 16
	plaintext := make([]byte, chunkSize*3)

	ct, err := filechunk.Encrypt(suite, key, nonce, chunkSize, plaintext)
	require.NoError(t, err)
	ct[0] ^= 0xFF

	_, err = filechunk.Decrypt(suite, key, nonce, chunkSize, len(plaintext), ct)
	require.Error(t, err)
}
