package crypto_test

import (
	"testing"

	"github.com/s5-go/s5/crypto"
	"github.com/stretchr/testify/require"
)

func TestBlake3Deterministic(t *testing.T) {
	c := crypto.New()
	a := c.Blake3([]byte("hello"))
	b := c.Blake3([]byte("hello"))
	require.Equal(t, a, b)
}

func TestEd25519SignVerify(t *testing.T) {
	c := crypto.New()
	var seed [32]byte
	copy(seed[:], []byte("0123456789abcdef0123456789abcdef"))
	priv, pub := c.Ed25519Keypair(seed)

	msg := []byte("a message")
	sig := c.Ed25519Sign(priv, msg)
	require.True(t, c.Ed25519Verify(pub, msg, sig))

	sig[0] ^= 0xFF
	require.False(t, c.Ed25519Verify(pub, msg, sig))
}

func TestAEADRoundTrip(t *testing.T) {
	c := crypto.New()
	var key [32]byte
	copy(key[:], []byte("0123456789abcdef0123456789abcdef"))
	var nonce [24]byte
	copy(nonce[:], []byte("012345678901234567890123"))

	pt := []byte("plaintext data")
	ct, err := c.AEADEncrypt(key, nonce, pt)
	require.NoError(t, err)
	require.NotEqual(t, pt, ct)

	got, err := c.AEADDecrypt(key, nonce, ct)
	require.NoError(t, err)
	require.Equal(t, pt, got)

	ct[0] ^= 0xFF
	_, err = c.AEADDecrypt(key, nonce, ct)
	require.Error(t, err)
}
