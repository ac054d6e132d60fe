package keyderive_test

import (
	"testing"

	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/keyderive"
	"github.com/stretchr/testify/require"
)

func testBase() keyderive.Base32 {
	var b keyderive.Base32
	copy(b[:], []byte("0123456789abcdef0123456789abcdef"))
	return b
}

func TestIntegerDeterministic(t *testing.T) {
	c := crypto.New()
	base := testBase()

	a := keyderive.Integer(c, base, 42)
	b := keyderive.Integer(c, base, 42)
	require.Equal(t, a, b)
}

func TestIntegerTweaksDiverge(t *testing.T) {
	c := crypto.New()
	base := testBase()

	a := keyderive.Integer(c, base, 1)
	b := keyderive.Integer(c, base, 2)
	require.NotEqual(t, a, b)
}

func TestBytesDeterministic(t *testing.T) {
	c := crypto.New()
	base := testBase()

	a := keyderive.Bytes(c, base, []byte("signing"))
	b := keyderive.Bytes(c, base, []byte("signing"))
	require.Equal(t, a, b)
}

func TestBytesTweaksDiverge(t *testing.T) {
	c := crypto.New()
	base := testBase()

	a := keyderive.Bytes(c, base, []byte("signing"))
	b := keyderive.Bytes(c, base, []byte("encryption"))
	require.NotEqual(t, a, b)
}

func TestIntegerAndBytesDiverge(t *testing.T) {
	c := crypto.New()
	base := testBase()

	// An integer tweak and a byte tweak that happen to encode the same
	// underlying bytes must still diverge: the two derivation modes hash
	// the tweak differently (raw little-endian vs. blake3-of-tweak).
	a := keyderive.Integer(c, base, 0)
	b := keyderive.Bytes(c, base, make([]byte, 32))
	require.NotEqual(t, a, b)
}
