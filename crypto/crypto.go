// Package crypto is the capability-set facade the core consumes for all
// primitive operations (§4.1): BLAKE3 hashing, Ed25519 signing, and
// XChaCha20-Poly1305 AEAD. Nothing above this package ever touches a
// primitive directly — every other package takes a Suite as a dependency.
package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"io"

	"github.com/s5-go/s5/errs"
	"golang.org/x/crypto/chacha20poly1305"
	"lukechampine.com/blake3"
)

const (
	// HashSize is the length of a bare BLAKE3 digest, before the
	// algorithm-tag byte the rest of the core always prefixes it with.
	HashSize = 32
	// PublicKeySize is the length of a bare Ed25519 public key, before the
	// scheme-tag byte the rest of the core always prefixes it with.
	PublicKeySize = ed25519.PublicKeySize
	// SignatureSize is the length of an Ed25519 signature.
	SignatureSize = ed25519.SignatureSize
	// NonceSize is the XChaCha20-Poly1305 nonce length.
	NonceSize = chacha20poly1305.NonceSizeX
	// KeySize is the XChaCha20-Poly1305 and BLAKE3 key length.
	KeySize = 32
)

// Suite is the capability set §4.1 describes. The default implementation
// (New) is safe for concurrent use; every method is synchronous from the
// caller's point of view, though an implementation may run primitives on a
// worker pool internally (invisible to callers, per §5).
type Suite interface {
	Random(n int) ([]byte, error)
	Blake3(data []byte) [HashSize]byte
	Blake3Stream() StreamHasher
	Ed25519Keypair(seed [32]byte) (priv ed25519.PrivateKey, pub [PublicKeySize]byte)
	Ed25519Sign(priv ed25519.PrivateKey, msg []byte) [SignatureSize]byte
	Ed25519Verify(pub [PublicKeySize]byte, msg []byte, sig [SignatureSize]byte) bool
	AEADEncrypt(key [KeySize]byte, nonce [NonceSize]byte, plaintext []byte) ([]byte, error)
	AEADDecrypt(key [KeySize]byte, nonce [NonceSize]byte, ciphertext []byte) ([]byte, error)
}

// StreamHasher accumulates chunks for a one-shot BLAKE3 digest at the end,
// used when the full input isn't available as a single slice (e.g. reading
// chunked file content off the wire).
type StreamHasher interface {
	Write(p []byte) (int, error)
	Sum() [HashSize]byte
}

type suite struct{}

// New returns the default Suite backed by lukechampine.com/blake3,
// crypto/ed25519, and golang.org/x/crypto/chacha20poly1305.
func New() Suite {
	return suite{}
}

func (suite) Random(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, errs.Wrap(errs.Crypto, "crypto.Random", "reading secure random bytes", err)
	}
	return b, nil
}

func (suite) Blake3(data []byte) [HashSize]byte {
	return blake3.Sum256(data)
}

func (suite) Blake3Stream() StreamHasher {
	return &streamHasher{h: blake3.New(HashSize, nil)}
}

type streamHasher struct {
	h *blake3.Hasher
}

func (s *streamHasher) Write(p []byte) (int, error) { return s.h.Write(p) }

func (s *streamHasher) Sum() [HashSize]byte {
	var out [HashSize]byte
	copy(out[:], s.h.Sum(nil))
	return out
}

func (suite) Ed25519Keypair(seed [32]byte) (ed25519.PrivateKey, [PublicKeySize]byte) {
	priv := ed25519.NewKeyFromSeed(seed[:])
	var pub [PublicKeySize]byte
	copy(pub[:], priv.Public().(ed25519.PublicKey))
	return priv, pub
}

func (suite) Ed25519Sign(priv ed25519.PrivateKey, msg []byte) [SignatureSize]byte {
	var out [SignatureSize]byte
	copy(out[:], ed25519.Sign(priv, msg))
	return out
}

func (suite) Ed25519Verify(pub [PublicKeySize]byte, msg []byte, sig [SignatureSize]byte) bool {
	return ed25519.Verify(pub[:], msg, sig[:])
}

func (suite) AEADEncrypt(key [KeySize]byte, nonce [NonceSize]byte, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, errs.Wrap(errs.Crypto, "crypto.AEADEncrypt", "constructing AEAD cipher", err)
	}
	return aead.Seal(nil, nonce[:], plaintext, nil), nil
}

func (suite) AEADDecrypt(key [KeySize]byte, nonce [NonceSize]byte, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, errs.Wrap(errs.Crypto, "crypto.AEADDecrypt", "constructing AEAD cipher", err)
	}
	pt, err := aead.Open(nil, nonce[:], ciphertext, nil)
	if err != nil {
		return nil, errs.Wrap(errs.Crypto, "crypto.AEADDecrypt", "AEAD tag verification failed", err)
	}
	return pt, nil
}
