// Package filechunk implements the chunked file-content encryption of
// §4.6: a plaintext split into fixed-size chunks, each AEAD-encrypted
// under the same key with a nonce that varies deterministically by
// chunk index so no two chunks ever reuse a nonce.
package filechunk

import (
	"encoding/binary"

	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/errs"
)

// DefaultChunkSize is the 256 KiB chunk size §4.6 specifies.
const DefaultChunkSize = 256 * 1024

const tagSize = 16

// Descriptor is the encryption metadata a dirv1.FileRef's Encryption
// field carries alongside an encrypted file (§4.6): algorithm tag, key,
// plaintext hash, chunk size. The nonce base is deliberately absent —
// DeriveNonceBase recomputes it from Key, so it never needs storage.
type Descriptor struct {
	Algorithm     string
	Key           [crypto.KeySize]byte
	PlaintextHash [crypto.HashSize]byte
	ChunkSize     int
}

// AlgorithmXChaCha20Poly1305 is the only algorithm tag this implementation
// emits or accepts.
const AlgorithmXChaCha20Poly1305 = "xchacha20-poly1305"

// DeriveNonceBase computes the 24-byte nonce base for a file's chunked
// encryption deterministically from its key, so a FileRef's encryption
// descriptor (§4.6) never needs to store the nonce base separately.
func DeriveNonceBase(suite crypto.Suite, key [crypto.KeySize]byte) [crypto.NonceSize]byte {
	digest := suite.Blake3(append([]byte("s5-filechunk-nonce-base"), key[:]...))
	var base [crypto.NonceSize]byte
	copy(base[:], digest[:crypto.NonceSize])
	return base
}

// chunkNonce derives chunk i's nonce from base: the last 8 bytes of the
// 24-byte base nonce are overwritten with i's little-endian encoding, so
// the first 16 bytes stay constant across chunks and only the trailing
// counter varies.
func chunkNonce(base [crypto.NonceSize]byte, index uint64) [crypto.NonceSize]byte {
	nonce := base
	binary.LittleEndian.PutUint64(nonce[crypto.NonceSize-8:], index)
	return nonce
}

// Encrypt splits plaintext into chunks of size chunkSize and AEAD-encrypts
// each under key with a nonce derived from nonceBase and the chunk index.
// The returned blob is the concatenation of the encrypted chunks.
func Encrypt(suite crypto.Suite, key [crypto.KeySize]byte, nonceBase [crypto.NonceSize]byte, chunkSize int, plaintext []byte) ([]byte, error) {
	if chunkSize <= 0 {
		return nil, errs.New(errs.Crypto, "filechunk.Encrypt", "chunk size must be positive")
	}

	numChunks := (len(plaintext) + chunkSize - 1) / chunkSize
	if numChunks == 0 {
		numChunks = 1 // an empty file still encrypts one empty chunk
	}

	out := make([]byte, 0, len(plaintext)+numChunks*tagSize)
	for i := 0; i < numChunks; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(plaintext) {
			end = len(plaintext)
		}
		chunk := plaintext[start:end]

		nonce := chunkNonce(nonceBase, uint64(i))
		ciphertext, err := suite.AEADEncrypt(key, nonce, chunk)
		if err != nil {
			return nil, err
		}
		out = append(out, ciphertext...)
	}
	return out, nil
}

// Decrypt reverses Encrypt, given the original plaintext length so the
// last chunk's boundary (which carries no explicit length field) can be
// recovered.
func Decrypt(suite crypto.Suite, key [crypto.KeySize]byte, nonceBase [crypto.NonceSize]byte, chunkSize int, plaintextLen int, ciphertext []byte) ([]byte, error) {
	if chunkSize <= 0 {
		return nil, errs.New(errs.Crypto, "filechunk.Decrypt", "chunk size must be positive")
	}

	numChunks := (plaintextLen + chunkSize - 1) / chunkSize
	if numChunks == 0 {
		numChunks = 1
	}

	out := make([]byte, 0, plaintextLen)
	pos := 0
	for i := 0; i < numChunks; i++ {
		plainChunkSize := chunkSize
		if i == numChunks-1 {
			remaining := plaintextLen - chunkSize*(numChunks-1)
			plainChunkSize = remaining
		}
		cipherChunkSize := plainChunkSize + tagSize
		if pos+cipherChunkSize > len(ciphertext) {
			return nil, errs.New(errs.IntegrityFailure, "filechunk.Decrypt", "ciphertext shorter than expected for declared plaintext length")
		}
		chunk := ciphertext[pos : pos+cipherChunkSize]
		pos += cipherChunkSize

		nonce := chunkNonce(nonceBase, uint64(i))
		plain, err := suite.AEADDecrypt(key, nonce, chunk)
		if err != nil {
			return nil, errs.Wrap(errs.Crypto, "filechunk.Decrypt", "chunk AEAD tag verification failed", err)
		}
		out = append(out, plain...)
	}
	return out, nil
}

// EncryptedSize returns the ciphertext length Encrypt produces for a
// plaintext of length plaintextLen, per testable property §8.5:
// ceil(L/chunk) * (chunk + tag), except the final chunk may be shorter.
func EncryptedSize(chunkSize, plaintextLen int) int {
	numChunks := (plaintextLen + chunkSize - 1) / chunkSize
	if numChunks == 0 {
		numChunks = 1
	}
	return plaintextLen + numChunks*tagSize
}
