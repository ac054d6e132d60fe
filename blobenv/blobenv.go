// Package blobenv implements the mutable-blob AEAD envelope of §4.5: the
// self-describing encrypted frame small mutable payloads (directories,
// hidden-store values) are wrapped in before upload.
package blobenv

import (
	"encoding/binary"

	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/errs"
)

const (
	// Magic is the envelope's first byte.
	Magic byte = 0x8d
	// Version is the envelope's second byte.
	Version byte = 0x01

	headerSize       = 2 // magic + version
	lengthPrefixSize = 4
)

// paddedSizeClasses is the deterministic schedule of total blob sizes
// (header + nonce + AEAD tag + length-prefixed payload) the envelope
// rounds up to, so identical plaintext sizes always produce identical
// ciphertext sizes across clients. Doubling from a 256-byte floor keeps
// the schedule's growth close to the "power-of-two-like" shape §4.5
// describes while bounding the number of classes a realistic payload
// needs to search through.
var paddedSizeClasses = buildSizeClasses()

func buildSizeClasses() []int {
	classes := make([]int, 0, 40)
	for size := 256; size <= 1<<30; size *= 2 {
		classes = append(classes, size)
	}
	return classes
}

// overhead is the total envelope overhead outside the classed payload:
// magic + version + nonce + AEAD tag.
func overhead() int {
	return headerSize + crypto.NonceSize + chachaTagSize
}

// chachaTagSize is the Poly1305 tag length XChaCha20-Poly1305 appends.
const chachaTagSize = 16

// paddedClassFor returns the smallest size class whose payload capacity
// (class size minus overhead) is at least needed bytes.
func paddedClassFor(needed int) (int, error) {
	for _, class := range paddedSizeClasses {
		if class-overhead() >= needed {
			return class, nil
		}
	}
	return 0, errs.New(errs.Crypto, "blobenv.paddedClassFor", "payload too large for any padded size class")
}

// isPaddedClass reports whether totalSize is one of the blob's valid
// full sizes (a schedule entry; each class already includes overhead()).
func isPaddedClass(totalSize int) bool {
	for _, class := range paddedSizeClasses {
		if totalSize == class {
			return true
		}
	}
	return false
}

// Encode wraps plaintext into a fresh envelope encrypted under key.
func Encode(suite crypto.Suite, key [crypto.KeySize]byte, plaintext []byte) ([]byte, error) {
	needed := lengthPrefixSize + len(plaintext)
	class, err := paddedClassFor(needed)
	if err != nil {
		return nil, err
	}
	payloadCapacity := class - overhead()

	padded := make([]byte, payloadCapacity)
	binary.LittleEndian.PutUint32(padded[:lengthPrefixSize], uint32(len(plaintext)))
	copy(padded[lengthPrefixSize:], plaintext)

	nonceBytes, err := suite.Random(crypto.NonceSize)
	if err != nil {
		return nil, err
	}
	var nonce [crypto.NonceSize]byte
	copy(nonce[:], nonceBytes)

	ciphertext, err := suite.AEADEncrypt(key, nonce, padded)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, class)
	out = append(out, Magic, Version)
	out = append(out, nonce[:]...)
	out = append(out, ciphertext...)
	return out, nil
}

// Decode validates and decrypts an envelope, returning the original
// plaintext. Fails with errs.IntegrityFailure on any framing check; fails
// with errs.Crypto if AEAD tag verification fails.
func Decode(suite crypto.Suite, key [crypto.KeySize]byte, blob []byte) ([]byte, error) {
	if len(blob) < headerSize+crypto.NonceSize {
		return nil, errs.New(errs.IntegrityFailure, "blobenv.Decode", "blob too short to be an envelope")
	}
	if blob[0] != Magic || blob[1] != Version {
		return nil, errs.New(errs.IntegrityFailure, "blobenv.Decode", "bad magic or version")
	}
	if !isPaddedClass(len(blob)) {
		return nil, errs.New(errs.IntegrityFailure, "blobenv.Decode", "blob length is not a valid padded size class")
	}

	var nonce [crypto.NonceSize]byte
	copy(nonce[:], blob[headerSize:headerSize+crypto.NonceSize])
	ciphertext := blob[headerSize+crypto.NonceSize:]

	padded, err := suite.AEADDecrypt(key, nonce, ciphertext)
	if err != nil {
		return nil, errs.Wrap(errs.Crypto, "blobenv.Decode", "AEAD tag verification failed (wrong key)", err)
	}
	if len(padded) < lengthPrefixSize {
		return nil, errs.New(errs.IntegrityFailure, "blobenv.Decode", "decrypted payload too short for length prefix")
	}

	n := binary.LittleEndian.Uint32(padded[:lengthPrefixSize])
	if int(n) > len(padded)-lengthPrefixSize {
		return nil, errs.New(errs.IntegrityFailure, "blobenv.Decode", "declared plaintext length exceeds padded payload")
	}
	return padded[lengthPrefixSize : lengthPrefixSize+int(n)], nil
}
