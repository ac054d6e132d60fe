// Package seedphrase implements the 15-word human-readable encoding of
// 16 bytes of entropy described in §3.1 and §4.3: words 1-13 carry the
// entropy itself (the 13th restricted to the first 256 dictionary
// entries), words 14-15 carry a 20-bit BLAKE3-derived checksum.
package seedphrase

import (
	"encoding/hex"
	"strings"

	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/errs"
)

const (
	// WordCount is the number of words a complete phrase carries.
	WordCount = 15
	// EntropyWords is the number of leading words that encode entropy bits.
	EntropyWords = 13
	// ChecksumWords is the number of trailing words that encode the checksum.
	ChecksumWords = 2
	// LastEntropyWordRange restricts the 13th word to the dictionary's
	// first N entries, so it contributes exactly 8 bits instead of 10.
	LastEntropyWordRange = 256
	// EntropySize is the length, in bytes, of the decoded entropy.
	EntropySize = 16
)

var prefixIndex map[string]int

func init() {
	prefixIndex = make(map[string]int, len(dictionary))
	for i, w := range dictionary {
		prefixIndex[w[:3]] = i
	}
}

// Normalize lowercases and collapses whitespace in a raw phrase, matching
// the normalisation step §4.3 requires before validation.
func Normalize(phrase string) string {
	fields := strings.Fields(strings.ToLower(phrase))
	return strings.Join(fields, " ")
}

// FromEntropy encodes 16 bytes of entropy into a 15-word phrase.
func FromEntropy(suite crypto.Suite, entropy [EntropySize]byte) (string, error) {
	// Words 0..11 each carry a full 10-bit slice; word 12 carries only 8
	// bits, so the entropy is packed MSB-first across 128 bits total.
	entropyBits := bytesToBits(entropy[:])

	words := make([]string, 0, WordCount)
	pos := 0
	for i := 0; i < EntropyWords-1; i++ {
		idx := bitsToInt(entropyBits[pos : pos+10])
		words = append(words, dictionary[idx])
		pos += 10
	}
	lastIdx := bitsToInt(entropyBits[pos:])
	if lastIdx >= LastEntropyWordRange {
		return "", errs.New(errs.InvalidSeedPhrase, "seedphrase.FromEntropy", "13th word index out of range")
	}
	words = append(words, dictionary[lastIdx])

	checksum := checksumBits(suite, entropy)
	for i := 0; i < ChecksumWords; i++ {
		idx := bitsToInt(checksum[i*10 : i*10+10])
		words = append(words, dictionary[idx])
	}

	return strings.Join(words, " "), nil
}

// ToEntropy validates and decodes a phrase back into its 16 bytes of
// entropy. Fails with InvalidSeedPhrase at any validation step, per §4.3.
func ToEntropy(suite crypto.Suite, phrase string) ([EntropySize]byte, error) {
	var out [EntropySize]byte

	normalized := Normalize(phrase)
	words := strings.Split(normalized, " ")
	if len(words) != WordCount {
		return out, errs.New(errs.InvalidSeedPhrase, "seedphrase.ToEntropy", "expected 15 words")
	}

	indices := make([]int, WordCount)
	for i, w := range words {
		if len(w) < 3 {
			return out, errs.New(errs.InvalidSeedPhrase, "seedphrase.ToEntropy", "word too short to match a dictionary prefix")
		}
		idx, ok := prefixIndex[w[:3]]
		if !ok {
			return out, errs.New(errs.InvalidSeedPhrase, "seedphrase.ToEntropy", "word prefix not found in dictionary")
		}
		indices[i] = idx
	}
	if indices[EntropyWords-1] >= LastEntropyWordRange {
		return out, errs.New(errs.InvalidSeedPhrase, "seedphrase.ToEntropy", "13th word must be within the first 256 dictionary entries")
	}

	entropyBits := make([]bit, 0, 128)
	for i := 0; i < EntropyWords-1; i++ {
		entropyBits = append(entropyBits, intToBits(indices[i], 10)...)
	}
	entropyBits = append(entropyBits, intToBits(indices[EntropyWords-1], 8)...)

	entropyBytes := bitsToBytes(entropyBits)
	copy(out[:], entropyBytes)

	want := checksumBits(suite, out)
	got := make([]bit, 0, 20)
	for i := 0; i < ChecksumWords; i++ {
		got = append(got, intToBits(indices[EntropyWords+i], 10)...)
	}
	if !bitsEqual(want, got) {
		return out, errs.New(errs.InvalidSeedPhrase, "seedphrase.ToEntropy", "checksum mismatch")
	}

	return out, nil
}

// checksumBits derives the 20-bit checksum from BLAKE3(entropy).
func checksumBits(suite crypto.Suite, entropy [EntropySize]byte) []bit {
	h := suite.Blake3(entropy[:])
	return bytesToBits(h[:])[:20]
}

// EntropyHex is a convenience for tests and diagnostics (spec.md S3).
func EntropyHex(entropy [EntropySize]byte) string {
	return hex.EncodeToString(entropy[:])
}
