// Package identity builds the typed sub-seed slot map described in §4.3
// from a seed phrase: root entropy -> main identity seed -> public/private
// sub-roots -> one 32-byte sub-seed per named slot.
package identity

import (
	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/errs"
	"github.com/s5-go/s5/keyderive"
	"github.com/s5-go/s5/seedphrase"
)

// Slot names one of the fixed sub-seed purposes §3.1 requires.
type Slot string

const (
	SlotSigning          Slot = "signing"
	SlotEncryption       Slot = "encryption"
	SlotResolver         Slot = "resolver"
	SlotPublicReserved1  Slot = "public-reserved-1"
	SlotPublicReserved2  Slot = "public-reserved-2"
	SlotPortalAccounts   Slot = "portal-accounts"
	SlotHiddenStore      Slot = "hidden-store"
	SlotFilesystem       Slot = "filesystem"
	SlotPrivateReserved1 Slot = "private-reserved-1"
	SlotPrivateReserved2 Slot = "private-reserved-2"
	SlotExtension        Slot = "extension"
)

// publicSlotTweaks assigns each public-sub-root slot its tweak integer.
// signing/encryption/resolver and the public-reserved slots all derive
// from the public sub-root, since they identify the owner externally.
var publicSlotTweaks = map[Slot]uint64{
	SlotSigning:         1,
	SlotEncryption:      2,
	SlotResolver:        3,
	SlotPublicReserved1: 4,
	SlotPublicReserved2: 5,
}

// privateSlotTweaks assigns each private-sub-root slot its tweak integer.
// portal-accounts/hidden-store/filesystem and the private-reserved and
// extension slots all derive from the private sub-root, since they guard
// data the owner alone should ever read.
var privateSlotTweaks = map[Slot]uint64{
	SlotPortalAccounts:   1,
	SlotHiddenStore:      2,
	SlotFilesystem:       3,
	SlotPrivateReserved1: 4,
	SlotPrivateReserved2: 5,
	SlotExtension:        6,
}

// Identity is the mapping from slot name to 32-byte sub-seed, plus the
// root entropy it was derived from (retained so the identity can be
// re-serialised or used to re-derive additional future slots).
type Identity struct {
	Entropy [seedphrase.EntropySize]byte
	Seeds   map[Slot][32]byte
}

// FromSeedPhrase validates and normalises phrase, then derives the full
// slot map per §4.3. Fails with InvalidSeedPhrase on any validation error.
func FromSeedPhrase(suite crypto.Suite, phrase string) (*Identity, error) {
	entropy, err := seedphrase.ToEntropy(suite, phrase)
	if err != nil {
		return nil, err
	}
	return FromEntropy(suite, entropy)
}

// FromEntropy derives the full slot map directly from 16 bytes of
// entropy, skipping phrase validation (used when entropy is already
// known to be valid, e.g. freshly generated).
func FromEntropy(suite crypto.Suite, entropy [seedphrase.EntropySize]byte) (*Identity, error) {
	if len(entropy) != seedphrase.EntropySize {
		return nil, errs.New(errs.InvalidSeedPhrase, "identity.FromEntropy", "entropy must be exactly 16 bytes")
	}

	root := suite.Blake3(entropy[:])

	mainIdentitySeed := keyderive.Integer(suite, root, 0)
	publicIdentitySeed := keyderive.Integer(suite, mainIdentitySeed, 1)
	privateDataSeed := keyderive.Integer(suite, mainIdentitySeed, 64)

	publicSubRoot := keyderive.Integer(suite, publicIdentitySeed, 0)
	privateSubRoot := keyderive.Integer(suite, privateDataSeed, 0)

	seeds := make(map[Slot][32]byte, len(publicSlotTweaks)+len(privateSlotTweaks))
	for slot, tweak := range publicSlotTweaks {
		seeds[slot] = keyderive.Integer(suite, publicSubRoot, tweak)
	}
	for slot, tweak := range privateSlotTweaks {
		seeds[slot] = keyderive.Integer(suite, privateSubRoot, tweak)
	}

	return &Identity{Entropy: entropy, Seeds: seeds}, nil
}

// Seed returns the 32-byte sub-seed for a slot, or an error if slot is
// not one of the fixed names this package derives.
func (id *Identity) Seed(slot Slot) ([32]byte, error) {
	s, ok := id.Seeds[slot]
	if !ok {
		return [32]byte{}, errs.New(errs.PathInvalid, "identity.Seed", "unknown identity slot: "+string(slot))
	}
	return s, nil
}

// Marshal serialises the identity to its stable binary persistence form:
// just the 16 raw entropy bytes, since the full slot map is always
// re-derivable from them.
func (id *Identity) Marshal() []byte {
	out := make([]byte, seedphrase.EntropySize)
	copy(out, id.Entropy[:])
	return out
}

// Unmarshal reconstructs an Identity from the bytes Marshal produced.
func Unmarshal(suite crypto.Suite, data []byte) (*Identity, error) {
	if len(data) != seedphrase.EntropySize {
		return nil, errs.New(errs.InvalidSeedPhrase, "identity.Unmarshal", "expected 16 bytes of entropy")
	}
	var entropy [seedphrase.EntropySize]byte
	copy(entropy[:], data)
	return FromEntropy(suite, entropy)
}
