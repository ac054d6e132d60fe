package identity_test

import (
	"testing"

	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/identity"
	"github.com/s5-go/s5/seedphrase"
	"github.com/stretchr/testify/require"
)

func testEntropy() [seedphrase.EntropySize]byte {
	var e [seedphrase.EntropySize]byte
	copy(e[:], []byte("identitytestseed"))
	return e
}

func TestFromEntropyPopulatesAllSlots(t *testing.T) {
	suite := crypto.New()
	id, err := identity.FromEntropy(suite, testEntropy())
	require.NoError(t, err)

	slots := []identity.Slot{
		identity.SlotSigning, identity.SlotEncryption, identity.SlotResolver,
		identity.SlotPublicReserved1, identity.SlotPublicReserved2,
		identity.SlotPortalAccounts, identity.SlotHiddenStore, identity.SlotFilesystem,
		identity.SlotPrivateReserved1, identity.SlotPrivateReserved2, identity.SlotExtension,
	}
	for _, s := range slots {
		seed, err := id.Seed(s)
		require.NoError(t, err, "slot %s", s)
		require.NotEqual(t, [32]byte{}, seed, "slot %s should not be zero", s)
	}
}

func TestDistinctSlotsDeriveDistinctSeeds(t *testing.T) {
	suite := crypto.New()
	id, err := identity.FromEntropy(suite, testEntropy())
	require.NoError(t, err)

	signing, _ := id.Seed(identity.SlotSigning)
	filesystem, _ := id.Seed(identity.SlotFilesystem)
	require.NotEqual(t, signing, filesystem)
}

func TestDeterministic(t *testing.T) {
	suite := crypto.New()
	a, err := identity.FromEntropy(suite, testEntropy())
	require.NoError(t, err)
	b, err := identity.FromEntropy(suite, testEntropy())
	require.NoError(t, err)
	require.Equal(t, a.Seeds, b.Seeds)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	suite := crypto.New()
	id, err := identity.FromEntropy(suite, testEntropy())
	require.NoError(t, err)

	data := id.Marshal()
	got, err := identity.Unmarshal(suite, data)
	require.NoError(t, err)
	require.Equal(t, id.Seeds, got.Seeds)
}

func TestFromSeedPhraseRejectsInvalid(t *testing.T) {
	suite := crypto.New()
	_, err := identity.FromSeedPhrase(suite, "not a valid phrase at all")
	require.Error(t, err)
}

func TestFromSeedPhraseRoundTripsWithGeneratedPhrase(t *testing.T) {
	suite := crypto.New()
	entropy := testEntropy()
	phrase, err := seedphrase.FromEntropy(suite, entropy)
	require.NoError(t, err)

	id, err := identity.FromSeedPhrase(suite, phrase)
	require.NoError(t, err)
	require.Equal(t, entropy, id.Entropy)
}

func TestUnknownSlotErrors(t *testing.T) {
	suite := crypto.New()
	id, err := identity.FromEntropy(suite, testEntropy())
	require.NoError(t, err)

	_, err = id.Seed("not-a-real-slot")
	require.Error(t, err)
}
