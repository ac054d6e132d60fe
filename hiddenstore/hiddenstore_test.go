package hiddenstore_test

import (
	"context"
	"testing"

	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/hiddenstore"
	"github.com/s5-go/s5/network"
	"github.com/stretchr/testify/require"
)

type account struct {
	Portal string `json:"portal"`
	Token  string `json:"token"`
}

func rootSeed() [32]byte {
	var s [32]byte
	copy(s[:], []byte("hidden-store-root-seed-000000000"))
	return s
}

func TestSetThenGetJSONRoundTrip(t *testing.T) {
	suite := crypto.New()
	net := network.NewMemory(suite)
	store := hiddenstore.New(suite, rootSeed(), net)

	in := account{Portal: "example.org", Token: "secret-token"}
	require.NoError(t, store.SetJSON(context.Background(), "portals/example.org", in))

	var out account
	require.NoError(t, store.GetJSON(context.Background(), "portals/example.org", &out))
	require.Equal(t, in, out)
}

func TestGetJSONUnknownPathFails(t *testing.T) {
	suite := crypto.New()
	net := network.NewMemory(suite)
	store := hiddenstore.New(suite, rootSeed(), net)

	var out account
	err := store.GetJSON(context.Background(), "never/written", &out)
	require.Error(t, err)
}

func TestDistinctPathsDoNotCollide(t *testing.T) {
	suite := crypto.New()
	net := network.NewMemory(suite)
	store := hiddenstore.New(suite, rootSeed(), net)

	require.NoError(t, store.SetJSON(context.Background(), "a", account{Portal: "a"}))
	require.NoError(t, store.SetJSON(context.Background(), "b", account{Portal: "b"}))

	var outA, outB account
	require.NoError(t, store.GetJSON(context.Background(), "a", &outA))
	require.NoError(t, store.GetJSON(context.Background(), "b", &outB))
	require.Equal(t, "a", outA.Portal)
	require.Equal(t, "b", outB.Portal)
}

func TestSetJSONOverwriteAdvancesRevision(t *testing.T) {
	suite := crypto.New()
	net := network.NewMemory(suite)
	store := hiddenstore.New(suite, rootSeed(), net)

	require.NoError(t, store.SetJSON(context.Background(), "p", account{Portal: "v1"}))
	require.NoError(t, store.SetJSON(context.Background(), "p", account{Portal: "v2"}))

	var out account
	require.NoError(t, store.GetJSON(context.Background(), "p", &out))
	require.Equal(t, "v2", out.Portal)
}

func TestListReflectsWritesMadeThroughThisStore(t *testing.T) {
	suite := crypto.New()
	net := network.NewMemory(suite)
	store := hiddenstore.New(suite, rootSeed(), net)

	require.NoError(t, store.SetJSON(context.Background(), "x", account{Portal: "x"}))
	require.NoError(t, store.SetJSON(context.Background(), "y", account{Portal: "y"}))

	require.ElementsMatch(t, []string{"x", "y"}, store.List())
}
