package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/errs"
	"github.com/s5-go/s5/registry"
	"github.com/stretchr/testify/require"
)

func keypair(t *testing.T) (crypto.Suite, []byte, [crypto.PublicKeySize]byte) {
	t.Helper()
	suite := crypto.New()
	var seed [32]byte
	copy(seed[:], []byte("registry-test-seed-000000000000"))
	priv, pub := suite.Ed25519Keypair(seed)
	return suite, priv, pub
}

func TestSignVerifyRoundTrip(t *testing.T) {
	suite, priv, pub := keypair(t)
	e, err := registry.Sign(suite, 0x01, priv, pub, 1, []byte("hello"))
	require.NoError(t, err)
	require.True(t, registry.Verify(suite, e))
}

func TestVerifyRejectsTamperedData(t *testing.T) {
	suite, priv, pub := keypair(t)
	e, err := registry.Sign(suite, 0x01, priv, pub, 1, []byte("hello"))
	require.NoError(t, err)
	e.Data = []byte("world")
	require.False(t, registry.Verify(suite, e))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	suite, priv, pub := keypair(t)
	e, err := registry.Sign(suite, 0x01, priv, pub, 42, []byte("payload"))
	require.NoError(t, err)

	encoded := registry.Encode(e)
	decoded, err := registry.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, e, decoded)
	require.True(t, registry.Verify(suite, decoded))
}

func TestSignRejectsOversizedData(t *testing.T) {
	suite, priv, pub := keypair(t)
	_, err := registry.Sign(suite, 0x01, priv, pub, 1, make([]byte, registry.MaxDataSize+1))
	require.Error(t, err)
}

func TestSignRejectsRevisionOverMax(t *testing.T) {
	suite, priv, pub := keypair(t)
	_, err := registry.Sign(suite, 0x01, priv, pub, registry.MaxRevision+1, []byte("x"))
	require.Error(t, err)
}

func TestDecodeRejectsShortInput(t *testing.T) {
	_, err := registry.Decode([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestDecodeRejectsBadTag(t *testing.T) {
	suite, priv, pub := keypair(t)
	e, err := registry.Sign(suite, 0x01, priv, pub, 1, []byte("x"))
	require.NoError(t, err)
	encoded := registry.Encode(e)
	encoded[0] = 0xff
	_, err = registry.Decode(encoded)
	require.Error(t, err)
}

func TestServiceRejectsNonAdvancingRevision(t *testing.T) {
	suite, priv, pub := keypair(t)
	svc := registry.NewService(suite, registry.DefaultServiceConfig(), nil, nil)

	e1, err := registry.Sign(suite, 0x01, priv, pub, 1, []byte("v1"))
	require.NoError(t, err)
	require.NoError(t, svc.Set(context.Background(), e1))

	e0, err := registry.Sign(suite, 0x01, priv, pub, 1, []byte("v1-again"))
	require.NoError(t, err)
	err = svc.Set(context.Background(), e0)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.RevisionConflict))
}

func TestServiceAcceptsAdvancingRevision(t *testing.T) {
	suite, priv, pub := keypair(t)
	svc := registry.NewService(suite, registry.DefaultServiceConfig(), nil, nil)

	e1, err := registry.Sign(suite, 0x01, priv, pub, 1, []byte("v1"))
	require.NoError(t, err)
	require.NoError(t, svc.Set(context.Background(), e1))

	e2, err := registry.Sign(suite, 0x01, priv, pub, 2, []byte("v2"))
	require.NoError(t, err)
	require.NoError(t, svc.Set(context.Background(), e2))

	got, ok, err := svc.Get(context.Background(), pub33(pub))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(2), got.Revision)
}

func TestServiceRejectsBadSignature(t *testing.T) {
	suite, priv, pub := keypair(t)
	svc := registry.NewService(suite, registry.DefaultServiceConfig(), nil, nil)

	e, err := registry.Sign(suite, 0x01, priv, pub, 1, []byte("v1"))
	require.NoError(t, err)
	e.Data = []byte("tampered")
	err = svc.Set(context.Background(), e)
	require.Error(t, err)
}

// fakeSource answers registry_get with a single canned entry.
type fakeSource struct {
	entry Entry
	found bool
}

func (f *fakeSource) RegistryGet(_ context.Context, _ [registry.PublicKeySize]byte) (registry.Entry, bool, error) {
	return f.entry, f.found, nil
}

type Entry = registry.Entry

func TestServiceFallsBackToNetworkWhenUnknownLocally(t *testing.T) {
	suite, priv, pub := keypair(t)
	e, err := registry.Sign(suite, 0x01, priv, pub, 5, []byte("from-network"))
	require.NoError(t, err)

	cfg := registry.DefaultServiceConfig()
	cfg.PollWait = 50 * time.Millisecond
	svc := registry.NewService(suite, cfg, &fakeSource{entry: e, found: true}, nil)

	got, ok, err := svc.Get(context.Background(), pub33(pub))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(5), got.Revision)
}

func TestServiceReturnsNotFoundWhenNetworkHasNothing(t *testing.T) {
	suite, _, pub := keypair(t)
	cfg := registry.DefaultServiceConfig()
	cfg.PollWait = 50 * time.Millisecond
	svc := registry.NewService(suite, cfg, &fakeSource{found: false}, nil)

	_, ok, err := svc.Get(context.Background(), pub33(pub))
	require.NoError(t, err)
	require.False(t, ok)
}

func pub33(pub [crypto.PublicKeySize]byte) [registry.PublicKeySize]byte {
	var out [registry.PublicKeySize]byte
	out[0] = 0x01
	copy(out[1:], pub[:])
	return out
}
