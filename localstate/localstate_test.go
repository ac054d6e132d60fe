package localstate_test

import (
	"testing"

	"github.com/s5-go/s5/localstate"
	"github.com/stretchr/testify/require"
)

func TestIdentityRoundTrip(t *testing.T) {
	s, err := localstate.New()
	require.NoError(t, err)

	_, err = s.GetIdentity()
	require.ErrorIs(t, err, localstate.ErrNotFound)

	require.NoError(t, s.PutIdentity([]byte("seed-bytes")))
	got, err := s.GetIdentity()
	require.NoError(t, err)
	require.Equal(t, []byte("seed-bytes"), got)
}

func TestAuthTokenRoundTrip(t *testing.T) {
	s, err := localstate.New()
	require.NoError(t, err)

	require.NoError(t, s.PutAuthToken("portal-a", []byte("tok1")))
	got, err := s.GetAuthToken("portal-a")
	require.NoError(t, err)
	require.Equal(t, []byte("tok1"), got)

	_, err = s.GetAuthToken("portal-b")
	require.ErrorIs(t, err, localstate.ErrNotFound)
}
