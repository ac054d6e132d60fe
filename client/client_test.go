package client_test

import (
	"context"
	"testing"

	"github.com/s5-go/s5/client"
	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/errs"
	"github.com/s5-go/s5/identity"
	"github.com/s5-go/s5/network"
	"github.com/s5-go/s5/seedphrase"
	"github.com/stretchr/testify/require"
)

func testEntropy(suffix byte) [seedphrase.EntropySize]byte {
	var e [seedphrase.EntropySize]byte
	for i := range e {
		e[i] = suffix
	}
	return e
}

func newTestClient(t *testing.T, opts ...client.Option) *client.Client {
	t.Helper()
	suite := crypto.New()
	id, err := identity.FromEntropy(suite, testEntropy(0x11))
	require.NoError(t, err)
	net := network.NewMemory(suite)
	c, err := client.New(suite, id, net, opts...)
	require.NoError(t, err)
	return c
}

func TestPutThenGetRoundTripsString(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "home/greeting.txt", "hello s5"))

	v, ok, err := c.Get(ctx, "home/greeting.txt")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hello s5", v)
}

func TestPutThenGetRoundTripsBytes(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	// Not valid UTF-8 and not a self-contained CBOR/JSON item, so the
	// permissive decode on Get falls all the way through to raw bytes.
	data := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}
	require.NoError(t, c.Put(ctx, "home/blob.bin", data))

	v, ok, err := c.Get(ctx, "home/blob.bin")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, data, v)
}

func TestPutThenGetRoundTripsStructuredValue(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	value := map[string]any{"count": uint64(3), "label": "widgets"}
	require.NoError(t, c.Put(ctx, "home/data.json", value))

	v, ok, err := c.Get(ctx, "home/data.json")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, value, v)
}

func TestPutCreatesMissingIntermediateDirectories(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "home/photos/2024/summer.jpg", "jpeg bytes"))

	v, ok, err := c.Get(ctx, "home/photos/2024/summer.jpg")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "jpeg bytes", v)

	page, err := c.List(ctx, "home/photos", client.ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	require.Equal(t, "2024", page.Entries[0].Name)
	require.Equal(t, client.EntryTypeDirectory, page.Entries[0].Type)
}

func TestPutOverwriteAdvancesRevision(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "home/note.txt", "v1"))
	require.NoError(t, c.Put(ctx, "home/note.txt", "v2"))

	v, ok, err := c.Get(ctx, "home/note.txt")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v2", v)
}

func TestGetMissingPathReturnsNotOkNoError(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	v, ok, err := c.Get(ctx, "home/never-written.txt")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, v)
}

func TestGetOnDirectoryFails(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "home/docs/a.txt", "a"))

	_, _, err := c.Get(ctx, "home/docs")
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.IsDirectory))
}

func TestPutThroughFileSegmentFails(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "home/a", "file content"))

	err := c.Put(ctx, "home/a/b", "nested")
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.IsFile))
}

func TestPutDirectlyToRootFails(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	err := c.Put(ctx, "home", "anything")
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.RootImmutable))
}

func TestPutRejectsUnknownRoot(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	err := c.Put(ctx, "other/a.txt", "x")
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.PathInvalid))
}

func TestDistinctRootsDoNotCollide(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "home/same-name.txt", "home value"))
	require.NoError(t, c.Put(ctx, "archive/same-name.txt", "archive value"))

	homeVal, _, err := c.Get(ctx, "home/same-name.txt")
	require.NoError(t, err)
	archiveVal, _, err := c.Get(ctx, "archive/same-name.txt")
	require.NoError(t, err)
	require.Equal(t, "home value", homeVal)
	require.Equal(t, "archive value", archiveVal)
}

func TestWithoutEncryptionStillRoundTrips(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "home/plain.txt", "plaintext on the wire", client.WithoutEncryption()))

	v, ok, err := c.Get(ctx, "home/plain.txt")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "plaintext on the wire", v)
}
