package hamt_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/s5-go/s5/cid"
	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/dirv1"
	"github.com/s5-go/s5/hamt"
	"github.com/stretchr/testify/require"
)

// memStore is a trivial in-memory BlobStore for exercising the trie
// without a real network.
type memStore struct {
	suite crypto.Suite
	mu    sync.Mutex
	blobs map[cid.Hash][]byte
}

func newMemStore() *memStore {
	return &memStore{suite: crypto.New(), blobs: make(map[cid.Hash][]byte)}
}

func (s *memStore) Put(_ context.Context, data []byte) (cid.Hash, error) {
	h := cid.NewHash(s.suite, data)
	s.mu.Lock()
	s.blobs[h] = append([]byte{}, data...)
	s.mu.Unlock()
	return h, nil
}

func (s *memStore) Get(_ context.Context, h cid.Hash) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[h]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return data, nil
}

func fileEntry(n int) dirv1.Entry {
	return dirv1.Entry{File: &dirv1.FileRef{Hash: make([]byte, 33), Size: uint64(n)}}
}

func TestInsertLookupManyKeys(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cfg := hamt.DefaultConfig()

	const n = 1200
	var root *hamt.Node
	var err error
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("file-%05d.txt", i)
		root, err = hamt.Insert(ctx, store, cfg, root, name, fileEntry(i))
		require.NoError(t, err)
	}
	require.Equal(t, uint64(n), root.Count)

	for i := 0; i < n; i++ {
		name := fmt.Sprintf("file-%05d.txt", i)
		v, ok, err := hamt.Lookup(ctx, store, cfg, root, name)
		require.NoError(t, err)
		require.True(t, ok, "missing %s", name)
		require.Equal(t, uint64(i), v.File.Size)
	}
}

func TestLeafSplitsAtThreshold(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cfg := hamt.DefaultConfig()
	cfg.MaxInlineEntries = 4

	var root *hamt.Node
	var err error
	for i := 0; i < 50; i++ {
		root, err = hamt.Insert(ctx, store, cfg, root, fmt.Sprintf("k%03d", i), fileEntry(i))
		require.NoError(t, err)
	}

	for i := 0; i < 50; i++ {
		_, ok, err := hamt.Lookup(ctx, store, cfg, root, fmt.Sprintf("k%03d", i))
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestDeleteThenLookupReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cfg := hamt.DefaultConfig()

	var root *hamt.Node
	var err error
	for i := 0; i < 200; i++ {
		root, err = hamt.Insert(ctx, store, cfg, root, fmt.Sprintf("d%03d", i), fileEntry(i))
		require.NoError(t, err)
	}

	root, deleted, err := hamt.Delete(ctx, store, cfg, root, "d100")
	require.NoError(t, err)
	require.True(t, deleted)

	_, ok, err := hamt.Lookup(ctx, store, cfg, root, "d100")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = hamt.Lookup(ctx, store, cfg, root, "d101")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestInsertThenDeleteAllEmptiesRoot(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cfg := hamt.DefaultConfig()

	var root *hamt.Node
	var err error
	names := make([]string, 0, 300)
	for i := 0; i < 300; i++ {
		name := fmt.Sprintf("e%03d", i)
		names = append(names, name)
		root, err = hamt.Insert(ctx, store, cfg, root, name, fileEntry(i))
		require.NoError(t, err)
	}

	var deleted bool
	for _, name := range names {
		root, deleted, err = hamt.Delete(ctx, store, cfg, root, name)
		require.NoError(t, err)
		require.True(t, deleted)
	}
	require.Equal(t, uint64(0), root.Count)
}

func TestIterationYieldsEachNameExactlyOnce(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cfg := hamt.DefaultConfig()
	cfg.MaxInlineEntries = 8

	var root *hamt.Node
	var err error
	const n = 500
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("iter-%04d", i)
		root, err = hamt.Insert(ctx, store, cfg, root, name, fileEntry(i))
		require.NoError(t, err)
	}

	var cursor *hamt.Cursor
	total := 0
	for {
		entries, next, err := hamt.Iterate(ctx, store, root, cursor, 37)
		require.NoError(t, err)
		if len(entries) == 0 {
			break
		}
		for _, e := range entries {
			require.False(t, seen[e.Name], "duplicate %s", e.Name)
			seen[e.Name] = true
		}
		total += len(entries)
		cursor = next
	}
	require.Equal(t, n, total)
	require.Len(t, seen, n)
}

func TestCursorResumeMatchesFullListing(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	cfg := hamt.DefaultConfig()

	var root *hamt.Node
	var err error
	const n = 100
	for i := 0; i < n; i++ {
		root, err = hamt.Insert(ctx, store, cfg, root, fmt.Sprintf("c%03d", i), fileEntry(i))
		require.NoError(t, err)
	}

	full, _, err := hamt.Iterate(ctx, store, root, nil, 0)
	require.NoError(t, err)
	require.Len(t, full, n)

	k := 30
	first, cursor, err := hamt.Iterate(ctx, store, root, nil, k)
	require.NoError(t, err)
	require.Equal(t, full[:k], first)

	rest, _, err := hamt.Iterate(ctx, store, root, cursor, 0)
	require.NoError(t, err)
	require.Equal(t, full[k:], rest)
}

func TestCursorEncodeDecodeRoundTrip(t *testing.T) {
	c := hamt.Cursor{Path: []int{3, 17, 2, 0}}
	s := hamt.EncodeCursor(c)
	got, err := hamt.DecodeCursor(s)
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := hamt.DecodeCursor("not valid base64url!!")
	require.Error(t, err)
}
