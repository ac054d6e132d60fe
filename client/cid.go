package client

import (
	"context"

	"github.com/s5-go/s5/cid"
	"github.com/s5-go/s5/errs"
)

// PathToCID resolves path and returns its file content's hash, also
// remembering the mapping for a future CIDToPath call.
func (c *Client) PathToCID(ctx context.Context, path string) (cid.Hash, error) {
	segs, err := validatePath(path)
	if err != nil {
		return cid.Hash{}, err
	}
	if len(segs) == 1 {
		return cid.Hash{}, errs.New(errs.IsDirectory, "client.PathToCID", path+" is a directory")
	}
	parentKS, err := c.resolvePath(ctx, segs[:len(segs)-1])
	if err != nil {
		return cid.Hash{}, err
	}
	name := segs[len(segs)-1]
	entry, ok, err := c.resolver.Lookup(ctx, parentKS, name)
	if err != nil {
		return cid.Hash{}, err
	}
	if !ok {
		return cid.Hash{}, errs.New(errs.NotFound, "client.PathToCID", "no such file")
	}
	if entry.File == nil {
		return cid.Hash{}, errs.New(errs.IsDirectory, "client.PathToCID", path+" is a directory")
	}
	hash, err := cid.ParseHash(entry.File.Hash)
	if err != nil {
		return cid.Hash{}, err
	}
	c.rememberCID(path, hash)
	return hash, nil
}

// CIDToPath returns a path this Client has previously resolved to hash,
// via PathToCID, Get, or GetMetadata. There is no network-visible
// reverse index from a content hash back to the paths that reference it
// (a hash may be reachable from many paths, or from none this Client
// has looked at yet), so this only ever reflects this Client's own
// resolution history, never a global answer.
func (c *Client) CIDToPath(hash cid.Hash) (string, bool) {
	c.cidMu.Lock()
	defer c.cidMu.Unlock()
	path, ok := c.hashToPath[hash]
	return path, ok
}

// GetByCID downloads the blob addressed by hash directly, bypassing
// path resolution entirely.
func (c *Client) GetByCID(ctx context.Context, hash cid.Hash) ([]byte, error) {
	return c.net.Get(ctx, hash)
}

// PutByCID uploads value (encoded the same way Put encodes a file's
// content) without attaching it to any directory, returning its content
// hash.
func (c *Client) PutByCID(ctx context.Context, value any) (cid.Hash, error) {
	data, err := encodeValue(value)
	if err != nil {
		return cid.Hash{}, err
	}
	return c.net.Put(ctx, data)
}

// VerifyCID reports whether data hashes to hash.
func (c *Client) VerifyCID(hash cid.Hash, data []byte) bool {
	return cid.VerifyHash(c.suite, hash, data)
}
