package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/s5-go/s5/blobenv"
	"github.com/s5-go/s5/cid"
	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/dirv1"
	"github.com/s5-go/s5/errs"
	"github.com/s5-go/s5/hamt"
	"github.com/s5-go/s5/identity"
	"github.com/s5-go/s5/metrics"
	"github.com/s5-go/s5/network"
	"github.com/s5-go/s5/registry"
	"github.com/s5-go/s5/resolver"
	"github.com/s5-go/s5/ttlcache"
)

// reservedRoots are the two immutable top-level directories the
// filesystem API provisions from the identity's filesystem slot; no
// path may create, rename, or delete a root by these names (§4.10).
var reservedRoots = []string{"home", "archive"}

// Client is the filesystem API surface: put/get/getMetadata/delete/list
// over a content-addressed, HAMT-sharded directory tree rooted at one
// identity's "home" and "archive" directories.
type Client struct {
	suite   crypto.Suite
	id      *identity.Identity
	net     network.Network
	cfg     Config
	hamtCfg hamt.Config

	registrySvc *registry.Service
	resolver    *resolver.Resolver
	blobCache   *ttlcache.Cache[[]byte]

	rootSeeds map[string][32]byte
	rootKeys  map[string]resolver.KeySet

	cidMu      sync.Mutex
	pathToHash map[string]cid.Hash
	hashToPath map[cid.Hash]string
}

// New constructs a Client for id over net. The reserved roots' write
// seeds are derived immediately from identity.SlotFilesystem; the root
// directories themselves are created lazily, on first write, if not
// already published under their registry key.
func New(suite crypto.Suite, id *identity.Identity, net network.Network, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	filesystemSeed, err := id.Seed(identity.SlotFilesystem)
	if err != nil {
		return nil, err
	}

	hamtCfg := hamt.Config{MaxInlineEntries: cfg.HAMTThreshold, HashFunc: hamt.HashXXHash64}

	c := &Client{
		suite:   suite,
		id:      id,
		net:     net,
		cfg:     cfg,
		hamtCfg: hamtCfg,
		registrySvc: registry.NewService(suite, registry.ServiceConfig{
			CacheTTL:  cfg.RegistryCacheTTL,
			PollWait:  cfg.RegistryPollWait,
			GraceWait: cfg.RegistryGraceWait,
		}, net, net),
		resolver:   resolver.New(suite, net, hamtCfg),
		blobCache:  ttlcache.New[[]byte]("blob", cfg.BlobCacheTTL, 1000),
		rootSeeds:  make(map[string][32]byte, len(reservedRoots)),
		rootKeys:   make(map[string]resolver.KeySet, len(reservedRoots)),
		pathToHash: make(map[string]cid.Hash),
		hashToPath: make(map[cid.Hash]string),
	}

	for _, name := range reservedRoots {
		seed := resolver.DeriveWriteSeed(suite, filesystemSeed, name)
		_, pub := suite.Ed25519Keypair(seed)
		var tagged [registry.PublicKeySize]byte
		tagged[0] = 0x01
		copy(tagged[1:], pub[:])
		c.rootSeeds[name] = seed
		c.rootKeys[name] = resolver.KeySet{PublicKey: tagged, WriteSeed: &seed}
	}

	return c, nil
}

// validatePath splits and validates a filesystem path: non-empty,
// no empty segments, rooted at one of the two reserved roots.
func validatePath(path string) ([]string, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, errs.New(errs.PathInvalid, "client", "path must not be empty")
	}
	segs := strings.Split(trimmed, "/")
	for _, s := range segs {
		if s == "" {
			return nil, errs.New(errs.PathInvalid, "client", "path must not contain empty segments")
		}
	}
	if segs[0] != "home" && segs[0] != "archive" {
		return nil, errs.New(errs.PathInvalid, "client", "path must start with home or archive")
	}
	return segs, nil
}

// rootKeySet returns the key set and write seed for one of the two
// reserved roots.
func (c *Client) rootKeySet(name string) (resolver.KeySet, [32]byte, bool) {
	ks, ok := c.rootKeys[name]
	if !ok {
		return resolver.KeySet{}, [32]byte{}, false
	}
	return ks, c.rootSeeds[name], true
}

// resolvePath descends from the root named segs[0] through each of
// segs[1:], each of which must name a directory. It returns the key set
// of the final directory reached.
func (c *Client) resolvePath(ctx context.Context, segs []string) (resolver.KeySet, error) {
	if len(segs) == 0 {
		return resolver.KeySet{}, errs.New(errs.PathInvalid, "client", "path must include a root")
	}
	current, _, ok := c.rootKeySet(segs[0])
	if !ok {
		return resolver.KeySet{}, errs.New(errs.PathInvalid, "client", "unknown root "+segs[0])
	}
	for _, seg := range segs[1:] {
		entry, ok, err := c.resolver.Lookup(ctx, current, seg)
		if err != nil {
			return resolver.KeySet{}, err
		}
		if !ok {
			return resolver.KeySet{}, errs.New(errs.NotFound, "client", "no entry named "+seg)
		}
		if entry.Dir == nil {
			return resolver.KeySet{}, errs.New(errs.IsFile, "client", seg+" is a file, not a directory")
		}
		current, err = c.resolver.ChildKeySet(current, entry.Dir)
		if err != nil {
			return resolver.KeySet{}, err
		}
	}
	return current, nil
}

// directoryOrEmpty fetches ks's directory, treating a not-yet-published
// registry key (e.g. a reserved root never written to) as an empty
// directory rather than an error.
func (c *Client) directoryOrEmpty(ctx context.Context, ks resolver.KeySet) (dirv1.Directory, error) {
	d, err := c.resolver.Directory(ctx, ks)
	if err != nil {
		if errs.Is(err, errs.NotFound) {
			return dirv1.New(), nil
		}
		return dirv1.Directory{}, err
	}
	return d, nil
}

// encodeDirectory serialises d, wrapping it in a blobenv envelope under
// ks's encryption key if the directory is itself encrypted.
func (c *Client) encodeDirectory(ks resolver.KeySet, d dirv1.Directory) ([]byte, error) {
	encoded, err := dirv1.Encode(d)
	if err != nil {
		return nil, err
	}
	if ks.EncryptionKey != nil {
		return blobenv.Encode(c.suite, *ks.EncryptionKey, encoded)
	}
	return encoded, nil
}

// publishWithRetry applies mutate to ks's current directory and
// publishes the result, re-fetching and re-applying mutate on a
// revision conflict up to cfg.MaxRetries times (§4.10). Since mutate
// always starts from the freshly re-fetched directory, a conflicting
// concurrent write is naturally merged: the loser's insert/delete is
// simply re-applied on top of the winner's content.
func (c *Client) publishWithRetry(ctx context.Context, ks resolver.KeySet, writeSeed [32]byte, mutate func(d *dirv1.Directory) error) error {
	var zero [32]byte
	if writeSeed == zero {
		return errs.New(errs.NoWriteAccess, "client.publishWithRetry", "no write access to this directory")
	}
	priv, pub := c.suite.Ed25519Keypair(writeSeed)

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		d, err := c.directoryOrEmpty(ctx, ks)
		if err != nil {
			return err
		}
		if err := mutate(&d); err != nil {
			return err
		}
		encoded, err := c.encodeDirectory(ks, d)
		if err != nil {
			return err
		}
		hash, err := c.net.Put(ctx, encoded)
		if err != nil {
			return err
		}

		revision := uint64(1)
		if existing, ok, err := c.registrySvc.Get(ctx, ks.PublicKey); err == nil && ok {
			revision = existing.Revision + 1
		}

		entry, err := registry.Sign(c.suite, 0x01, priv, pub, revision, hash[:])
		if err != nil {
			return err
		}
		if err := c.registrySvc.Set(ctx, entry); err != nil {
			if errs.Is(err, errs.RevisionConflict) {
				metrics.RegistryRetriesTotal.WithLabelValues("retried").Inc()
				lastErr = err
				continue
			}
			return err
		}
		return nil
	}
	metrics.RegistryRetriesTotal.WithLabelValues("conflict").Inc()
	return lastErr
}

// createChildDirectory provisions and publishes a brand new empty
// directory named name under parentKS, links it into the parent via a
// DirRef carrying name's write seed wrapped under the parent's write
// key, and returns the new directory's key set and write seed.
func (c *Client) createChildDirectory(ctx context.Context, parentKS resolver.KeySet, parentSeed [32]byte, name string) (resolver.KeySet, [32]byte, error) {
	if parentKS.WriteSeed == nil {
		return resolver.KeySet{}, [32]byte{}, errs.New(errs.NoWriteAccess, "client.createChildDirectory", "no write access to parent directory")
	}

	childSeed := resolver.DeriveWriteSeed(c.suite, parentSeed, name)
	priv, pub := c.suite.Ed25519Keypair(childSeed)

	encoded, err := dirv1.Encode(dirv1.New())
	if err != nil {
		return resolver.KeySet{}, [32]byte{}, err
	}
	hash, err := c.net.Put(ctx, encoded)
	if err != nil {
		return resolver.KeySet{}, [32]byte{}, err
	}
	entry, err := registry.Sign(c.suite, 0x01, priv, pub, 1, hash[:])
	if err != nil {
		return resolver.KeySet{}, [32]byte{}, err
	}
	if err := c.registrySvc.Set(ctx, entry); err != nil {
		return resolver.KeySet{}, [32]byte{}, err
	}

	wrapped, err := blobenv.Encode(c.suite, *parentKS.WriteSeed, childSeed[:])
	if err != nil {
		return resolver.KeySet{}, [32]byte{}, err
	}

	var tagged [registry.PublicKeySize]byte
	tagged[0] = 0x01
	copy(tagged[1:], pub[:])

	ref := &dirv1.DirRef{
		CreatedAt:         uint64(time.Now().Unix()),
		PublicKey:         append([]byte{}, tagged[:]...),
		EncryptedWriteKey: wrapped,
	}

	if err := c.publishWithRetry(ctx, parentKS, parentSeed, func(d *dirv1.Directory) error {
		return c.insertEntry(ctx, d, name, dirv1.Entry{Dir: ref})
	}); err != nil {
		return resolver.KeySet{}, [32]byte{}, err
	}

	return resolver.KeySet{PublicKey: tagged, WriteSeed: &childSeed}, childSeed, nil
}

// insertEntry adds or overwrites name in d, transparently targeting the
// inline map or the HAMT depending on d's current sharding state, and
// converts d to sharded once it grows past cfg.HAMTThreshold.
func (c *Client) insertEntry(ctx context.Context, d *dirv1.Directory, name string, value dirv1.Entry) error {
	if dirv1.Sharded(*d) {
		rootHash, err := cid.ParseHash(d.HAMTRoot)
		if err != nil {
			return err
		}
		rootBytes, err := c.net.Get(ctx, rootHash)
		if err != nil {
			return err
		}
		root, err := hamt.Decode(rootBytes)
		if err != nil {
			return err
		}
		updated, err := hamt.Insert(ctx, c.net, c.hamtCfg, &root, name, value)
		if err != nil {
			return err
		}
		encoded, err := hamt.Encode(*updated)
		if err != nil {
			return err
		}
		newHash, err := c.net.Put(ctx, encoded)
		if err != nil {
			return err
		}
		d.HAMTRoot = newHash[:]
		return nil
	}

	if d.Entries == nil {
		d.Entries = make(map[string]dirv1.Entry)
	}
	d.Entries[name] = value
	if len(d.Entries) > c.cfg.HAMTThreshold {
		return c.shardDirectory(ctx, d)
	}
	return nil
}

// shardDirectory converts d's inline entry map into a HAMT, replacing
// Entries with HAMTRoot (§4.8).
func (c *Client) shardDirectory(ctx context.Context, d *dirv1.Directory) error {
	var root *hamt.Node
	var err error
	for _, name := range dirv1.SortedNames(*d) {
		root, err = hamt.Insert(ctx, c.net, c.hamtCfg, root, name, d.Entries[name])
		if err != nil {
			return err
		}
	}
	encoded, err := hamt.Encode(*root)
	if err != nil {
		return err
	}
	hash, err := c.net.Put(ctx, encoded)
	if err != nil {
		return err
	}
	d.HAMTRoot = hash[:]
	d.Entries = make(map[string]dirv1.Entry)
	metrics.HamtShardedDirectories.WithLabelValues(c.cfg.ClientName).Inc()
	return nil
}

// deleteEntry removes name from d, reporting whether it was present.
func (c *Client) deleteEntry(ctx context.Context, d *dirv1.Directory, name string) (bool, error) {
	if dirv1.Sharded(*d) {
		rootHash, err := cid.ParseHash(d.HAMTRoot)
		if err != nil {
			return false, err
		}
		rootBytes, err := c.net.Get(ctx, rootHash)
		if err != nil {
			return false, err
		}
		root, err := hamt.Decode(rootBytes)
		if err != nil {
			return false, err
		}
		updated, deleted, err := hamt.Delete(ctx, c.net, c.hamtCfg, &root, name)
		if err != nil || !deleted {
			return deleted, err
		}
		if updated.Count == 0 {
			d.HAMTRoot = nil
			d.Entries = make(map[string]dirv1.Entry)
			metrics.HamtShardedDirectories.WithLabelValues(c.cfg.ClientName).Dec()
			return true, nil
		}
		encoded, err := hamt.Encode(*updated)
		if err != nil {
			return false, err
		}
		newHash, err := c.net.Put(ctx, encoded)
		if err != nil {
			return false, err
		}
		d.HAMTRoot = newHash[:]
		return true, nil
	}

	if _, ok := d.Entries[name]; !ok {
		return false, nil
	}
	delete(d.Entries, name)
	return true, nil
}

// recordErr tags err's Kind onto the operation-errors counter and
// returns err unchanged, so callers can write "return c.recordErr(...)".
func (c *Client) recordErr(op string, err error) error {
	kind := "unknown"
	var e *errs.Error
	if errors.As(err, &e) {
		kind = string(e.Kind)
	}
	metrics.OperationErrorsTotal.WithLabelValues(op, kind).Inc()
	return err
}

// rememberCID records path as resolving to hash, for the best-effort
// local PathToCID/CIDToPath cache (§6.4).
func (c *Client) rememberCID(path string, hash cid.Hash) {
	c.cidMu.Lock()
	defer c.cidMu.Unlock()
	c.pathToHash[path] = hash
	c.hashToPath[hash] = path
}
