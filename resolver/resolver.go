package resolver

import (
	"context"

	logging "github.com/ipfs/go-log/v2"

	"github.com/s5-go/s5/blobenv"
	"github.com/s5-go/s5/cid"
	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/dirv1"
	"github.com/s5-go/s5/errs"
	"github.com/s5-go/s5/hamt"
	"github.com/s5-go/s5/keyderive"
	"github.com/s5-go/s5/network"
	"github.com/s5-go/s5/registry"
)

var log = logging.Logger("s5/resolver")

// KeySet is the (public key, optional write seed, optional encryption
// key) triple a resolved path target carries (§3.1). It is computed at
// resolve time and never persisted.
type KeySet struct {
	PublicKey     [registry.PublicKeySize]byte
	WriteSeed     *[32]byte
	EncryptionKey *[32]byte
	// ImmutableHash is set instead of PublicKey when the root names a
	// fixed content hash rather than a mutable registry pointer.
	ImmutableHash *cid.Hash
}

// Resolver walks a directory tree using a Network for registry lookups
// and blob/HAMT-node fetches.
type Resolver struct {
	suite crypto.Suite
	net   network.Network
	cfg   hamt.Config
}

// New constructs a Resolver. cfg tunes HAMT lookups on sharded
// directories encountered along the way; DefaultConfig matches the
// default a writer would have used.
func New(suite crypto.Suite, net network.Network, cfg hamt.Config) *Resolver {
	return &Resolver{suite: suite, net: net, cfg: cfg}
}

// Directory fetches and decodes the directory a key set's public key
// currently points at (or the key set's immutable hash directly).
func (r *Resolver) Directory(ctx context.Context, ks KeySet) (dirv1.Directory, error) {
	var hash cid.Hash
	if ks.ImmutableHash != nil {
		hash = *ks.ImmutableHash
	} else {
		entry, ok, err := r.net.RegistryGet(ctx, ks.PublicKey)
		if err != nil {
			return dirv1.Directory{}, err
		}
		if !ok {
			log.Debugf("no registry entry for %x", ks.PublicKey)
			return dirv1.Directory{}, errs.New(errs.NotFound, "resolver.Directory", "no registry entry for public key")
		}
		h, err := cid.ParseHash(entry.Data)
		if err != nil {
			return dirv1.Directory{}, errs.Wrap(errs.IntegrityFailure, "resolver.Directory", "registry entry data is not a valid content hash", err)
		}
		hash = h
	}

	blob, err := r.net.Get(ctx, hash)
	if err != nil {
		return dirv1.Directory{}, err
	}
	if ks.EncryptionKey != nil {
		blob, err = blobenv.Decode(r.suite, *ks.EncryptionKey, blob)
		if err != nil {
			return dirv1.Directory{}, err
		}
	}
	return dirv1.Decode(blob)
}

// Lookup fetches the directory ks points at and returns the entry named
// name, if any. It transparently follows HAMT sharding.
func (r *Resolver) Lookup(ctx context.Context, ks KeySet, name string) (dirv1.Entry, bool, error) {
	d, err := r.Directory(ctx, ks)
	if err != nil {
		if errs.Is(err, errs.NotFound) {
			// A directory that was never published has no entries.
			return dirv1.Entry{}, false, nil
		}
		return dirv1.Entry{}, false, err
	}
	if dirv1.Sharded(d) {
		rootHash, err := cid.ParseHash(d.HAMTRoot)
		if err != nil {
			return dirv1.Entry{}, false, err
		}
		rootBytes, err := r.net.Get(ctx, rootHash)
		if err != nil {
			return dirv1.Entry{}, false, err
		}
		root, err := hamt.Decode(rootBytes)
		if err != nil {
			return dirv1.Entry{}, false, err
		}
		return hamt.Lookup(ctx, r.net, r.cfg, &root, name)
	}
	e, ok := d.Entries[name]
	return e, ok, nil
}

// Resolve walks from root through each of uri.Segments, deriving the
// child key set at every step via the DirRef it finds, per §4.9's
// procedure: decrypt the child's encryptedWriteKey under the parent's
// write key to recover the child's write seed, then derive its Ed25519
// public key from that seed.
func (r *Resolver) Resolve(ctx context.Context, uri RootURI) (KeySet, error) {
	current := uri.Root
	for _, seg := range uri.Segments {
		entry, ok, err := r.Lookup(ctx, current, seg)
		if err != nil {
			return KeySet{}, err
		}
		if !ok {
			return KeySet{}, errs.New(errs.NotFound, "resolver.Resolve", "no entry named "+seg)
		}
		if entry.Dir == nil {
			return KeySet{}, errs.New(errs.NotFound, "resolver.Resolve", seg+" is not a directory")
		}
		current, err = r.ChildKeySet(current, entry.Dir)
		if err != nil {
			return KeySet{}, err
		}
	}
	return current, nil
}

// ChildKeySet derives a DirRef's key set from its parent's, per §4.9:
// unwrap the child's AEAD-wrapped write seed under the parent's write
// key, then derive the child's Ed25519 public key from that seed.
func (r *Resolver) ChildKeySet(parent KeySet, ref *dirv1.DirRef) (KeySet, error) {
	var child KeySet
	if len(ref.EncryptionKey) > 0 {
		var enc [32]byte
		copy(enc[:], ref.EncryptionKey)
		child.EncryptionKey = &enc
	}

	if len(ref.EncryptedWriteKey) > 0 {
		if parent.WriteSeed == nil {
			return KeySet{}, errs.New(errs.MissingEncryptionKey, "resolver.ChildKeySet", "parent write key required to unwrap child write seed")
		}
		seedBytes, err := blobenv.Decode(r.suite, *parent.WriteSeed, ref.EncryptedWriteKey)
		if err != nil {
			return KeySet{}, err
		}
		var seed [32]byte
		copy(seed[:], seedBytes)
		child.WriteSeed = &seed

		_, pub := r.suite.Ed25519Keypair(seed)
		child.PublicKey[0] = 0x01
		copy(child.PublicKey[1:], pub[:])
		return child, nil
	}

	copy(child.PublicKey[:], ref.PublicKey)
	return child, nil
}

// DeriveWriteSeed derives the write seed for a fresh child directory
// from the parent's filesystem seed and the child's name, per the
// identity-derived key hierarchy keyderive.Bytes underlies.
func DeriveWriteSeed(suite crypto.Suite, parentSeed [32]byte, name string) [32]byte {
	return keyderive.Bytes(suite, parentSeed, []byte(name))
}
