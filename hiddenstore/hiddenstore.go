// Package hiddenstore implements the per-path encrypted key/value store
// of §4.11: an arbitrary path string derives its own keypair and
// encryption key off the identity's hidden-store seed, so each entry is
// persisted as if it were its own single-file directory.
package hiddenstore

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/s5-go/s5/blobenv"
	"github.com/s5-go/s5/cid"
	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/errs"
	"github.com/s5-go/s5/keyderive"
	"github.com/s5-go/s5/network"
	"github.com/s5-go/s5/registry"
)

// maxRetries bounds the revision-conflict retry loop SetJSON follows,
// same cap as the directory engine's registry-write retry (§4.10).
const maxRetries = 3

// pathKeys is the derived key material for one hidden-store path.
type pathKeys struct {
	writeSeed     [32]byte
	encryptionKey [32]byte
}

// deriveKeyForPathSegments folds a path's segments into a single 32-byte
// key, one keyderive.Bytes call per segment, off root.
func deriveKeyForPathSegments(suite crypto.Suite, root [32]byte, segments []string) [32]byte {
	key := root
	for _, seg := range segments {
		key = keyderive.Bytes(suite, key, []byte(seg))
	}
	return key
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// derive computes a path's (pathKey, writeKey, encryptionKey) chain:
// pathKey = derive(deriveKeyForPathSegments(split(path)), 1),
// writeKey = derive(pathKey, 2), encryptionKey = derive(pathKey, 3).
func derive(suite crypto.Suite, hiddenStoreSeed [32]byte, path string) pathKeys {
	base := deriveKeyForPathSegments(suite, hiddenStoreSeed, splitPath(path))
	pathKey := keyderive.Integer(suite, base, 1)
	writeKey := keyderive.Integer(suite, pathKey, 2)
	encKey := keyderive.Integer(suite, pathKey, 3)
	return pathKeys{writeSeed: writeKey, encryptionKey: encKey}
}

// Store is a single-process hidden key/value store, scoped to one
// identity's hidden-store seed.
type Store struct {
	suite           crypto.Suite
	hiddenStoreSeed [32]byte
	net             network.Network

	mu    sync.Mutex
	known map[string]struct{} // paths ever written, for List (no network-visible index exists for this store)
}

// New constructs a Store rooted at hiddenStoreSeed (identity.SlotHiddenStore).
func New(suite crypto.Suite, hiddenStoreSeed [32]byte, net network.Network) *Store {
	return &Store{
		suite:           suite,
		hiddenStoreSeed: hiddenStoreSeed,
		net:             net,
		known:           make(map[string]struct{}),
	}
}

func publicKeyFor(suite crypto.Suite, writeSeed [32]byte) [registry.PublicKeySize]byte {
	_, pub := suite.Ed25519Keypair(writeSeed)
	var tagged [registry.PublicKeySize]byte
	tagged[0] = 0x01
	copy(tagged[1:], pub[:])
	return tagged
}

// SetJSON marshals value to JSON, encrypts it under the path's
// derived encryption key, uploads the ciphertext, and signs a new
// registry entry under the path's derived write key. It follows the
// same revision-conflict retry loop §4.10 specifies for directories,
// capped at maxRetries.
func (s *Store) SetJSON(ctx context.Context, path string, value any) error {
	keys := derive(s.suite, s.hiddenStoreSeed, path)
	plaintext, err := json.Marshal(value)
	if err != nil {
		return errs.Wrap(errs.IntegrityFailure, "hiddenstore.SetJSON", "marshalling value", err)
	}
	ciphertext, err := blobenv.Encode(s.suite, keys.encryptionKey, plaintext)
	if err != nil {
		return err
	}
	hash, err := s.net.Put(ctx, ciphertext)
	if err != nil {
		return err
	}

	priv, pub := s.suite.Ed25519Keypair(keys.writeSeed)
	pubKey := publicKeyFor(s.suite, keys.writeSeed)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		revision := uint64(1)
		if existing, ok, err := s.net.RegistryGet(ctx, pubKey); err == nil && ok {
			revision = existing.Revision + 1
		}

		entry, err := registry.Sign(s.suite, 0x01, priv, pub, revision, hash[:])
		if err != nil {
			return err
		}
		err = s.net.RegistrySet(ctx, entry)
		if err == nil {
			s.mu.Lock()
			s.known[path] = struct{}{}
			s.mu.Unlock()
			return nil
		}
		if !errs.Is(err, errs.RevisionConflict) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// GetJSON fetches and decrypts the value stored at path, unmarshalling
// it into v. Returns errs.NotFound if nothing has ever been written
// there.
func (s *Store) GetJSON(ctx context.Context, path string, v any) error {
	keys := derive(s.suite, s.hiddenStoreSeed, path)
	pubKey := publicKeyFor(s.suite, keys.writeSeed)

	entry, ok, err := s.net.RegistryGet(ctx, pubKey)
	if err != nil {
		return err
	}
	if !ok {
		return errs.New(errs.NotFound, "hiddenstore.GetJSON", "no entry at path")
	}
	hash, err := cid.ParseHash(entry.Data)
	if err != nil {
		return errs.Wrap(errs.IntegrityFailure, "hiddenstore.GetJSON", "registry entry data is not a content hash", err)
	}
	ciphertext, err := s.net.Get(ctx, hash)
	if err != nil {
		return err
	}
	plaintext, err := blobenv.Decode(s.suite, keys.encryptionKey, ciphertext)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, v); err != nil {
		return errs.Wrap(errs.IntegrityFailure, "hiddenstore.GetJSON", "unmarshalling value", err)
	}
	return nil
}

// List returns every path this Store instance has written a value to.
// The hidden store has no network-visible listing of its own paths (§4.11
// describes only get/set), so this only ever reflects writes made
// through this Store instance, not the full set any writer has ever
// produced for this identity.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.known))
	for p := range s.known {
		out = append(out, p)
	}
	return out
}
