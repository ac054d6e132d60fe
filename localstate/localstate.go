// Package localstate is the client's local bookkeeping state: the identity
// blob and the opaque per-portal auth-token store (§6.3). Neither is part
// of the content-addressed network — both live only on the local machine.
//
// File data itself is never kept here; it lives entirely in the blob store
// behind the Network collaborator. The state is held in process memory
// only; nothing stored here survives a process restart.
package localstate

import (
	"context"
	"errors"

	"github.com/allegro/bigcache/v3"
)

// IdentityKey is the well-known key under which the serialised identity
// slot-map is stored.
const IdentityKey = "identity_main"

const authTokenPrefix = "auth-token-"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("localstate: not found")

// Store is a small local key/value store for client bookkeeping data. It is
// backed by an in-process cache rather than a database: the core defines no
// on-disk schema for this state (§6.3), so persistence across restarts is a
// concern for the embedding application, not the core.
type Store struct {
	cache *bigcache.BigCache
}

// New creates an empty Store.
func New() (*Store, error) {
	cache, err := bigcache.New(context.Background(), bigcache.DefaultConfig(0))
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache}, nil
}

// PutIdentity persists the serialised identity slot-map.
func (s *Store) PutIdentity(data []byte) error {
	return s.cache.Set(IdentityKey, data)
}

// GetIdentity returns the persisted identity slot-map, if any.
func (s *Store) GetIdentity() ([]byte, error) {
	v, err := s.cache.Get(IdentityKey)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, ErrNotFound
	}
	return v, err
}

// PutAuthToken stores an opaque per-portal auth token. The core never
// inspects the token's contents; it is a pass-through for the portal
// collaborator, which is out of scope (§1).
func (s *Store) PutAuthToken(portal string, token []byte) error {
	return s.cache.Set(authTokenPrefix+portal, token)
}

// GetAuthToken returns the stored auth token for a portal, if any.
func (s *Store) GetAuthToken(portal string) ([]byte, error) {
	v, err := s.cache.Get(authTokenPrefix + portal)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, ErrNotFound
	}
	return v, err
}
