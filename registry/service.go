package registry

import (
	"context"
	"sync"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/errs"
	"github.com/s5-go/s5/ttlcache"
)

var log = logging.Logger("s5/registry")

// Source resolves registry entries that are not yet locally known,
// standing in for the external peer network (§6.1's registry_get).
type Source interface {
	RegistryGet(ctx context.Context, publicKey [PublicKeySize]byte) (Entry, bool, error)
}

// Sink publishes a newly accepted entry onward, standing in for the
// external peer network's registry_set/broadcast.
type Sink interface {
	RegistrySet(ctx context.Context, e Entry) error
}

// ServiceConfig tunes the local registry service's timing (§9).
type ServiceConfig struct {
	// CacheTTL is how long an accepted entry stays in the fresh-write
	// cache before Get must fall back to the network (default 60s).
	CacheTTL time.Duration
	// PollWait bounds how long Get waits for a network response when
	// nothing is locally known (default ~2.5s).
	PollWait time.Duration
	// GraceWait is the brief extra wait Get gives the network to
	// deliver a newer revision even when a local entry already exists
	// (default ~250ms).
	GraceWait time.Duration
}

// DefaultServiceConfig returns the timings §4.4/§9 specify.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		CacheTTL:  60 * time.Second,
		PollWait:  2500 * time.Millisecond,
		GraceWait: 250 * time.Millisecond,
	}
}

// Service is the local registry: a write policy enforcing revision
// monotonicity, backed by a fresh-write cache and an external Source/Sink
// for entries this process hasn't seen or produced itself (§4.4).
type Service struct {
	suite  crypto.Suite
	cfg    ServiceConfig
	source Source
	sink   Sink

	mu    sync.Mutex
	store map[[PublicKeySize]byte]Entry
	cache *ttlcache.Cache[Entry]
}

// NewService constructs a local registry service. source/sink may be nil
// if the caller only needs local bookkeeping (e.g. in tests).
func NewService(suite crypto.Suite, cfg ServiceConfig, source Source, sink Sink) *Service {
	return &Service{
		suite:  suite,
		cfg:    cfg,
		source: source,
		sink:   sink,
		store:  make(map[[PublicKeySize]byte]Entry),
		cache:  ttlcache.New[Entry]("registry", cfg.CacheTTL, 100),
	}
}

func cacheKey(pub [PublicKeySize]byte) string {
	return string(pub[:])
}

// Set validates e's signature and revision monotonicity against the
// locally held entry for e's public key, rejecting in place of accepting
// an entry whose revision does not strictly advance. Accepted entries
// are written through to the fresh-write cache and broadcast via Sink.
func (s *Service) Set(ctx context.Context, e Entry) error {
	if !Verify(s.suite, e) {
		return errs.New(errs.Crypto, "registry.Service.Set", "signature verification failed")
	}

	s.mu.Lock()
	existing, ok := s.store[e.PublicKey]
	if ok && e.Revision <= existing.Revision {
		s.mu.Unlock()
		return errs.New(errs.RevisionConflict, "registry.Service.Set", "revision does not advance the existing entry")
	}
	s.store[e.PublicKey] = e
	s.mu.Unlock()

	s.cache.Put(cacheKey(e.PublicKey), e)

	if s.sink != nil {
		if err := s.sink.RegistrySet(ctx, e); err != nil {
			log.Warnf("broadcast failed for %x: %v", e.PublicKey, err)
		}
	}
	return nil
}

// Get resolves the latest known entry for publicKey (§4.4's read
// policy): fresh-write cache, then local store; if locally unknown,
// query the network and wait up to PollWait; if a local entry is
// already known, still wait GraceWait in case the network is holding a
// newer revision.
func (s *Service) Get(ctx context.Context, publicKey [PublicKeySize]byte) (Entry, bool, error) {
	if e, ok := s.cache.Get(cacheKey(publicKey)); ok {
		return e, true, nil
	}

	s.mu.Lock()
	local, haveLocal := s.store[publicKey]
	s.mu.Unlock()

	if s.source == nil {
		return local, haveLocal, nil
	}

	wait := s.cfg.PollWait
	if haveLocal {
		wait = s.cfg.GraceWait
	}

	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	remote, found, err := s.source.RegistryGet(waitCtx, publicKey)
	if err != nil {
		if waitCtx.Err() != nil {
			if haveLocal {
				return local, true, nil
			}
			return Entry{}, false, nil
		}
		return Entry{}, false, errs.Wrap(errs.Network, "registry.Service.Get", "querying network", err)
	}
	if !found {
		return local, haveLocal, nil
	}

	if !haveLocal || remote.Revision > local.Revision {
		s.mu.Lock()
		s.store[publicKey] = remote
		s.mu.Unlock()
		s.cache.Put(cacheKey(publicKey), remote)
		return remote, true, nil
	}
	return local, true, nil
}
