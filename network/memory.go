package network

import (
	"context"
	"sync"

	"github.com/s5-go/s5/cid"
	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/errs"
	"github.com/s5-go/s5/registry"
)

// Option configures a Memory network.
type Option func(*config)

type config struct {
	subscriberBuffer int
}

// WithSubscriberBuffer sets the channel buffer size RegistrySubscribe
// allocates per subscriber (default 16).
func WithSubscriberBuffer(n int) Option {
	return func(c *config) { c.subscriberBuffer = n }
}

// Memory is an in-process reference Network: every blob and registry
// entry lives only in memory, for tests and single-process demos. Its
// lifecycle mirrors the teacher's disk-backed store (mutex-guarded
// state, Option-configured construction) minus any actual persistence.
type Memory struct {
	suite crypto.Suite
	cfg   config

	mu    sync.RWMutex
	blobs map[cid.Hash][]byte

	regMu       sync.Mutex
	entries     map[[registry.PublicKeySize]byte]registry.Entry
	subscribers map[[registry.PublicKeySize]byte][]chan registry.Entry
}

// NewMemory constructs an empty Memory network.
func NewMemory(suite crypto.Suite, opts ...Option) *Memory {
	cfg := config{subscriberBuffer: 16}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Memory{
		suite:       suite,
		cfg:         cfg,
		blobs:       make(map[cid.Hash][]byte),
		entries:     make(map[[registry.PublicKeySize]byte]registry.Entry),
		subscribers: make(map[[registry.PublicKeySize]byte][]chan registry.Entry),
	}
}

// Put implements Network.
func (m *Memory) Put(_ context.Context, data []byte) (cid.Hash, error) {
	h := cid.NewHash(m.suite, data)
	if !cid.VerifyHash(m.suite, h, data) {
		return cid.Hash{}, errs.New(errs.IntegrityFailure, "network.Memory.Put", "computed hash does not verify against data")
	}
	m.mu.Lock()
	m.blobs[h] = append([]byte{}, data...)
	m.mu.Unlock()
	return h, nil
}

// Get implements Network.
func (m *Memory) Get(_ context.Context, hash cid.Hash) ([]byte, error) {
	m.mu.RLock()
	data, ok := m.blobs[hash]
	m.mu.RUnlock()
	if !ok {
		return nil, errs.New(errs.NotFound, "network.Memory.Get", "no blob for hash")
	}
	if !cid.VerifyHash(m.suite, hash, data) {
		return nil, errs.New(errs.IntegrityFailure, "network.Memory.Get", "stored bytes no longer hash to the requested value")
	}
	return data, nil
}

// RegistryGet implements Network.
func (m *Memory) RegistryGet(_ context.Context, publicKey [registry.PublicKeySize]byte) (registry.Entry, bool, error) {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	e, ok := m.entries[publicKey]
	return e, ok, nil
}

// RegistrySet implements Network.
func (m *Memory) RegistrySet(_ context.Context, e registry.Entry) error {
	if !registry.Verify(m.suite, e) {
		return errs.New(errs.Crypto, "network.Memory.RegistrySet", "signature verification failed")
	}

	m.regMu.Lock()
	existing, ok := m.entries[e.PublicKey]
	if ok && e.Revision <= existing.Revision {
		m.regMu.Unlock()
		return errs.New(errs.RevisionConflict, "network.Memory.RegistrySet", "revision does not advance the existing entry")
	}
	m.entries[e.PublicKey] = e
	subs := append([]chan registry.Entry{}, m.subscribers[e.PublicKey]...)
	m.regMu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- e:
		default:
		}
	}
	return nil
}

// RegistrySubscribe implements Network.
func (m *Memory) RegistrySubscribe(_ context.Context, publicKey [registry.PublicKeySize]byte) (<-chan registry.Entry, func(), error) {
	ch := make(chan registry.Entry, m.cfg.subscriberBuffer)

	m.regMu.Lock()
	m.subscribers[publicKey] = append(m.subscribers[publicKey], ch)
	m.regMu.Unlock()

	cancel := func() {
		m.regMu.Lock()
		defer m.regMu.Unlock()
		subs := m.subscribers[publicKey]
		for i, c := range subs {
			if c == ch {
				m.subscribers[publicKey] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		close(ch)
	}
	return ch, cancel, nil
}
