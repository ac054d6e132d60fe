// Package client implements the filesystem API of §4.9/§4.10/§6.4: a
// path-based put/get/getMetadata/delete/list surface over the HAMT-
// sharded, mutable-over-immutable directory tree the rest of the core
// provides, rooted at an identity's two reserved "home" and "archive"
// directories.
package client

import (
	"time"

	"github.com/s5-go/s5/filechunk"
	"github.com/s5-go/s5/hamt"
	"github.com/s5-go/s5/registry"
)

// Config collects every tunable of the filesystem API (§9). Nothing
// here is a compile-time constant: every default below is just the
// value DefaultConfig populates, overridable per Client.
type Config struct {
	// ChunkSize is the plaintext chunk size encrypted files are split
	// into (§4.6 default: 256 KiB).
	ChunkSize int
	// HAMTThreshold is the inline entry count a directory may grow to
	// before it shards into a HAMT (§4.8/§9 default: 1000).
	HAMTThreshold int
	// RegistryCacheTTL bounds how long an accepted registry write stays
	// in the fresh-write cache before reads fall back to the network
	// (default 60s).
	RegistryCacheTTL time.Duration
	// RegistryPollWait bounds how long a registry read waits for the
	// network when nothing is locally known (default ~2.5s).
	RegistryPollWait time.Duration
	// RegistryGraceWait is the brief extra wait a registry read gives
	// the network even when a local entry already exists (default
	// ~250ms).
	RegistryGraceWait time.Duration
	// BlobCacheTTL bounds how long downloaded blobs stay in the local
	// blob cache (default 5 minutes).
	BlobCacheTTL time.Duration
	// MaxRetries bounds the registry-write retry-and-merge loop put/
	// delete follow on a revision conflict (default 3).
	MaxRetries int
	// ClientName labels this Client's metrics series, so a process
	// running multiple Clients can tell their data apart.
	ClientName string
}

// DefaultConfig returns the canonical tuning §4.6/§4.8/§9 specify.
func DefaultConfig() Config {
	defaults := registry.DefaultServiceConfig()
	return Config{
		ChunkSize:         filechunk.DefaultChunkSize,
		HAMTThreshold:     hamt.DefaultConfig().MaxInlineEntries,
		RegistryCacheTTL:  defaults.CacheTTL,
		RegistryPollWait:  defaults.PollWait,
		RegistryGraceWait: defaults.GraceWait,
		BlobCacheTTL:      5 * time.Minute,
		MaxRetries:        3,
		ClientName:        "default",
	}
}

// Option configures a Client at construction time.
type Option func(*Config)

// WithChunkSize overrides the file-content chunk size.
func WithChunkSize(n int) Option {
	return func(c *Config) { c.ChunkSize = n }
}

// WithHAMTThreshold overrides the inline-to-sharded conversion threshold.
func WithHAMTThreshold(n int) Option {
	return func(c *Config) { c.HAMTThreshold = n }
}

// WithRegistryCacheTTL overrides the fresh-write cache TTL.
func WithRegistryCacheTTL(d time.Duration) Option {
	return func(c *Config) { c.RegistryCacheTTL = d }
}

// WithRegistryPollWait overrides the unknown-locally registry poll wait.
func WithRegistryPollWait(d time.Duration) Option {
	return func(c *Config) { c.RegistryPollWait = d }
}

// WithRegistryGraceWait overrides the known-locally registry grace wait.
func WithRegistryGraceWait(d time.Duration) Option {
	return func(c *Config) { c.RegistryGraceWait = d }
}

// WithBlobCacheTTL overrides the blob cache TTL.
func WithBlobCacheTTL(d time.Duration) Option {
	return func(c *Config) { c.BlobCacheTTL = d }
}

// WithMaxRetries overrides the registry-write retry cap.
func WithMaxRetries(n int) Option {
	return func(c *Config) { c.MaxRetries = n }
}

// WithClientName overrides the metrics label for this Client's series.
func WithClientName(name string) Option {
	return func(c *Config) { c.ClientName = name }
}
