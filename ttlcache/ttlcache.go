// Package ttlcache provides the fresh-write caches described in the core:
// an in-memory cache of (registry entries, blob contents) that papers over
// network propagation delay between a client's own writes and their eventual
// visibility through the external Network collaborator.
//
// Caches are owned per client instance, never global. Backed by
// github.com/jellydator/ttlcache/v3, the same TTL-cache library the teacher
// already depends on directly.
package ttlcache

import (
	"context"
	"time"

	jellytc "github.com/jellydator/ttlcache/v3"
	"k8s.io/klog/v2"

	"github.com/s5-go/s5/metrics"
)

// Cache is a generic TTL cache keyed by string, bounded by a soft entry-count
// limit (capacity-based LRU eviction once exceeded). It is safe for
// concurrent use.
type Cache[V any] struct {
	name string
	c    *jellytc.Cache[string, V]
}

// New creates a Cache with the given TTL and soft size limit. name is used
// only for log messages. A soft limit of 0 disables capacity-based eviction;
// only TTL expiry applies.
func New[V any](name string, ttl time.Duration, soft int) *Cache[V] {
	opts := []jellytc.Option[string, V]{
		jellytc.WithTTL[string, V](ttl),
		jellytc.WithDisableTouchOnHit[string, V](),
	}
	if soft > 0 {
		opts = append(opts, jellytc.WithCapacity[string, V](uint64(soft)))
	}

	c := jellytc.New[string, V](opts...)
	c.OnEviction(func(_ context.Context, reason jellytc.EvictionReason, item *jellytc.Item[string, V]) {
		klog.V(5).Infof("%s: evicted %q (%v)", name, item.Key(), reason)
	})
	go c.Start()

	return &Cache[V]{name: name, c: c}
}

// Put writes a value under key, refreshing its TTL.
func (c *Cache[V]) Put(key string, value V) {
	c.c.Set(key, value, jellytc.DefaultTTL)
}

// Get returns the cached value for key, if present and not expired.
func (c *Cache[V]) Get(key string) (value V, ok bool) {
	item := c.c.Get(key)
	if item == nil {
		metrics.CacheResultTotal.WithLabelValues(c.name, "miss").Inc()
		return value, false
	}
	metrics.CacheResultTotal.WithLabelValues(c.name, "hit").Inc()
	return item.Value(), true
}

// Delete removes key from the cache, if present.
func (c *Cache[V]) Delete(key string) {
	c.c.Delete(key)
}

// Len returns the number of live (possibly stale) entries currently held.
func (c *Cache[V]) Len() int {
	return c.c.Len()
}

// Sweep removes all expired entries. Callers may run this periodically from
// a background goroutine; it is never required for correctness since Get
// already checks expiry lazily.
func (c *Cache[V]) Sweep() {
	c.c.DeleteExpired()
}

// Close stops the cache's background expiration loop. Safe to skip for
// caches that live for the process lifetime.
func (c *Cache[V]) Close() {
	c.c.Stop()
}
