package cachemanager

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zjrosen/tsconv/internal/log"
)

// Loader computes the value for input on a cache miss.
type Loader[I, V any] func(ctx context.Context, input I) (V, error)

// ReadThroughCache computes values with a Loader on a miss and caches
// successes. Errors are never cached.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache    CacheManager[K, V]
	load     Loader[I, V]
	disabled bool

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats counts lookups served from the cache and lookups that ran the
// loader.
type Stats struct {
	Hits   int64
	Misses int64
}

// NewReadThroughCache wraps cache. A nil cache or disabled=true calls load
// on every lookup.
func NewReadThroughCache[K comparable, V any, I any](cache CacheManager[K, V], load Loader[I, V], disabled bool) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:    cache,
		load:     load,
		disabled: disabled || cache == nil,
	}
}

// Get returns the cached value for key, or loads it from input and keeps
// it for ttl.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.disabled {
		return r.load(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		r.hits.Add(1)
		return value, nil
	}
	r.misses.Add(1)

	value, err := r.load(ctx, input)
	if err != nil {
		log.Debug(log.CatCache, "Read-through load failed, not caching", "error", err)
		return value, err
	}

	r.cache.Set(ctx, key, value, ttl)
	return value, nil
}

// Stats returns the hit and miss counts so far.
func (r *ReadThroughCache[K, V, I]) Stats() Stats {
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load()}
}
