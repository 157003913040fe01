// Package cache provides result caching for mindgeo engine operations.
//
// Layout runs and edge recalculations are pure functions of their input
// snapshot and options, so their results can be stored under a key derived
// from a hash of both. The CLI uses a [FileCache] under the XDG cache
// directory; the HTTP service can share a [RedisCache] or [MongoCache]
// across instances. [NullCache] disables caching.
//
// # Keys
//
// Keys are built by a [Keyer]:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(snapshotJSON), cache.LayoutKeyOpts{Root: "idea", Mode: "radial"})
//
// [ScopedKeyer] prefixes every key, which keeps tenants or environments
// apart in a shared backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Default entry lifetimes.
const (
	// LayoutTTL is how long a computed layout stays cached.
	LayoutTTL = 24 * time.Hour

	// RecalcTTL is how long a recalculated edge list stays cached.
	RecalcTTL = time.Hour
)
