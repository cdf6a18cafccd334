// Package cache stores computed decisions and rendered artifacts.
//
// Three backends share the [Cache] interface: [FileCache] for the CLI,
// [RedisCache] for shared deployments and [MemoryCache] for a single API
// process. [NullCache] disables caching.
//
// Keys come from a [Keyer] so the same scenario and options always map to
// the same entry regardless of backend.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind. Decisions are a pure function of the
// scenario, so entries only expire to bound disk and memory use.
const (
	TTLDecision = 7 * 24 * time.Hour
	TTLRender   = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
