// Package cache stores rendered diagrams keyed by source content and render
// options, so unchanged files are not re-extracted.
//
// [FileCache] keeps entries as JSON files below a directory (by default the
// user cache dir). [NullCache] never stores anything and is used when caching
// is disabled. Keys come from a [Keyer]; [ScopedKeyer] prefixes them, e.g.
// with the tool version, so entries written by another release are never
// read back.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a rendered diagram stays cached.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the cached value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
