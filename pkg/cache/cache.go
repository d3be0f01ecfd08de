// Package cache stores computed layouts and rendered artifacts.
//
// # Overview
//
// Layout computation is cheap, but rendering PNG and PDF charts is not, and
// the HTTP server answers the same frame dimensions over and over. Both are
// pure functions of their inputs, so results are cached under content keys
// built by a [Keyer]:
//
//   - layout keys hash the parameter set and resolver options
//   - artifact keys hash the layout and the render options of one format
//
// # Backends
//
//   - [NullCache]: stores nothing, used with --no-cache and in tests
//   - [FileCache]: one JSON file per entry under the XDG cache directory
//   - [RedisCache]: shared cache for server deployments
//
// All backends treat a corrupt or expired entry as a miss.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases held resources.
	Close() error
}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
