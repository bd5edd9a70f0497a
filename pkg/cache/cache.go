// Package cache stores computed results and rendered artifacts.
//
// A Cache is a byte store with per-entry TTLs. Three backends exist:
//
//   - FileCache: one JSON file per entry under a directory, for the CLI
//   - RedisCache: a shared redis instance, for the HTTP server
//   - NullCache: stores nothing, used when caching is disabled
//
// Keys come from a Keyer so that every caller derives the same key from the
// same request. Wrap a Keyer with NewScopedKeyer to give a deployment its own
// namespace.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value byte store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was present. A miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Default TTLs per entry kind.
const (
	// TTLResult applies to rank, unrank and count results. Results never go
	// stale, so this only bounds cache growth.
	TTLResult = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered SVG enumerations.
	TTLArtifact = 30 * 24 * time.Hour
)
