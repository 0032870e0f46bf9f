// Package cache stores rendered artifacts keyed by a hash of the render
// request.
//
// Rendering is deterministic: the same rows, fields, options, size, zoom and
// format always produce the same bytes. The cache therefore only memoizes
// outputs and never feeds state back into a render.
//
// Three backends are provided:
//   - [NullCache] disables caching
//   - [FileCache] stores entries under a directory, used by the CLI
//   - [RedisCache] stores entries in Redis, used by the render server
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLArtifact is how long rendered SVG/PNG/JSON artifacts are kept.
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the stored value and true on a hit. A miss returns
	// (nil, false, nil); errors are reserved for backend failures.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
