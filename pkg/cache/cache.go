// Package cache stores rendered artifacts between runs.
//
// A [Cache] is a plain byte store with per-entry TTLs. Three backends are
// provided:
//
//   - [FileCache] keeps entries as files below a directory (CLI default)
//   - [RedisCache] shares entries through a Redis server
//   - [NullCache] stores nothing and always misses
//
// Keys are built by a [Keyer] so that every input that changes the output
// (dataset content, format, fields, render options) changes the key.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}
