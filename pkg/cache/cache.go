// Package cache provides content-addressed caching for derived netlist
// graphs and rendered exports.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, for CLI usage
//   - [RedisCache]: shared cache for the API server
//   - [NullCache]: disables caching
//
// # Keys
//
// Keys are produced by a [Keyer] from the SHA-256 [Hash] of the YAML source,
// so editing a netlist invalidates its entries without explicit eviction:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.GraphKey(cache.Hash(src))
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache stores byte values under string keys.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default TTLs.
const (
	// GraphTTL is the lifetime of a cached graph document.
	GraphTTL = 7 * 24 * time.Hour

	// ArtifactTTL is the lifetime of a rendered export (DOT, SVG, ...).
	ArtifactTTL = 24 * time.Hour
)

// Clear drops every entry of c if it supports it, and reports whether it did.
func Clear(ctx context.Context, c Cache) (bool, error) {
	cl, ok := c.(Clearer)
	if !ok {
		return false, nil
	}
	return true, cl.Clear(ctx)
}

// NullCache misses on every read and discards every write. It stands in
// for a cache when caching is disabled.
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
