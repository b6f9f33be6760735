// Package cache caches rendered map artifacts keyed by snapshot content.
//
// Rendering through graphviz is the slow step of the pipeline, so the
// serve command caches SVG/PNG bytes under a content hash: the same
// snapshot rendered in the same format is always a hit, and any edit
// changes the hash and misses naturally. No invalidation is needed.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte blobs under string keys with an optional TTL.
// A ttl of 0 means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
