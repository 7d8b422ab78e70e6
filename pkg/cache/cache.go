// Package cache stores rendered certificate artifacts and downloaded assets.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entries on disk, used by the CLI
//   - [RedisCache]: shared cache for the preview server
//   - [NullCache]: disables caching
//
// Keys are produced by a [Keyer] so that every caller derives the same key
// for the same inputs.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Callers treat every error as a miss and keep rendering.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default entry lifetimes.
const (
	// TTLArtifact applies to rendered SVG/PNG/PDF/JSON outputs. Artifacts
	// are keyed by a hash of every input, so they never go stale.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLAsset applies to downloaded logos, backgrounds and signatures.
	TTLAsset = 24 * time.Hour
)
