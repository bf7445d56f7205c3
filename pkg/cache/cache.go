// Package cache provides pluggable byte caching for GitHub responses and
// avatar payloads.
//
// Three backends implement the same interface:
//   - file: directory-backed storage for single-machine CLI usage
//   - redis: Redis-backed storage for CI runners sharing a cache
//   - null: no-op cache for --no-cache and tests
//
// Keys are arbitrary strings; backends hash them (SHA-256) before storage so
// URLs and other unsafe characters never reach the filesystem or key space.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores opaque byte values with per-entry expiration.
//
// Implementations must treat expired entries as misses. Get returns
// (data, true, nil) on a hit, (nil, false, nil) on a miss, and a non-nil error
// only for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
