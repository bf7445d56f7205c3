package cache

import (
	"context"
	"time"
)

// Scoped wraps a Cache with a key prefix so different data sources sharing a
// backend cannot collide.
//
// Example usage:
//
//	api := cache.NewScoped(backend, "github:")
//	avatars := cache.NewScoped(backend, "avatar:")
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a prefixed view of inner. Prefixes compose: scoping an
// already-scoped cache concatenates the prefixes.
func NewScoped(inner Cache, prefix string) Cache {
	if s, ok := inner.(*Scoped); ok {
		return &Scoped{inner: s.inner, prefix: s.prefix + prefix}
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Get retrieves a value using the prefixed key.
func (c *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

// Set stores a value using the prefixed key.
func (c *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

// Delete removes a value using the prefixed key.
func (c *Scoped) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the underlying cache.
func (c *Scoped) Close() error {
	return c.inner.Close()
}

var _ Cache = (*Scoped)(nil)
