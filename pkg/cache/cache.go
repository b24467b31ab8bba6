// Package cache stores serialized run results keyed by the inputs that
// produced them.
//
// Topology construction is deterministic for a given configuration and
// seed, so an identical run can be served from the cache instead of being
// grown again. Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared storage for server deployments
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys come from a [Keyer] so that the key layout can be namespaced
// without touching callers:
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "hotnet:")
//	key := k.RunKey(cache.Hash(canonicalConfig))
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	// RunTTL bounds how long a run result stays cached.
	RunTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and hit == true, or hit == false when the
	// key is absent or expired.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// RunKey is the key of a complete run result for the given
	// configuration hash.
	RunKey(configHash string) string
}

// DefaultKeyer generates unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RunKey returns "run:<hash>".
func (DefaultKeyer) RunKey(configHash string) string {
	return "run:" + configHash
}

// ScopedKeyer wraps a Keyer with a prefix so that several tenants or
// environments can share one backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means the default layout.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RunKey generates a prefixed run key.
func (k *ScopedKeyer) RunKey(configHash string) string {
	return k.prefix + k.inner.RunKey(configHash)
}
