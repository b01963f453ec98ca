package insights

import (
	"time"

	"github.com/maypok86/otter/v2"
)

// MemoryCache is an in-process TTL cache for model responses.
type MemoryCache struct {
	cache otter.Cache[string, string]
}

// NewMemoryCache builds a cache whose entries expire ttl after being
// written.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	cache := otter.Must(&otter.Options[string, string]{
		MaximumSize:      256,
		InitialCapacity:  16,
		ExpiryCalculator: otter.ExpiryWriting[string, string](ttl),
	})
	return &MemoryCache{cache: *cache}
}

// Response implements Cache.
func (m *MemoryCache) Response(key string) (string, bool) {
	return m.cache.GetIfPresent(key)
}

// SetResponse implements Cache.
func (m *MemoryCache) SetResponse(key, response string) {
	m.cache.Set(key, response)
}
