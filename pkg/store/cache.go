package store

import (
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/nestlog/nestlog/pkg/events"
)

// recordCache holds recently fetched record slices per child and
// category. Entries expire after a short TTL and every write for a child
// drops all six of that child's entries, so stale reads are bounded to
// the TTL and never survive a local edit.
type recordCache struct {
	cache otter.Cache[string, any]
}

func newRecordCache(ttl time.Duration) *recordCache {
	c := otter.Must(&otter.Options[string, any]{
		MaximumSize:      1_000,
		InitialCapacity:  64,
		ExpiryCalculator: otter.ExpiryWriting[string, any](ttl),
	})
	return &recordCache{cache: *c}
}

func cacheKey(cat events.Category, childID string) string {
	return string(cat) + ":" + childID
}

func (c *recordCache) get(cat events.Category, childID string) (any, bool) {
	return c.cache.GetIfPresent(cacheKey(cat, childID))
}

func (c *recordCache) set(cat events.Category, childID string, records any) {
	c.cache.Set(cacheKey(cat, childID), records)
}

func (c *recordCache) invalidateChild(childID string) {
	for _, cat := range events.Categories {
		c.cache.Invalidate(cacheKey(cat, childID))
	}
}
