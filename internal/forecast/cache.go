package forecast

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedSource wraps a Source and keeps recent forecasts per location for ttl.
type CachedSource struct {
	source Source
	cache  *expirable.LRU[string, Series]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachedSource creates a caching wrapper holding at most size locations.
func NewCachedSource(source Source, size int, ttl time.Duration) *CachedSource {
	if size <= 0 {
		size = 16
	}
	return &CachedSource{
		source: source,
		cache:  expirable.NewLRU[string, Series](size, nil, ttl),
	}
}

func (c *CachedSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// Fetch returns the cached series for loc when present, fetching and storing
// it otherwise. Failed fetches are not cached.
func (c *CachedSource) Fetch(ctx context.Context, loc Location) (Series, error) {
	key := loc.Key()
	if s, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return s, nil
	}
	c.misses.Add(1)

	s, err := c.source.Fetch(ctx, loc)
	if err != nil {
		return Series{}, err
	}
	c.cache.Add(key, s)
	return s, nil
}

// Stats returns the number of cache hits and misses so far.
func (c *CachedSource) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

var _ Source = (*CachedSource)(nil)
