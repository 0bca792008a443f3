package provider

import (
	"sort"
	"sync"
	"time"

	"github.com/pdro-dev/wheelscreener/internal/market"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

// SeriesCache is the in-memory TTL cache for price series, owned exclusively
// by the provider. Expired entries are never read, only superseded on the
// next write; there is no other eviction, which is fine for a fixed small
// universe.
type SeriesCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	logger  *logger.Logger
	now     func() time.Time
}

type cacheEntry struct {
	series     market.PriceSeries
	capturedAt time.Time
}

// NewSeriesCache creates a cache with the given validity window
func NewSeriesCache(ttl time.Duration, log *logger.Logger) *SeriesCache {
	return &SeriesCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		logger:  log,
		now:     time.Now,
	}
}

// Get returns the cached series for symbol if it is still fresh.
// The returned value is a snapshot; callers must treat Closes as read-only.
func (c *SeriesCache) Get(symbol string) (market.PriceSeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[symbol]
	if !exists {
		return market.PriceSeries{}, false
	}

	if c.now().Sub(entry.capturedAt) >= c.ttl {
		return market.PriceSeries{}, false
	}

	return entry.series, true
}

// Put stores a series snapshot with the current capture timestamp
func (c *SeriesCache) Put(symbol string, series market.PriceSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[symbol] = cacheEntry{
		series:     series,
		capturedAt: c.now(),
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"source": series.Provenance,
		"points": len(series.Closes),
	}).Debug("Cached price series")
}

// Len returns the number of entries, fresh or stale
func (c *SeriesCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns all cached symbols in lexical order
func (c *SeriesCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for symbol := range c.entries {
		keys = append(keys, symbol)
	}
	sort.Strings(keys)
	return keys
}
