package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"weathercard/datasource"
	"weathercard/models"
)

// CachedProvider wraps a WeatherProvider and reuses successful lookups for a while
type CachedProvider struct {
	provider       datasource.WeatherProvider
	cache          map[string]cacheEntry
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
	now            func() time.Time
}

// cacheEntry represents a cached weather record with its timestamp
type cacheEntry struct {
	Data      models.WeatherRecord
	Timestamp time.Time
}

// NewCachedProvider creates a new cached wrapper around a provider.
// A zero cacheDuration turns every call into a miss.
func NewCachedProvider(provider datasource.WeatherProvider, cacheDuration time.Duration) *CachedProvider {
	return &CachedProvider{
		provider:      provider,
		cache:         make(map[string]cacheEntry),
		cacheDuration: cacheDuration,
		now:           time.Now,
	}
}

// Name returns the name of the underlying provider with [Cached] suffix
func (c *CachedProvider) Name() string {
	return c.provider.Name() + " [Cached]"
}

// GetWeather fetches weather data, using cache when available
func (c *CachedProvider) GetWeather(ctx context.Context, query string) (models.WeatherRecord, error) {
	key := cacheKey(query)

	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	if found && c.now().Sub(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()

		slog.Debug("cache hit", "query", key, "provider", c.provider.Name(),
			"age", c.now().Sub(entry.Timestamp).Round(time.Second))

		return entry.Data, nil
	}

	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	data, err := c.provider.GetWeather(ctx, query)
	if err != nil {
		return models.WeatherRecord{}, err
	}

	if c.cacheDuration > 0 {
		c.mutex.Lock()
		c.cache[key] = cacheEntry{
			Data:      data,
			Timestamp: c.now(),
		}
		c.mutex.Unlock()
	}

	return data, nil
}

// Prune drops expired entries and returns how many were removed
func (c *CachedProvider) Prune() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	pruned := 0
	for key, entry := range c.cache {
		if c.now().Sub(entry.Timestamp) >= c.cacheDuration {
			delete(c.cache, key)
			pruned++
		}
	}
	return pruned
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedProvider) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

func cacheKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Ensure CachedProvider implements the WeatherProvider interface
var _ datasource.WeatherProvider = (*CachedProvider)(nil)
