package detect

import (
	"sync"
	"time"

	"github.com/brandforge/brandforge/internal/model"
)

// cacheEntry represents a cached detection result.
type cacheEntry struct {
	expiry time.Time
	result model.DetectionResult
}

// detectionCache provides thread-safe TTL caching for detection results,
// keyed by the normalized input text.
type detectionCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// newDetectionCache creates a new cache with the specified TTL.
func newDetectionCache(ttl time.Duration) *detectionCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	cache := &detectionCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// get retrieves a result from the cache if it exists and hasn't expired.
func (c *detectionCache) get(key string) (model.DetectionResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return model.DetectionResult{}, false
	}

	if time.Now().After(entry.expiry) {
		return model.DetectionResult{}, false
	}

	return entry.result, true
}

// set stores a result in the cache.
func (c *detectionCache) set(key string, result model.DetectionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		result: result,
		expiry: time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *detectionCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// size returns the number of entries in the cache.
func (c *detectionCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine.
func (c *detectionCache) Close() {
	close(c.stopCh)
}
