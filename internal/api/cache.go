package api

import (
	"strings"
	"sync"
	"time"
)

// TTL classes by endpoint family. Feed and search content is volatile and
// cheap to refresh; detail pages are comparatively static and expensive.
const (
	TTLHome     = 5 * time.Minute
	TTLPlaylist = 30 * time.Minute
	TTLArtist   = 60 * time.Minute
	TTLSearch   = 2 * time.Minute
)

type cacheEntry struct {
	payload   BrowseResponse
	createdAt time.Time
	ttl       time.Duration
}

func (e cacheEntry) isExpired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// ResponseCache stores parsed JSON payloads keyed by request fingerprint.
// All access is serialized; there is no background sweeper, expired entries
// are evicted lazily on lookup.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewResponseCache returns an empty cache.
func NewResponseCache() *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached payload if present and not expired. An expired
// entry is removed as a side effect of the lookup.
func (c *ResponseCache) Get(key string) (BrowseResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if entry.isExpired(c.now()) {
		delete(c.entries, key)
		return nil, false
	}

	return entry.payload, true
}

// Set inserts or overwrites the entry for key unconditionally.
func (c *ResponseCache) Set(key string, payload BrowseResponse, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{payload: payload, createdAt: c.now(), ttl: ttl}
	c.mu.Unlock()
}

// InvalidateAll clears the store.
func (c *ResponseCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// InvalidatePrefix removes every entry whose key starts with prefix. Used to
// cordon off an endpoint family after a mutating action that may have
// changed its content.
func (c *ResponseCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Len returns the number of live entries, expired ones included until their
// next lookup.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
