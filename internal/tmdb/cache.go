package tmdb

import (
	"net/url"
	"sync"
	"time"
)

// responseCache stores raw provider payloads keyed by request
// signature. Entries expire lazily: an expired entry is removed on the
// read that observes it and the read reports a miss. Safe for
// concurrent use; two callers racing on the same key both fetch and
// the last write wins, which is harmless since payloads for a key are
// idempotent.
type responseCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	payload  []byte
	storedAt time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// cacheKey derives the request signature. The credential parameter is
// attached after key derivation, so it never appears in keys.
func cacheKey(endpoint string, params url.Values) string {
	return endpoint + ":" + params.Encode()
}

func (c *responseCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.payload, true
}

func (c *responseCache) put(key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{payload: payload, storedAt: c.now()}
}

func (c *responseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
