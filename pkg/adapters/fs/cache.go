package fs

import (
	"sync"
	"time"
)

// cacheEntry is the last known content of a key's file.
type cacheEntry struct {
	Value   string
	ModTime time.Time
	Size    int64
}

// cache holds file contents keyed by store key. An entry is only served
// while the file's modification time and size are unchanged.
type cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newCache() *cache {
	return &cache{entries: make(map[string]cacheEntry)}
}

// Get retrieves an entry if it exists and is fresh.
// Returns the value and true if hit.
// Returns "" and false if miss or stale.
func (c *cache) Get(key string, mtime time.Time, size int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if !entry.ModTime.Equal(mtime) || entry.Size != size {
		return "", false
	}
	return entry.Value, true
}

// Set updates an entry in the cache.
func (c *cache) Set(key string, entry cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

// Delete removes a single entry from the cache.
func (c *cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of entries in the cache.
func (c *cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
