// Package imgcache memoises decoded images by path so a parallel render run
// decodes each source image once instead of once per pair.
package imgcache

import (
	"image"
	"sync"
)

// Entry is a decoded image together with the factor that was applied when it
// was downscaled for rendering. Scale is 1 when the image kept its original
// size. Entries are immutable once stored.
type Entry struct {
	Image image.Image
	Scale float64
}

// LoadFunc produces the entry for a path on the first request.
type LoadFunc func(path string) (Entry, error)

type cacheEntry struct {
	once  sync.Once
	value Entry
	err   error
}

// Cache is a concurrency safe image cache. Concurrent requests for the same
// path share a single load; a failed load is cached as well, so a broken
// image surfaces the same error to every pair that references it.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
	}
}

// GetOrLoad returns the entry for path, invoking load at most once per path
// over the lifetime of the cache.
func (c *Cache) GetOrLoad(path string, load LoadFunc) (Entry, error) {
	c.mu.Lock()
	ce, ok := c.entries[path]
	if !ok {
		ce = &cacheEntry{}
		c.entries[path] = ce
	}
	c.mu.Unlock()

	ce.once.Do(func() {
		ce.value, ce.err = load(path)
	})

	return ce.value, ce.err
}

// Len returns the number of paths the cache has seen.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
