// SPDX-License-Identifier: EPL-2.0

package convert

import "sync"

// Entry is a memoised conversion result.
type Entry struct {
	Size int
	Data []byte
}

// Cache stores conversion results of a single sample, keyed by
// Props.CacheKey of the effective properties.
type Cache interface {
	Get(key string) (Entry, bool)
	Put(key string, e Entry)
}

// MemoryCache is a Cache backed by a map. It is safe for concurrent use.
type MemoryCache struct {
	entries map[string]Entry

	mtx *sync.Mutex
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]Entry),
		mtx:     &sync.Mutex{},
	}
}

func (c *MemoryCache) Get(key string) (Entry, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	e, ok := c.entries[key]

	return e, ok
}

func (c *MemoryCache) Put(key string, e Entry) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.entries[key] = e
}

func (c *MemoryCache) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return len(c.entries)
}
