package assets

import (
	"sync"

	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

// Cache is an in-memory byte cache for winning asset payloads. It is owned
// by a session and invalidated explicitly when packs, seeds or individual
// assets change; it is never shared as a process-wide global.
type Cache struct {
	mu   sync.Mutex
	data map[assetid.ID][]byte

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[assetid.ID][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(id assetid.ID) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[id]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(id assetid.ID, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[id] = data
}

// Invalidate drops a single asset.
func (c *Cache) Invalidate(id assetid.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, id)
}

// Clear drops everything, e.g. after a pack-order change.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[assetid.ID][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache hit/miss counters.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
