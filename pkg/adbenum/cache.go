package adbenum

import (
	"sort"
	"sync"
)

// Cache memoizes enumerations by id. The first configuration created for an
// id wins; later configurations for the same id are discarded.
type Cache struct {
	mu        sync.RWMutex
	instances map[string]*Enum
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{instances: make(map[string]*Enum)}
}

// Create returns the cached enumeration for cfg.ID, creating it from cfg if
// none exists yet
func (c *Cache) Create(cfg Config) *Enum {
	c.mu.RLock()
	existing, ok := c.instances[cfg.ID]
	c.mu.RUnlock()
	if ok {
		return existing
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under the write lock
	if existing, ok := c.instances[cfg.ID]; ok {
		return existing
	}
	e := newEnum(cfg)
	c.instances[cfg.ID] = e
	return e
}

// Lookup retrieves a cached enumeration by id
func (c *Cache) Lookup(id string) (*Enum, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.instances[id]
	return e, ok
}

// LookupByCode retrieves a cached enumeration by code
func (c *Cache) LookupByCode(code string) (*Enum, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, e := range c.instances {
		if e.code == code {
			return e, true
		}
	}
	return nil, false
}

// All returns every cached enumeration sorted by code
func (c *Cache) All() []*Enum {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Enum, 0, len(c.instances))
	for _, e := range c.instances {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].code != out[j].code {
			return out[i].code < out[j].code
		}
		return out[i].id < out[j].id
	})
	return out
}

// Len returns the number of cached enumerations
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.instances)
}

// Reset empties the cache (useful for testing)
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.instances = make(map[string]*Enum)
}

// Global cache instance
var defaultCache = NewCache()

// Default returns the process-wide cache
func Default() *Cache {
	return defaultCache
}

// Create creates or returns an enumeration from the process-wide cache
func Create(cfg Config) *Enum {
	return defaultCache.Create(cfg)
}
