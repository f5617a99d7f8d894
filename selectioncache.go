package img2ascii

import (
	"sync"
)

// SelectionCache remembers which glyph was chosen for a tile, keyed by
// the hash of the tile pixels (see TileStats.Key). A hit skips the
// alphabet scan.
//
// Entries are only valid for the Scorer that produced them.
type SelectionCache struct {
	mu      sync.RWMutex
	entries map[uint64]Glyph
	hits    int
	misses  int
}

// NewSelectionCache returns an empty cache.
func NewSelectionCache() *SelectionCache {
	return &SelectionCache{entries: make(map[uint64]Glyph)}
}

// Get returns the cached glyph for key and counts a hit or a miss.
func (c *SelectionCache) Get(key uint64) (Glyph, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return g, ok
}

// Put stores the glyph chosen for key.
func (c *SelectionCache) Put(key uint64, g Glyph) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = g
}

// Len returns the number of distinct tiles cached.
func (c *SelectionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cache hit/miss statistics.
func (c *SelectionCache) Stats() (hits, misses int, hitRate float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := c.hits + c.misses
	if total == 0 {
		return 0, 0, 0
	}
	return c.hits, c.misses, float64(c.hits) / float64(total)
}

// Reset drops all entries and counters.
func (c *SelectionCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]Glyph)
	c.hits = 0
	c.misses = 0
}
