// Package calendar holds the contribution calendar logic: the per-year
// response cache, the loader that fills it, and the transform that turns
// raw day counts into renderable bar heights and color buckets.
package calendar

import (
	"fmt"
	"sync"

	"github.com/spiffcs/ghlens/internal/model"
)

// Key identifies one fetchable calendar dataset.
type Key struct {
	Username string
	Year     int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Username, k.Year)
}

// YearCache maps (username, year) to a previously fetched calendar.
// Entries are never evicted or overwritten; the cache lives exactly as long
// as its owner. It is safe for concurrent use.
type YearCache struct {
	mu      sync.RWMutex
	entries map[Key]*model.ContributionCalendar
}

// NewYearCache creates an empty cache.
func NewYearCache() *YearCache {
	return &YearCache{entries: make(map[Key]*model.ContributionCalendar)}
}

// Get returns the cached calendar for the key. A miss means a fetch is required.
func (c *YearCache) Get(username string, year int) (*model.ContributionCalendar, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.entries[Key{Username: username, Year: year}]
	return data, ok
}

// Put stores data for the key. The first value stored for a key wins; later
// puts are ignored. Put reports whether the value was stored.
func (c *YearCache) Put(username string, year int, data *model.ContributionCalendar) bool {
	if data == nil {
		return false
	}
	key := Key{Username: username, Year: year}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; exists {
		return false
	}
	c.entries[key] = data
	return true
}

// Len returns the number of cached datasets.
func (c *YearCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the cached keys in no particular order.
func (c *YearCache) Keys() []Key {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]Key, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}
