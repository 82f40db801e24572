package palette

import "sync"

// Cache memoizes colors by iteration count.
//
// Once a count is stored its color never changes and is never evicted. Cache is
// safe for concurrent use, although a render drives it from a single goroutine.
type Cache struct {
	mu     sync.RWMutex
	colors map[int]Color
	hits   int
	misses int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{colors: make(map[int]Color)}
}

// Lookup returns the color stored for count, if any, and records a hit or a miss.
func (c *Cache) Lookup(count int) (Color, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	col, ok := c.colors[count]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return col, ok
}

// Store records col for count unless count is already present, and returns the
// color that is now cached for count.
func (c *Cache) Store(count int, col Color) Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.colors[count]; ok {
		return prev
	}
	c.colors[count] = col
	return col
}

// Len returns the number of cached counts.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.colors)
}

// Hits returns how many lookups were served from the cache.
func (c *Cache) Hits() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits
}

// Misses returns how many lookups found nothing.
func (c *Cache) Misses() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.misses
}

// memoize returns the cached color for count or computes, stores and returns it.
// A nil cache computes every time, so strategies built as struct literals work.
func (c *Cache) memoize(count int, compute func() Color) Color {
	if c == nil {
		return compute()
	}
	if col, ok := c.Lookup(count); ok {
		return col
	}
	return c.Store(count, compute())
}
