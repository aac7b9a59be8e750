package todoclient

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Cache holds read results by resource key until they go stale.
// Concurrent fills of one key share a single request. A fill that was
// started before an Invalidate never stores its result.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	gen        uint64
	staleAfter time.Duration
	now        func() time.Time
	group      singleflight.Group
}

func NewCache(staleAfter time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries:    make(map[string]entry),
		staleAfter: staleAfter,
		now:        now,
	}
}

// Get returns a fresh value for key.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.staleAfter {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, value any) {
	if c.staleAfter <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

// setAt stores value only if nothing was invalidated since gen.
func (c *Cache) setAt(gen uint64, key string, value any) bool {
	if c.staleAfter <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return false
	}
	c.entries[key] = entry{value: value, storedAt: c.now()}
	return true
}

func (c *Cache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Invalidate drops every key starting with prefix and discards the result
// of any fill still in flight.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// fetch returns the cached value for key or fills it with fill.
func fetch[T any](c *Cache, key string, fill func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		return v.(T), nil
	}

	// Callers after an Invalidate start a new fill instead of joining one
	// that may have read the old state.
	gen := c.generation()
	v, err, _ := c.group.Do(strconv.FormatUint(gen, 10)+"|"+key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		value, err := fill()
		if err != nil {
			return nil, err
		}
		c.setAt(gen, key, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
