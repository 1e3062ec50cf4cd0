// Package cache provides the memoizing TTL cache shared by every provider
// adapter. Entries are immutable once set and expire lazily: an expired entry
// is evicted as a side effect of the read that observes it.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultTTL matches the provider response lifetime the service was tuned for.
const DefaultTTL = 300 * time.Second

type entry struct {
	value    any
	storedAt time.Time
}

// Cache is a time-boxed key/value store safe for concurrent use. There is no
// capacity bound: entry count is bounded only by query diversity.
// TODO: add an LRU capacity bound before exposing this to unbounded traffic.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
}

// New creates a cache whose entries live for ttl after Set.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the live value for key. It reports absent both when the key was
// never set and when its TTL has elapsed; in the latter case the entry is
// evicted before returning.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, resetting its TTL. Concurrent writers to the
// same key race with last-write-wins semantics.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: time.Now()}
}

// Len reports the number of entries currently stored, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Key builds a deterministic cache key from a logical operation name and the
// ordered parameters that affect its result. Distinct argument lists never
// collide because every part is rendered in order.
func Key(op string, parts ...any) string {
	var b strings.Builder
	b.WriteString(op)
	for _, p := range parts {
		b.WriteByte(':')
		fmt.Fprintf(&b, "%v", p)
	}
	return b.String()
}

// Lookup memoizes fetch under key: a live entry is returned as-is, otherwise
// fetch runs exactly once for this caller and its result is stored on
// success. Failed fetches are not cached, so a recovered upstream becomes
// visible on the next call.
func Lookup[T any](c *Cache, key string, fetch func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	value, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, value)
	return value, nil
}
