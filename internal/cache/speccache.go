// Package cache provides the short-lived normalized-key cache that maps vibe
// text to previously computed playlist specs. It is in-memory and
// per-process; a cold-started or parallel instance starts empty.
package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
)

const (
	// DefaultCapacity bounds the number of resident entries.
	DefaultCapacity = 100
	// DefaultTTL is how long an entry may be served after it is stored.
	DefaultTTL = time.Hour
)

// Normalize canonicalizes a vibe string for use as a cache key: trimmed,
// lowercased, with internal whitespace runs collapsed to single spaces.
func Normalize(vibe string) string {
	return strings.Join(strings.Fields(strings.ToLower(vibe)), " ")
}

type entry struct {
	key       string
	spec      domain.PlaylistSpec
	expiresAt time.Time
}

// SpecCache is a bounded LRU cache with time-based expiry. All operations are
// serialized internally so the recency ordering and the size bound survive
// concurrent use.
type SpecCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time

	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

// New returns a cache with the given capacity and TTL, using the wall clock.
func New(capacity int, ttl time.Duration) *SpecCache {
	return NewWithClock(capacity, ttl, time.Now)
}

// NewWithClock is New with an injectable clock, for tests.
func NewWithClock(capacity int, ttl time.Duration, now func() time.Time) *SpecCache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SpecCache{
		capacity: capacity,
		ttl:      ttl,
		now:      now,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the spec stored under key, promoting the entry to most recently
// used. An expired entry is evicted and reported as absent.
func (c *SpecCache) Get(key string) (domain.PlaylistSpec, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return domain.PlaylistSpec{}, false
	}

	ent := el.Value.(*entry)
	if c.now().After(ent.expiresAt) {
		c.removeLocked(el)
		return domain.PlaylistSpec{}, false
	}

	c.order.MoveToFront(el)
	return ent.spec, true
}

// Set stores spec under key with a fresh TTL. When the cache is at capacity
// the least recently used entry is evicted first.
func (c *SpecCache) Set(key string, spec domain.PlaylistSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)

	if el, ok := c.entries[key]; ok {
		ent := el.Value.(*entry)
		ent.spec = spec
		ent.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeLocked(oldest)
		}
	}

	el := c.order.PushFront(&entry{key: key, spec: spec, expiresAt: expiresAt})
	c.entries[key] = el
}

// Len reports the number of resident entries, expired or not.
func (c *SpecCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *SpecCache) removeLocked(el *list.Element) {
	ent := el.Value.(*entry)
	c.order.Remove(el)
	delete(c.entries, ent.key)
}
