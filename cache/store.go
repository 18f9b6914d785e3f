package cache

import (
	lru "github.com/hashicorp/golang-lru"
)

// Store is the pattern cache consumed by the matching engine. It memoizes
// compiled testers and individual regex test outcomes, keyed by prefixed rule
// text ("re:", "match:", "re-test:") so the namespaces never collide.
//
// Get must not change recency; Hit bumps recency without touching the value.
type Store interface {
	Get(key string) (interface{}, bool)
	Put(key string, value interface{})
	Hit(key string)
}

// LRU is the default Store, a fixed-capacity LRU map. Eviction is the
// store's own concern; callers never observe it beyond a Get miss.
type LRU struct {
	c *lru.Cache
}

// NewLRU creates a Store bounded to capacity entries.
func NewLRU(capacity int) (*LRU, error) {
	c, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &LRU{c: c}, nil
}

// Get returns the cached value without updating recency.
func (l *LRU) Get(key string) (interface{}, bool) {
	return l.c.Peek(key)
}

// Put inserts or replaces a value, making it most recently used.
func (l *LRU) Put(key string, value interface{}) {
	l.c.Add(key, value)
}

// Hit marks key as recently used. A miss is a no-op.
func (l *LRU) Hit(key string) {
	l.c.Get(key)
}

// Len returns the number of cached entries.
func (l *LRU) Len() int {
	return l.c.Len()
}

// Purge drops every entry.
func (l *LRU) Purge() {
	l.c.Purge()
}
