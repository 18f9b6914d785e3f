package cache

import (
	"container/list"
	"sync"
)

// Verdict is a cached blacklist lookup outcome. Blocked carries the text of
// the first matching reject rule; a whitelist hit or no hit at all is the
// zero Verdict.
type Verdict struct {
	Rule    string
	Blocked bool
}

// ResultCache maps URL -> Verdict with a character budget: the cumulative
// length of the cached URL keys. Once an insertion pushes the total past the
// budget, entries are evicted oldest-insertion-first until the total is back
// at or below 75% of the budget. The hysteresis keeps a nearly-full cache
// from evicting on every single insertion.
//
// Accounting uses key length only, on insert and on evict. Value lengths are
// ignored on both sides so the running total can never drift.
type ResultCache struct {
	mu       sync.RWMutex
	maxChars int
	size     int
	entries  map[string]*list.Element
	order    *list.List // front = oldest insertion

	counters Counters
}

type resultNode struct {
	url     string
	verdict Verdict
}

// NewResultCache creates a cache bounded to maxChars cumulative key length.
func NewResultCache(maxChars int) *ResultCache {
	if maxChars <= 0 {
		maxChars = 100000
	}
	return &ResultCache{
		maxChars: maxChars,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached verdict for url.
func (c *ResultCache) Get(url string) (Verdict, bool) {
	c.mu.RLock()
	elem, ok := c.entries[url]
	var v Verdict
	if ok {
		v = elem.Value.(*resultNode).verdict
	}
	c.mu.RUnlock()

	if ok {
		c.counters.RecordHit()
	} else {
		c.counters.RecordMiss()
	}
	return v, ok
}

// Put stores the verdict for url, evicting old entries if the key budget is
// exceeded. Re-putting a known url replaces the verdict in place and does
// not disturb insertion order.
func (c *ResultCache) Put(url string, v Verdict) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[url]; ok {
		elem.Value.(*resultNode).verdict = v
		return
	}

	c.entries[url] = c.order.PushBack(&resultNode{url: url, verdict: v})
	c.size += len(url)

	if c.size <= c.maxChars {
		return
	}
	low := c.maxChars * 3 / 4
	for c.size > low {
		front := c.order.Front()
		if front == nil {
			break
		}
		node := front.Value.(*resultNode)
		c.order.Remove(front)
		delete(c.entries, node.url)
		c.size -= len(node.url)
		c.counters.RecordEviction()
	}
}

// Clear drops every entry and resets the size accounting.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order = list.New()
	c.size = 0
}

// Size returns the cumulative key length currently cached.
func (c *ResultCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size
}

// Len returns the number of cached entries.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}

// Stats returns a snapshot of the hit/miss/eviction counters.
func (c *ResultCache) Stats() CounterSnapshot {
	return c.counters.Snapshot()
}
