package cache

import "sync/atomic"

// Counters tracks cache activity. All methods are safe for concurrent use.
type Counters struct {
	hits      int64
	misses    int64
	evictions int64
}

// CounterSnapshot is a point-in-time copy of a Counters.
type CounterSnapshot struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// RecordHit increments the hit counter.
func (c *Counters) RecordHit() {
	atomic.AddInt64(&c.hits, 1)
}

// RecordMiss increments the miss counter.
func (c *Counters) RecordMiss() {
	atomic.AddInt64(&c.misses, 1)
}

// RecordEviction increments the eviction counter.
func (c *Counters) RecordEviction() {
	atomic.AddInt64(&c.evictions, 1)
}

// Snapshot returns the current counter values.
func (c *Counters) Snapshot() CounterSnapshot {
	return CounterSnapshot{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
	}
}
