package observability

import (
	"context"
	"sync"
	"time"
)

// Counters tallies hook events in memory. It implements [EngineHooks],
// [CacheHooks] and [HTTPHooks] and is safe for concurrent use.
type Counters struct {
	mu        sync.Mutex
	started   time.Time
	ops       map[string]int
	failures  map[string]int
	warnings  map[string]int
	hits      int
	misses    int
	sets      int
	requests  int
	responses map[int]int
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{
		started:   time.Now(),
		ops:       make(map[string]int),
		failures:  make(map[string]int),
		warnings:  make(map[string]int),
		responses: make(map[int]int),
	}
}

// CountersSnapshot is a point-in-time copy of [Counters].
type CountersSnapshot struct {
	Uptime      string         `json:"uptime"`
	Operations  map[string]int `json:"operations"`
	Failures    map[string]int `json:"failures,omitempty"`
	Warnings    map[string]int `json:"warnings,omitempty"`
	CacheHits   int            `json:"cache_hits"`
	CacheMisses int            `json:"cache_misses"`
	CacheSets   int            `json:"cache_sets"`
	Requests    int            `json:"requests"`
	Responses   map[int]int    `json:"responses,omitempty"`
}

// Snapshot copies the current values.
func (c *Counters) Snapshot() CountersSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CountersSnapshot{
		Uptime:      time.Since(c.started).Round(time.Second).String(),
		Operations:  copyMap(c.ops),
		Failures:    copyMap(c.failures),
		Warnings:    copyMap(c.warnings),
		CacheHits:   c.hits,
		CacheMisses: c.misses,
		CacheSets:   c.sets,
		Requests:    c.requests,
		Responses:   copyMap(c.responses),
	}
}

func (c *Counters) OnOperationStart(_ context.Context, op string, _ int) {
	c.mu.Lock()
	c.ops[op]++
	c.mu.Unlock()
}

func (c *Counters) OnOperationComplete(_ context.Context, op string, _ time.Duration, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.failures[op]++
	c.mu.Unlock()
}

func (c *Counters) OnWarning(_ context.Context, _ string, code string) {
	c.mu.Lock()
	c.warnings[code]++
	c.mu.Unlock()
}

func (c *Counters) OnCacheHit(context.Context, string) {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

func (c *Counters) OnCacheMiss(context.Context, string) {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
}

func (c *Counters) OnCacheSet(context.Context, string, int) {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
}

func (c *Counters) OnRequest(context.Context, string, string) {
	c.mu.Lock()
	c.requests++
	c.mu.Unlock()
}

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	c.mu.Lock()
	c.responses[status]++
	c.mu.Unlock()
}

func copyMap[K comparable](m map[K]int) map[K]int {
	out := make(map[K]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
