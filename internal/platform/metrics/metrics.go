package metrics

import (
	"maps"
	"sync"
	"sync/atomic"
	"time"
)

// Collector keeps process-local counters exposed on /metrics.
type Collector struct {
	requests    atomic.Uint64
	clientErrs  atomic.Uint64
	serverErrs  atomic.Uint64
	rateLimited atomic.Uint64
	durationMs  atomic.Uint64
	jobs        atomic.Uint64
	jobsFailed  atomic.Uint64

	mu     sync.Mutex
	events map[string]uint64
}

func New() *Collector {
	return &Collector{events: make(map[string]uint64)}
}

// Record counts one finished HTTP request.
func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.Add(1)
	c.durationMs.Add(uint64(max(duration.Milliseconds(), 0)))
	switch {
	case status == 429:
		c.rateLimited.Add(1)
		c.clientErrs.Add(1)
	case status >= 500:
		c.serverErrs.Add(1)
	case status >= 400:
		c.clientErrs.Add(1)
	}
}

// RecordJob matches the jobs queue run hook.
func (c *Collector) RecordJob(_ string, err error) {
	c.jobs.Add(1)
	if err != nil {
		c.jobsFailed.Add(1)
	}
}

// Count increments a named domain event such as "leave.approved".
func (c *Collector) Count(event string) {
	c.mu.Lock()
	c.events[event]++
	c.mu.Unlock()
}

func (c *Collector) Snapshot() map[string]any {
	total := c.requests.Load()
	totalMs := c.durationMs.Load()
	avg := 0.0
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	events := maps.Clone(c.events)
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":     total,
		"clientErrorsTotal": c.clientErrs.Load(),
		"errorsTotal":       c.serverErrs.Load(),
		"rateLimitedTotal":  c.rateLimited.Load(),
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
		"jobsTotal":         c.jobs.Load(),
		"jobsFailedTotal":   c.jobsFailed.Load(),
		"events":            events,
	}
}
