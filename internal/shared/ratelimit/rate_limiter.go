// Package ratelimit caps how often an external API may be called.
package ratelimit

import (
	"log/slog"
	"sync"
	"time"
)

// Limiter restricts the number of calls per interval. The summarization
// gateway sits in front of a quota-limited LLM API, so callers block until
// the next window instead of failing.
type Limiter struct {
	mu        sync.Mutex
	limit     int           // calls allowed per interval
	interval  time.Duration // window that resets the count
	count     int
	lastReset time.Time
}

// New creates a Limiter allowing limit calls per interval.
func New(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded blocks until the current call fits within the limit.
// Safe for concurrent use; racing callers are admitted one at a time.
func (rl *Limiter) WaitIfNeeded() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		sleep := rl.interval - now.Sub(rl.lastReset)
		if sleep > 0 {
			slog.Warn("rate limit reached, sleeping", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		rl.count = 1
		rl.lastReset = time.Now()
	}
}
