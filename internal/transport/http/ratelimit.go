package http

import (
	"sync"
	"time"
)

// rateLimiter is a fixed one-minute window over new connections. The window
// resets lazily on the next allow call, so no ticker goroutine is needed.
type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Time
	counter int
}

func newRateLimiter(limit int) *rateLimiter {
	return &rateLimiter{limit: limit}
}

func (r *rateLimiter) allow() bool {
	if r == nil || r.limit <= 0 {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if now.Sub(r.window) >= time.Minute {
		r.window = now
		r.counter = 0
	}
	r.counter++
	return r.counter <= r.limit
}
