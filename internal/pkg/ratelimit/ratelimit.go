package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key
type RateLimiter struct {
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	burst    int
	mu       sync.Mutex
}

// New creates a limiter allowing limit requests per window for each key.
// Bursts up to limit are allowed.
func New(limit int, window time.Duration) *RateLimiter {
	return NewWithBurst(limit, window, limit)
}

// NewWithBurst is New with an explicit bucket size.
func NewWithBurst(limit int, window time.Duration, burst int) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if burst <= 0 {
		burst = limit
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		burst:    burst,
	}
}

func (rl *RateLimiter) every() rate.Limit {
	if rl.limit <= 0 {
		return 0
	}
	return rate.Limit(float64(rl.limit) / rl.window.Seconds())
}

func (rl *RateLimiter) get(key string) *visitor {
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.every(), rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v
}

// Allow checks if a request is allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.limit <= 0 {
		return false
	}
	return rl.get(key).limiter.Allow()
}

// Limit returns the configured number of requests per window
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// GetRemaining returns the number of whole tokens left for the given key
func (rl *RateLimiter) GetRemaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.limit <= 0 {
		return 0
	}
	remaining := int(math.Floor(rl.get(key).limiter.Tokens()))
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// RetryAfter returns how long a client must wait for the next token
func (rl *RateLimiter) RetryAfter() time.Duration {
	if rl.limit <= 0 {
		return rl.window
	}
	wait := time.Duration(float64(rl.window) / float64(rl.limit))
	if wait < time.Second {
		wait = time.Second
	}
	return wait
}

// Reset clears the rate limit for the given key
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.visitors, key)
}

// Cleanup drops visitors idle for longer than the window
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.window)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}

// Len returns the number of tracked keys
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// StartCleanup runs Cleanup every interval until ctx is done
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup()
			}
		}
	}()
}
