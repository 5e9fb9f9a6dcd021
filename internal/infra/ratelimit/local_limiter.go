package ratelimit

import (
	"context"
	"sync"
	"time"

	"accounts/internal/domain/service"

	"golang.org/x/time/rate"
)

// maxLocalKeys bounds the per-key bucket map; it is reset when exceeded.
const maxLocalKeys = 10000

// localLimiter keeps one token bucket per key in process memory.
type localLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	every   rate.Limit
	burst   int
}

// NewLocalLimiter allows limit attempts per window per key, refilling evenly.
func NewLocalLimiter(limit int, window time.Duration) service.RateLimiter {
	return &localLimiter{
		buckets: make(map[string]*rate.Limiter),
		every:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
	}
}

// Allow takes one token from the key's bucket.
func (l *localLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxLocalKeys {
			l.buckets = make(map[string]*rate.Limiter)
		}
		bucket = rate.NewLimiter(l.every, l.burst)
		l.buckets[key] = bucket
	}

	return bucket.Allow(), nil
}
