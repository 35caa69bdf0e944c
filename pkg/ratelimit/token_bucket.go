// Package ratelimit provides a token bucket used to pace expensive requests.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// TokenBucket implements a token bucket rate limiting algorithm
type TokenBucket struct {
	tokens         float64
	maxTokens      float64
	refillRate     float64
	lastRefillTime time.Time
	now            func() time.Time
	mutex          sync.Mutex
}

// NewTokenBucket creates a full bucket holding maxTokens that refills at
// refillRate tokens per second
func NewTokenBucket(maxTokens, refillRate float64) *TokenBucket {
	return newTokenBucket(maxTokens, refillRate, time.Now)
}

func newTokenBucket(maxTokens, refillRate float64, now func() time.Time) *TokenBucket {
	return &TokenBucket{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillRate:     refillRate,
		lastRefillTime: now(),
		now:            now,
	}
}

// Allow takes one token if one is available
func (tb *TokenBucket) Allow() bool {
	return tb.AllowN(1)
}

// AllowN takes n tokens if that many are available
func (tb *TokenBucket) AllowN(n float64) bool {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.refill()

	if tb.tokens >= n {
		tb.tokens -= n
		return true
	}

	return false
}

// RetryAfter estimates how long until one token is available
func (tb *TokenBucket) RetryAfter() time.Duration {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.refill()

	if tb.tokens >= 1 || tb.refillRate <= 0 {
		return 0
	}

	return time.Duration((1 - tb.tokens) / tb.refillRate * float64(time.Second))
}

// refill adds the tokens earned since the last call. Callers hold the mutex.
func (tb *TokenBucket) refill() {
	now := tb.now()
	elapsed := now.Sub(tb.lastRefillTime).Seconds()
	tb.lastRefillTime = now

	tb.tokens = math.Min(tb.maxTokens, tb.tokens+elapsed*tb.refillRate)
}
