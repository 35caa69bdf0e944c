package retry

import (
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy defines the interface for backoff strategies
type BackoffStrategy interface {
	// NextBackoff returns the wait before the attempt following the given one
	NextBackoff(attempt int) time.Duration
}

// ConstantBackoff waits the same interval between every attempt
type ConstantBackoff struct {
	Interval time.Duration
}

// NextBackoff returns the constant backoff interval
func (b *ConstantBackoff) NextBackoff(attempt int) time.Duration {
	return b.Interval
}

// ExponentialBackoff grows the interval by Multiplier per attempt, capped at MaxInterval
type ExponentialBackoff struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	JitterFactor    float64
}

// NextBackoff calculates the next exponentially increasing backoff duration with jitter
func (b *ExponentialBackoff) NextBackoff(attempt int) time.Duration {
	backoff := float64(b.InitialInterval) * math.Pow(b.Multiplier, float64(attempt-1))

	if b.JitterFactor > 0 {
		backoff += rand.Float64() * b.JitterFactor * backoff
	}

	if backoff > float64(b.MaxInterval) {
		backoff = float64(b.MaxInterval)
	}

	return time.Duration(backoff)
}

// NewFileLockBackoff is tuned for a workbook briefly held open by a
// spreadsheet program: a handful of short waits, never more than two seconds.
func NewFileLockBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      2,
		JitterFactor:    0.1,
	}
}
