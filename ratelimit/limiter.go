package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrAcquireTimeout indicates no permit became available within the
// acquisition timeout. Callers decide whether to skip the work or surface
// the error; it is never fatal to the whole run.
var ErrAcquireTimeout = errors.New("rate limit acquire timed out")

// Limiter is a thread-safe token-bucket admission controller.
//
// The bucket starts full. Permits replenish at requestsPerMinute/60 per
// second up to the burst capacity. All state lives behind one mutex; waits
// happen with the mutex released.
type Limiter struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	ratePerSec float64
	lastRefill time.Time
}

// Status is a point-in-time snapshot of the bucket.
type Status struct {
	// Capacity is the maximum number of permits the bucket can hold.
	Capacity int

	// TokensAvailable is the current permit count after refill.
	TokensAvailable float64

	// RequestsPerMinute is the configured sustained admission rate.
	RequestsPerMinute float64
}

// New creates a limiter admitting requestsPerMinute sustained calls with
// bursts up to burstCapacity. The bucket starts full.
func New(requestsPerMinute float64, burstCapacity int) (*Limiter, error) {
	if requestsPerMinute <= 0 {
		return nil, fmt.Errorf("requests per minute must be positive, got %v", requestsPerMinute)
	}
	if burstCapacity <= 0 {
		return nil, fmt.Errorf("burst capacity must be positive, got %d", burstCapacity)
	}
	return &Limiter{
		capacity:   float64(burstCapacity),
		tokens:     float64(burstCapacity),
		ratePerSec: requestsPerMinute / 60.0,
		lastRefill: time.Now(),
	}, nil
}

// refillLocked replenishes permits from elapsed time. Caller holds mu.
func (l *Limiter) refillLocked() {
	now := time.Now()
	elapsed := now.Sub(l.lastRefill).Seconds()
	if elapsed > 0 {
		l.tokens = min(l.capacity, l.tokens+elapsed*l.ratePerSec)
	}
	l.lastRefill = now
}

// Acquire consumes one permit, waiting up to timeout for one to accrue.
// Returns ErrAcquireTimeout if the wait needed exceeds the remaining timeout,
// or the context error if ctx is cancelled while waiting. A timeout of zero
// is a pure non-blocking probe. On any non-nil return the bucket is
// unchanged: only a successful Acquire consumes a permit.
func (l *Limiter) Acquire(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		l.mu.Lock()
		l.refillLocked()
		if l.tokens >= 1 {
			l.tokens--
			l.mu.Unlock()
			return nil
		}

		// Time for the deficit to accrue at the refill rate.
		wait := time.Duration((1 - l.tokens) / l.ratePerSec * float64(time.Second))
		l.mu.Unlock()

		if remaining := time.Until(deadline); wait > remaining {
			return ErrAcquireTimeout
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		// Another waiter may have taken the permit that accrued; re-check.
	}
}

// Status refills the bucket and reports its current state. It consumes
// nothing.
func (l *Limiter) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refillLocked()
	return Status{
		Capacity:          int(l.capacity),
		TokensAvailable:   l.tokens,
		RequestsPerMinute: l.ratePerSec * 60.0,
	}
}
