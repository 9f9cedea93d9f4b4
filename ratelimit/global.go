package ratelimit

import (
	"errors"
	"sync"
)

// ErrNotConfigured indicates Global was called before Configure. Failing
// fast here catches missing setup in calling code instead of silently
// defaulting to an arbitrary rate.
var ErrNotConfigured = errors.New("global rate limiter not configured")

// shared limiter for call sites that must observe one bucket.
var (
	globalMu sync.RWMutex
	global   *Limiter
)

// Configure creates the process-wide shared limiter, replacing any previous
// one. Call it once at process start. Re-configuring discards the old
// bucket's state and is only safe between invocation bursts.
func Configure(requestsPerMinute float64, burstCapacity int) error {
	limiter, err := New(requestsPerMinute, burstCapacity)
	if err != nil {
		return err
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	global = limiter
	return nil
}

// Global returns the shared limiter, or ErrNotConfigured if Configure has
// not been called.
func Global() (*Limiter, error) {
	globalMu.RLock()
	defer globalMu.RUnlock()

	if global == nil {
		return nil, ErrNotConfigured
	}
	return global, nil
}

// ResetGlobal discards the shared limiter. This is primarily useful for
// testing.
func ResetGlobal() {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = nil
}
