package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		rpm   float64
		burst int
	}{
		{"zero rpm", 0, 5},
		{"negative rpm", -10, 5},
		{"zero burst", 60, 0},
		{"negative burst", 60, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.rpm, tt.burst); err == nil {
				t.Errorf("New(%v, %d) expected error, got nil", tt.rpm, tt.burst)
			}
		})
	}
}

func TestLimiter_StartsFull(t *testing.T) {
	l, err := New(60, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	status := l.Status()
	if status.Capacity != 5 {
		t.Errorf("expected capacity 5, got %d", status.Capacity)
	}
	if status.TokensAvailable < 4.99 {
		t.Errorf("expected full bucket, got %v tokens", status.TokensAvailable)
	}
	if status.RequestsPerMinute != 60 {
		t.Errorf("expected 60 rpm, got %v", status.RequestsPerMinute)
	}
}

func TestLimiter_BurstThenTimeout(t *testing.T) {
	l, err := New(60, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	// Burst capacity admits immediately.
	for i := 0; i < 3; i++ {
		if err := l.Acquire(ctx, 0); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}

	// Empty bucket: a zero-timeout probe must fail without blocking.
	start := time.Now()
	if err := l.Acquire(ctx, 0); !errors.Is(err, ErrAcquireTimeout) {
		t.Errorf("expected ErrAcquireTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("zero-timeout probe blocked for %v", elapsed)
	}
}

func TestLimiter_TimeoutDoesNotConsume(t *testing.T) {
	l, err := New(6, 1) // one token per 10s
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := l.Acquire(ctx, 0); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	before := l.Status().TokensAvailable

	if err := l.Acquire(ctx, 10*time.Millisecond); !errors.Is(err, ErrAcquireTimeout) {
		t.Fatalf("expected ErrAcquireTimeout, got %v", err)
	}

	after := l.Status().TokensAvailable
	if after < before {
		t.Errorf("timed-out acquire consumed tokens: before=%v after=%v", before, after)
	}
}

func TestLimiter_RefillPacesAcquires(t *testing.T) {
	// 6000 rpm = 100 tokens/sec. Draining 2 burst + 3 refilled tokens
	// must take at least 3 * 10ms.
	l, err := New(6000, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := l.Acquire(ctx, 5*time.Second); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	if want := 30 * time.Millisecond; elapsed < want {
		t.Errorf("5 acquires with burst 2 took %v, want >= %v", elapsed, want)
	}
}

func TestLimiter_TokensNeverExceedCapacity(t *testing.T) {
	l, err := New(60000, 3) // fast refill
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		status := l.Status()
		if status.TokensAvailable > float64(status.Capacity)+1e-9 {
			t.Fatalf("tokens %v exceed capacity %d", status.TokensAvailable, status.Capacity)
		}
		if status.TokensAvailable < 0 {
			t.Fatalf("tokens went negative: %v", status.TokensAvailable)
		}
		_ = l.Acquire(ctx, 0)
		time.Sleep(2 * time.Millisecond)
	}
}

func TestLimiter_ConcurrentAcquiresNeverOversubscribe(t *testing.T) {
	l, err := New(6, 4) // negligible refill during the test window
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Acquire(ctx, 0); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != 4 {
		t.Errorf("expected exactly 4 admissions from burst of 4, got %d", admitted)
	}
}

func TestLimiter_WaitersEventuallyAdmitted(t *testing.T) {
	l, err := New(6000, 1) // 100 tokens/sec
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := l.Acquire(ctx, 0); err != nil {
		t.Fatalf("initial acquire: %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = l.Acquire(ctx, 2*time.Second)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("waiter %d not admitted: %v", i, err)
		}
	}
}

func TestLimiter_AcquireCancelledContext(t *testing.T) {
	l, err := New(6, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	if err := l.Acquire(ctx, 0); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	cancelCtx, cancel := context.WithCancel(ctx)
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err = l.Acquire(cancelCtx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	// Cancellation must not have consumed the permit still accruing.
	if tokens := l.Status().TokensAvailable; tokens < 0 {
		t.Errorf("tokens went negative after cancellation: %v", tokens)
	}
}

func TestStatus_RefillsBeforeReporting(t *testing.T) {
	l, err := New(6000, 2) // 100 tokens/sec
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := l.Acquire(ctx, 0); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	drained := l.Status().TokensAvailable

	time.Sleep(20 * time.Millisecond)
	refilled := l.Status().TokensAvailable

	if refilled <= drained {
		t.Errorf("status did not refill: drained=%v refilled=%v", drained, refilled)
	}
}
