package ratelimit

import (
	"errors"
	"testing"
)

func TestGlobal_NotConfigured(t *testing.T) {
	ResetGlobal()
	defer ResetGlobal()

	if _, err := Global(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestConfigure_SharedInstance(t *testing.T) {
	ResetGlobal()
	defer ResetGlobal()

	if err := Configure(40, 8); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	first, err := Global()
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	second, err := Global()
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	if first != second {
		t.Error("expected the same shared limiter instance")
	}

	status := first.Status()
	if status.Capacity != 8 {
		t.Errorf("expected capacity 8, got %d", status.Capacity)
	}
	if status.RequestsPerMinute != 40 {
		t.Errorf("expected 40 rpm, got %v", status.RequestsPerMinute)
	}
}

func TestConfigure_ReplacesBucket(t *testing.T) {
	ResetGlobal()
	defer ResetGlobal()

	if err := Configure(40, 8); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := Configure(10, 2); err != nil {
		t.Fatalf("re-Configure: %v", err)
	}

	l, err := Global()
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	if got := l.Status().Capacity; got != 2 {
		t.Errorf("expected replaced capacity 2, got %d", got)
	}
}

func TestConfigure_InvalidLeavesExisting(t *testing.T) {
	ResetGlobal()
	defer ResetGlobal()

	if err := Configure(40, 8); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := Configure(0, 8); err == nil {
		t.Fatal("expected error for zero rpm")
	}

	l, err := Global()
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	if got := l.Status().Capacity; got != 8 {
		t.Errorf("failed Configure replaced the limiter: capacity %d", got)
	}
}
