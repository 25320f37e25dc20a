package util

import (
	"context"
	"testing"
	"time"
)

func TestLimiterAllow(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow(1) {
		t.Error("first event within burst should be allowed")
	}
	if !l.Allow(1) {
		t.Error("second event within burst should be allowed")
	}
	if l.Allow(1) {
		t.Error("event beyond burst should be throttled")
	}
}

func TestLimiterWait(t *testing.T) {
	l := NewLimiter(100, 1)

	if err := l.Wait(context.Background(), 1); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestLimiterWaitCanceled(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.Allow(1) // drain the bucket

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, 1); err == nil {
		t.Error("expected error when context expires before a token is available")
	}
}
