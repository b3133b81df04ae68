package pacer

import (
	"context"
	"testing"
	"time"
)

func TestWaitSpacesCalls(t *testing.T) {
	lim := New(20 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := lim.Wait(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	elapsed := time.Since(start)

	// First call is immediate, the next two wait one interval each.
	if elapsed < 40*time.Millisecond {
		t.Errorf("expected at least 40ms between three calls, got %v", elapsed)
	}
}

func TestWaitHonorsCancellation(t *testing.T) {
	lim := New(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	// Reserve the first slot so the next wait would block for an hour.
	if err := lim.Wait(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- lim.Wait(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected context error after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}

func TestBackoffDelaysNextSlot(t *testing.T) {
	lim := New(time.Millisecond)
	lim.Backoff(50 * time.Millisecond)

	start := time.Now()
	if err := lim.Wait(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("expected Wait to honor backoff, returned after %v", elapsed)
	}
}
