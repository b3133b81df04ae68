// Package pacer provides a minimal interval limiter used to pace calls to
// rate-limited external services.
package pacer

import (
	"context"
	"sync"
	"time"
)

// Limiter spaces calls at least one interval apart. It replaces the older
// scheme of delaying each task by its collection index.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	nextAt   time.Time
}

// New creates a Limiter with the given minimum interval between calls.
func New(interval time.Duration) *Limiter {
	return &Limiter{interval: interval}
}

// Wait blocks until the caller may proceed, then reserves the next slot.
// Returns early with the context error if ctx is cancelled while waiting.
func (lim *Limiter) Wait(ctx context.Context) error {
	lim.mu.Lock()
	now := time.Now()
	at := lim.nextAt
	if at.Before(now) {
		at = now
	}
	lim.nextAt = at.Add(lim.interval)
	lim.mu.Unlock()

	wait := time.Until(at)
	if wait <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// Backoff pushes the next slot out by at least d, e.g. after a 429 response.
func (lim *Limiter) Backoff(d time.Duration) {
	lim.mu.Lock()
	defer lim.mu.Unlock()
	until := time.Now().Add(d)
	if until.After(lim.nextAt) {
		lim.nextAt = until
	}
}
