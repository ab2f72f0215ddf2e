package crawler

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces out fetch starts across all workers. When the interval is
// R, any two fetches begin at least R apart no matter which worker issues
// them.
//
// Design decision: We wrap golang.org/x/time/rate with burst 1 rather than
// hand-rolling a timestamp-and-mutex gate because:
//  1. A burst of 1 with one token per interval is exactly the
//     "minimum spacing between starts" contract
//  2. Wait honors context cancellation, so an interrupted crawl does not
//     sit in a sleep
//  3. The token claim is atomic, closing the check-then-sleep race between
//     concurrent workers
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter enforcing the given minimum interval between
// fetch starts. An interval of zero or less disables spacing entirely.
func NewLimiter(interval time.Duration) *Limiter {
	if interval <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the caller may start a fetch or the context is
// cancelled. The first caller proceeds immediately.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
