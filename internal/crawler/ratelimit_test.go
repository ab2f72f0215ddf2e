package crawler

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"
)

func TestLimiter(t *testing.T) {
	t.Parallel()

	t.Run("zero interval does not block", func(t *testing.T) {
		t.Parallel()

		limiter := NewLimiter(0)
		start := time.Now()
		for i := 0; i < 10; i++ {
			if err := limiter.Wait(context.Background()); err != nil {
				t.Fatalf("wait failed: %v", err)
			}
		}
		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Errorf("10 waits with no limit took %s", elapsed)
		}
	})

	t.Run("sequential waits are spaced by the interval", func(t *testing.T) {
		t.Parallel()

		const interval = 50 * time.Millisecond
		limiter := NewLimiter(interval)

		start := time.Now()
		for i := 0; i < 3; i++ {
			if err := limiter.Wait(context.Background()); err != nil {
				t.Fatalf("wait failed: %v", err)
			}
		}
		// First wait is immediate; the next two each wait one interval.
		if elapsed := time.Since(start); elapsed < 2*interval {
			t.Errorf("3 waits took %s, want at least %s", elapsed, 2*interval)
		}
	})

	t.Run("concurrent waiters never start closer than the interval", func(t *testing.T) {
		t.Parallel()

		const (
			interval = 50 * time.Millisecond
			waiters  = 4
			// Timestamps are taken after Wait returns, so scheduling
			// jitter can shrink observed gaps slightly.
			slack = 10 * time.Millisecond
		)
		limiter := NewLimiter(interval)

		var (
			mu     sync.Mutex
			starts []time.Time
			wg     sync.WaitGroup
		)
		for i := 0; i < waiters; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := limiter.Wait(context.Background()); err != nil {
					t.Errorf("wait failed: %v", err)
					return
				}
				mu.Lock()
				starts = append(starts, time.Now())
				mu.Unlock()
			}()
		}
		wg.Wait()

		sort.Slice(starts, func(a, b int) bool { return starts[a].Before(starts[b]) })
		for i := 1; i < len(starts); i++ {
			if gap := starts[i].Sub(starts[i-1]); gap < interval-slack {
				t.Errorf("starts %d and %d only %s apart, want at least %s", i-1, i, gap, interval)
			}
		}
	})

	t.Run("wait honors context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := NewLimiter(time.Hour)
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("first wait should be immediate: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if err := limiter.Wait(ctx); err == nil {
			t.Fatal("expected an error from a cancelled wait")
		}
	})
}
