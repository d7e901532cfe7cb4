package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrWaitTimeout indicates a condition never became true within the bounded
// attempts.
var ErrWaitTimeout = errors.New("scraper: condition wait timed out")

// Condition is a probe evaluated repeatedly until it reports true. An error
// aborts the wait immediately.
type Condition func(ctx context.Context) (bool, error)

// Waiter polls a condition with bounded attempts. It replaces the fixed
// settle delays the target pages would otherwise force on us; the sleep
// function is injectable so tests can drive the wait with a fake clock
// instead of real time.
type Waiter struct {
	// Interval between attempts
	Interval time.Duration
	// MaxAttempts bounds the wait; the total budget is Interval*MaxAttempts
	MaxAttempts int

	// sleep is replaced in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewWaiter creates a waiter with the given polling parameters.
func NewWaiter(interval time.Duration, maxAttempts int) *Waiter {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	if maxAttempts <= 0 {
		maxAttempts = 20
	}
	return &Waiter{
		Interval:    interval,
		MaxAttempts: maxAttempts,
		sleep:       sleepCtx,
	}
}

// PollUntil evaluates cond up to MaxAttempts times, sleeping Interval
// between attempts. It returns nil as soon as cond reports true,
// the condition's error if it fails, or ErrWaitTimeout when the attempt
// budget is exhausted.
func (w *Waiter) PollUntil(ctx context.Context, what string, cond Condition) error {
	for attempt := 0; attempt < w.MaxAttempts; attempt++ {
		ok, err := cond(ctx)
		if err != nil {
			return fmt.Errorf("scraper: waiting for %s: %w", what, err)
		}
		if ok {
			return nil
		}
		if err := w.sleep(ctx, w.Interval); err != nil {
			return fmt.Errorf("scraper: waiting for %s: %w", what, err)
		}
	}
	return fmt.Errorf("%w: %s", ErrWaitTimeout, what)
}

// sleepCtx sleeps for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
