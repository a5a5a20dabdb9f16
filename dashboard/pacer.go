package dashboard

import (
	"context"
	"time"
)

// Pacer throttles consecutive remote requests. Batch fetches and the
// auto-answer loop are intentionally sequential; the pacer is the injected
// policy that spaces them out so the platform's rate limiting is not
// triggered.
type Pacer interface {
	// Pace blocks until the next request may proceed, or until ctx is done.
	Pace(ctx context.Context) error
}

// FixedDelayPacer waits a fixed delay between requests.
type FixedDelayPacer struct {
	Delay time.Duration
}

func (p FixedDelayPacer) Pace(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NopPacer applies no throttling. Used in tests.
type NopPacer struct{}

func (NopPacer) Pace(ctx context.Context) error { return ctx.Err() }
