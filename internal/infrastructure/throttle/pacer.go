package throttle

import (
	"context"
	"time"

	"steamfeeds/internal/ports"
)

// Pacer sleeps for a fixed delay. There is no backoff or jitter.
type Pacer struct {
	delay time.Duration
	sleep func(ctx context.Context, d time.Duration) error
}

var _ ports.Throttle = (*Pacer)(nil)

// NewPacer builds a pacer; a non-positive delay disables waiting.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay, sleep: sleepContext}
}

// Wait blocks for the delay or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	return p.sleep(ctx, p.delay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
