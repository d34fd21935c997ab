package throttle

import (
	"context"
	"fmt"

	"steamfeeds/internal/ports"
)

// Fetcher waits on a Throttle after every request, whatever its outcome.
type Fetcher struct {
	next     ports.Fetcher
	throttle ports.Throttle
}

var _ ports.Fetcher = (*Fetcher)(nil)

// Wrap decorates next with the throttle.
func Wrap(next ports.Fetcher, throttle ports.Throttle) *Fetcher {
	return &Fetcher{next: next, throttle: throttle}
}

// Get delegates to the wrapped fetcher, then pauses.
func (f *Fetcher) Get(ctx context.Context, url string) (ports.Response, error) {
	resp, err := f.next.Get(ctx, url)
	if f.throttle == nil {
		return resp, err
	}

	if waitErr := f.throttle.Wait(ctx); waitErr != nil && err == nil {
		return ports.Response{}, fmt.Errorf("throttle: %w", waitErr)
	}
	return resp, err
}
