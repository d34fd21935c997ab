package ports

import (
	"context"
	"io"

	"steamfeeds/internal/domain"
)

// Response is the subset of an HTTP response the pipeline inspects.
type Response struct {
	ContentType string
	Body        string
}

// Fetcher performs a GET request. Transport failures and non-success
// statuses are reported as errors.
type Fetcher interface {
	Get(ctx context.Context, url string) (Response, error)
}

// Throttle blocks for the inter-request delay.
type Throttle interface {
	Wait(ctx context.Context) error
}

// GameSource lists the public games owned by a community user.
type GameSource interface {
	Scan(ctx context.Context, userID string) ([]domain.GameRecord, error)
}

// Encoder collects (title, url) entries and serializes them as one document.
type Encoder interface {
	Add(title, url string)
	Encode(w io.Writer) error
}

// Emitter renders the surviving feeds once the pipeline is done.
type Emitter interface {
	Emit(feeds []domain.FeedCandidate) error
}
