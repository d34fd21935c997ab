package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"steamfeeds/internal/domain"
	"steamfeeds/internal/ports"
)

const (
	feedContentType = "text/xml"
	titleOpen       = "<title>"
	titleClose      = "</title>"
)

// ProgressFunc is told how many candidates have been processed so far.
type ProgressFunc func(done, total int)

// Verifier confirms candidates by fetching them, falling back to the
// friendly URL once.
type Verifier struct {
	fetcher  ports.Fetcher
	diag     io.Writer
	logger   *slog.Logger
	progress ProgressFunc
}

// NewVerifier wires the HTTP collaborator. Feeds dropped for a malformed
// body are reported on diag; progress may be nil.
func NewVerifier(fetcher ports.Fetcher, diag io.Writer, log *slog.Logger, progress ProgressFunc) *Verifier {
	return &Verifier{fetcher: fetcher, diag: diag, logger: log, progress: progress}
}

// VerifyAll keeps confirmed candidates in their original order.
func (v *Verifier) VerifyAll(ctx context.Context, candidates []domain.FeedCandidate) ([]domain.FeedCandidate, error) {
	confirmed := make([]domain.FeedCandidate, 0, len(candidates))
	for i, candidate := range candidates {
		verified, outcome, err := v.Verify(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if outcome == domain.OutcomeConfirmed {
			confirmed = append(confirmed, verified)
		}
		if v.progress != nil {
			v.progress(i+1, len(candidates))
		}
	}
	return confirmed, nil
}

// Verify fetches the candidate URL and, if it is not a feed, the fallback.
// The returned candidate carries the feed's own title and the URL that
// answered with XML. Transport failures are returned as errors.
func (v *Verifier) Verify(ctx context.Context, candidate domain.FeedCandidate) (domain.FeedCandidate, domain.VerifyOutcome, error) {
	resp, err := v.fetcher.Get(ctx, candidate.URL)
	if err != nil {
		return candidate, domain.OutcomeDropped, fmt.Errorf("verify %s: %w", candidate.URL, err)
	}

	if !isFeed(resp) && candidate.HasFallback() {
		resp, err = v.fetcher.Get(ctx, candidate.FallbackURL)
		if err != nil {
			return candidate, domain.OutcomeDropped, fmt.Errorf("verify %s: %w", candidate.FallbackURL, err)
		}
		if isFeed(resp) {
			candidate = candidate.WithURL(candidate.FallbackURL)
		}
	}

	if !isFeed(resp) {
		v.debug("dropped candidate", "url", candidate.URL, "content_type", resp.ContentType)
		return candidate, domain.OutcomeDropped, nil
	}

	title, err := ExtractTitle(resp.Body)
	if errors.Is(err, domain.ErrMalformedFeed) {
		if v.diag != nil {
			fmt.Fprintf(v.diag, "Dropped %s: %v\n", candidate.URL, err)
		}
		if v.logger != nil {
			v.logger.Warn("dropped feed without title", "url", candidate.URL, "error", err)
		}
		return candidate, domain.OutcomeDropped, nil
	}

	return candidate.WithText(title), domain.OutcomeConfirmed, nil
}

func isFeed(resp ports.Response) bool {
	return resp.ContentType == feedContentType
}

// ExtractTitle returns the text between the first <title> and the first
// </title> after it. It does not decode entities or CDATA.
func ExtractTitle(body string) (string, error) {
	start := strings.Index(body, titleOpen)
	if start < 0 {
		return "", fmt.Errorf("%w: missing %s", domain.ErrMalformedFeed, titleOpen)
	}

	rest := body[start+len(titleOpen):]
	end := strings.Index(rest, titleClose)
	if end < 0 {
		return "", fmt.Errorf("%w: missing %s", domain.ErrMalformedFeed, titleClose)
	}

	return rest[:end], nil
}

func (v *Verifier) debug(msg string, args ...interface{}) {
	if v.logger != nil {
		v.logger.Debug(msg, args...)
	}
}
