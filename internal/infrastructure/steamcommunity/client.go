package steamcommunity

import (
	"context"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"steamfeeds/internal/ports"
)

var tracer = otel.Tracer("steamfeeds/steamcommunity")

const (
	defaultUserAgent = "Steam Feeds (https://github.com/steamfeeds/steamfeeds)"
	defaultTimeout   = 30 * time.Second
)

// Options configures the HTTP client.
type Options struct {
	UserAgent string
	Timeout   time.Duration
}

// Client is the single HTTP client shared by the scraper and the verifier.
type Client struct {
	http *resty.Client
}

var _ ports.Fetcher = (*Client)(nil)

// NewClient builds a resty client; zero options fall back to defaults.
func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent)

	return &Client{http: client}
}

// Get fetches url and returns its media type and body.
func (c *Client) Get(ctx context.Context, url string) (ports.Response, error) {
	ctx, span := tracer.Start(ctx, "GET", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("http.url", url))

	resp, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return ports.Response{}, fmt.Errorf("request %s: %w", url, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	if !resp.IsSuccess() {
		err := fmt.Errorf("%w: %s returned %s", ErrUnexpectedStatus, url, resp.Status())
		span.SetStatus(codes.Error, resp.Status())
		return ports.Response{}, err
	}

	return ports.Response{
		ContentType: mediaType(resp.Header().Get("Content-Type")),
		Body:        resp.String(),
	}, nil
}

// mediaType strips parameters such as charset from a Content-Type header.
func mediaType(header string) string {
	if header == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		mt, _, _ = strings.Cut(header, ";")
		return strings.ToLower(strings.TrimSpace(mt))
	}
	return mt
}
