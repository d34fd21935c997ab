package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"steamfeeds/internal/domain"
	"steamfeeds/internal/scanner"
)

// Inputs groups the raw values given on the command line.
type Inputs struct {
	AppIDs []int
	URLs   []string
	Users  []string
}

// requests flattens the inputs in processing order: AppIDs, store URLs,
// then users, each in the order given.
func (in Inputs) requests() []scanner.Request {
	reqs := make([]scanner.Request, 0, len(in.AppIDs)+len(in.URLs)+len(in.Users))
	for _, appID := range in.AppIDs {
		reqs = append(reqs, scanner.Request{Origin: domain.OriginDirectAppID, AppID: appID})
	}
	for _, url := range in.URLs {
		reqs = append(reqs, scanner.Request{Origin: domain.OriginStoreURL, Input: url})
	}
	for _, user := range in.Users {
		reqs = append(reqs, scanner.Request{Origin: domain.OriginUserScrape, Input: user})
	}
	return reqs
}

// Collector builds the ordered candidate list from registered resolvers.
// Duplicates are kept.
type Collector struct {
	registry *scanner.Registry
	logger   *slog.Logger
}

// NewCollector wires the resolver registry.
func NewCollector(reg *scanner.Registry, log *slog.Logger) *Collector {
	return &Collector{registry: reg, logger: log}
}

// Collect resolves every input into candidates.
func (c *Collector) Collect(ctx context.Context, in Inputs) ([]domain.FeedCandidate, error) {
	if c.registry == nil {
		return nil, fmt.Errorf("resolver registry is not configured")
	}

	var candidates []domain.FeedCandidate
	for _, req := range in.requests() {
		resolver, err := c.registry.Resolve(req.Origin)
		if err != nil {
			return nil, err
		}

		resolved, err := resolver.Resolve(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("resolve %s %q: %w", req.Origin, req.Input, err)
		}
		if len(resolved) == 0 {
			c.debug("input produced no candidates", "origin", req.Origin, "input", req.Input)
			continue
		}

		candidates = append(candidates, resolved...)
	}

	c.debug("collected candidates", "count", len(candidates))
	return candidates, nil
}

func (c *Collector) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
