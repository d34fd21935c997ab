package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"steamfeeds/internal/domain"
	"steamfeeds/internal/ports"
)

// PipelineDeps wires the stages of the discovery workflow.
type PipelineDeps struct {
	Collector *Collector
	Verifier  *Verifier
	Emitter   ports.Emitter
	Logger    *slog.Logger
}

// Pipeline runs collection, optional verification and output in order.
type Pipeline struct {
	collector *Collector
	verifier  *Verifier
	emitter   ports.Emitter
	logger    *slog.Logger
}

// Request selects the inputs and whether candidates are fetched.
type Request struct {
	Inputs Inputs
	Verify bool
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		collector: deps.Collector,
		verifier:  deps.Verifier,
		emitter:   deps.Emitter,
		logger:    deps.Logger,
	}
}

// Run executes one discovery pass and hands the result to the emitter.
func (p *Pipeline) Run(ctx context.Context, req Request) error {
	feeds, err := p.Discover(ctx, req)
	if err != nil {
		return err
	}

	if p.emitter == nil {
		return nil
	}
	if err := p.emitter.Emit(feeds); err != nil {
		return fmt.Errorf("emit feeds: %w", err)
	}
	return nil
}

// Discover returns the feeds that would be emitted.
func (p *Pipeline) Discover(ctx context.Context, req Request) ([]domain.FeedCandidate, error) {
	if p.collector == nil {
		return nil, fmt.Errorf("collector is not configured")
	}

	candidates, err := p.collector.Collect(ctx, req.Inputs)
	if err != nil {
		return nil, fmt.Errorf("collect candidates: %w", err)
	}

	if !req.Verify || len(candidates) == 0 {
		return candidates, nil
	}
	if p.verifier == nil {
		return nil, fmt.Errorf("verifier is not configured")
	}

	verified, err := p.verifier.VerifyAll(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("verify candidates: %w", err)
	}

	if p.logger != nil {
		p.logger.Debug("verification done", "candidates", len(candidates), "confirmed", len(verified))
	}
	return verified, nil
}
