package scanner

import (
	"context"
	"fmt"

	"steamfeeds/internal/domain"
)

// Request carries one raw user input. AppID is set for direct AppID
// inputs, Input for the text-based classes.
type Request struct {
	Origin domain.Origin
	AppID  int
	Input  string
}

// Resolver turns one input class (AppID, store URL, user) into candidates.
// Unresolvable input yields no candidates and no error.
type Resolver interface {
	Name() domain.Origin
	Resolve(ctx context.Context, req Request) ([]domain.FeedCandidate, error)
}

// Registry maps each input class to the resolver that handles it.
type Registry struct {
	resolvers map[domain.Origin]Resolver
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register installs resolver under its origin; a later registration for
// the same origin wins.
func (r *Registry) Register(resolver Resolver) {
	if r.resolvers == nil {
		r.resolvers = make(map[domain.Origin]Resolver, 3)
	}
	r.resolvers[resolver.Name()] = resolver
}

// Resolve looks up the resolver for origin.
func (r *Registry) Resolve(origin domain.Origin) (Resolver, error) {
	resolver, ok := r.resolvers[origin]
	if !ok {
		return nil, fmt.Errorf("no resolver registered for %q inputs", origin)
	}
	return resolver, nil
}
