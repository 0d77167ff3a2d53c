package linkedin

import (
	"context"
	"fmt"
)

// Factory builds an authenticated API handle.
type Factory func(ctx context.Context) (API, error)

// Provider hands out the API handle a request should use.
type Provider interface {
	Acquire(ctx context.Context) (API, error)
}

// NewClientFactory returns a Factory that logs in with cfg every time it runs.
// All clients it builds share one circuit breaker.
func NewClientFactory(cfg Config) Factory {
	if cfg.Breaker == nil {
		cfg.Breaker = newBreaker(cfg.BreakerMaxFailures, cfg.BreakerTimeout)
	}
	return func(ctx context.Context) (API, error) {
		return New(ctx, cfg)
	}
}

type perRequestProvider struct {
	factory Factory
}

// NewPerRequestProvider authenticates a fresh client for every Acquire.
func NewPerRequestProvider(factory Factory) Provider {
	return &perRequestProvider{factory: factory}
}

func (p *perRequestProvider) Acquire(ctx context.Context) (API, error) {
	return p.factory(ctx)
}

type sharedProvider struct {
	api API
	err error
}

// NewSharedProvider authenticates once, now. A failed login is remembered and
// every Acquire returns ErrClientUnavailable.
func NewSharedProvider(ctx context.Context, factory Factory) Provider {
	api, err := factory(ctx)
	if err != nil {
		return &sharedProvider{err: fmt.Errorf("%w: %v", ErrClientUnavailable, err)}
	}
	return &sharedProvider{api: api}
}

// NewStaticProvider always returns api.
func NewStaticProvider(api API) Provider {
	return &sharedProvider{api: api}
}

func (p *sharedProvider) Acquire(context.Context) (API, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.api, nil
}
