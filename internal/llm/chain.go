package llm

import (
	"context"
	"errors"
	"fmt"

	"meetingflow/internal/logger"
)

// ErrNoProvider is returned when every provider in a chain has failed.
var ErrNoProvider = errors.New("no generation provider available")

// Chain tries an ordered list of providers until one succeeds. It encodes
// the substitution policy only; retry/backoff belongs to the providers
// themselves.
type Chain struct {
	providers []Generator
	logger    logger.Logger
}

// NewChain creates a fallback chain over the given providers, tried in order.
func NewChain(log logger.Logger, providers ...Generator) *Chain {
	return &Chain{providers: providers, logger: log}
}

// Generate returns the first successful provider result. Every failure is
// logged with the provider identity; if all providers fail the error wraps
// ErrNoProvider together with the last cause.
func (c *Chain) Generate(ctx context.Context, prompt string) (string, error) {
	if len(c.providers) == 0 {
		return "", ErrNoProvider
	}

	var lastErr error
	for _, p := range c.providers {
		out, err := p.Generate(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
		c.logger.Warn(ctx, "provider %s failed: %v", p.Name(), err)
	}

	return "", fmt.Errorf("%w: %v", ErrNoProvider, lastErr)
}

// Providers exposes the configured order, mostly for logging.
func (c *Chain) Providers() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}
