package llm

import "context"

// Generator defines the interface for text generation providers.
// Implementations must be safe for concurrent use across jobs.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
