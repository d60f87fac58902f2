package summarize

import "context"

// Summarizer produces a meeting summary from transcript text, chunking
// inputs that exceed the configured size.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
