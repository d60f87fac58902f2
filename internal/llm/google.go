package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

type googleGenerator struct {
	apiKeys []string
	model   string
	timeout time.Duration

	mu         sync.Mutex
	currentKey int
}

// NewGoogle creates a Generator backed by the Gemini API. Multiple API keys
// may be supplied; the generator rotates to the next key when one is rate
// limited.
func NewGoogle(apiKeys []string, model string, timeout time.Duration) Generator {
	return &googleGenerator{
		apiKeys: apiKeys,
		model:   model,
		timeout: timeout,
	}
}

func (g *googleGenerator) Name() string { return "google" }

func (g *googleGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("google: no api keys configured")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.pickKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("google generation failed: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			if text.Len() > 0 {
				return text.String(), nil
			}
		}

		return "", fmt.Errorf("google: empty response")
	}

	return "", fmt.Errorf("google: all API keys exhausted: %w", lastErr)
}

func (g *googleGenerator) pickKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey]
}

func (g *googleGenerator) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
