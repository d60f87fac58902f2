package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type ollamaGenerator struct {
	baseURL string
	model   string
	client  *http.Client
	timeout time.Duration
}

// NewOllama creates a Generator that talks to a self-hosted chat wrapper in
// front of an Ollama model. The wrapper expects {"message", "history"} and
// answers {"reply"}.
func NewOllama(baseURL, model string, timeout time.Duration) Generator {
	return &ollamaGenerator{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

func (g *ollamaGenerator) Name() string { return "ollama" }

func (g *ollamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.baseURL == "" {
		return "", fmt.Errorf("ollama: base url not configured")
	}

	payload := map[string]interface{}{
		"message": prompt,
		"history": []string{},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("ollama: marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/chat", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Required for ngrok free-tier tunnels fronting the model host.
	req.Header.Set("ngrok-skip-browser-warning", "true")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama generation failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: status %d: %s", resp.StatusCode, body)
	}

	var parsed struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	if parsed.Reply == "" {
		return "", fmt.Errorf("ollama: empty reply")
	}

	return parsed.Reply, nil
}
