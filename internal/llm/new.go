package llm

import (
	"fmt"

	"meetingflow/internal/config"
	"meetingflow/internal/logger"
)

// Registry holds the providers built from configuration and hands out
// fallback chains assembled from configured name lists. Provider selection
// is explicit: nothing here reads the environment at call time.
type Registry struct {
	providers map[string]Generator
	logger    logger.Logger
}

// NewRegistry builds every configured provider once. Providers with missing
// credentials are still registered; they fail fast on use so the chains can
// move on to the next provider.
func NewRegistry(cfg config.LLMConfig, log logger.Logger) *Registry {
	timeout := cfg.Timeout()

	return &Registry{
		providers: map[string]Generator{
			"openai": NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, timeout),
			"ollama": NewOllama(cfg.Ollama.BaseURL, cfg.Ollama.Model, timeout),
			"google": NewGoogle(cfg.Google.APIKeys, cfg.Google.Model, timeout),
		},
		logger: log,
	}
}

// Provider returns the named provider.
func (r *Registry) Provider(name string) (Generator, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider: %s", name)
	}
	return p, nil
}

// Chain assembles a fallback chain from the given provider names, in order.
// Unknown names are an error rather than being skipped silently.
func (r *Registry) Chain(names []string) (*Chain, error) {
	providers := make([]Generator, 0, len(names))
	for _, name := range names {
		p, err := r.Provider(name)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return NewChain(r.logger, providers...), nil
}
