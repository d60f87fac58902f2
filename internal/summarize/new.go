package summarize

import (
	"meetingflow/internal/llm"
	"meetingflow/internal/logger"
)

type implSummarizer struct {
	chain        *llm.Chain
	maxChunkSize int
	logger       logger.Logger
}

// New creates a Summarizer over the given provider fallback chain.
func New(chain *llm.Chain, maxChunkSize int, log logger.Logger) Summarizer {
	if maxChunkSize <= 0 {
		maxChunkSize = 15000
	}
	return &implSummarizer{
		chain:        chain,
		maxChunkSize: maxChunkSize,
		logger:       log,
	}
}
