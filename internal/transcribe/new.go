package transcribe

import (
	"sync"

	"meetingflow/internal/config"
	"meetingflow/internal/logger"
	"meetingflow/pkg/executor"
)

type implTranscriber struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger

	checkOnce sync.Once
	checkErr  error
}

// New creates a Transcriber that drives the whisper.cpp CLI. The model file
// is verified once on first use, safe under concurrent jobs.
func New(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
