package media

import (
	"meetingflow/internal/logger"
	"meetingflow/pkg/executor"
)

type implExtractor struct {
	executor executor.Executor
	logger   logger.Logger
}

type implCleaner struct {
	executor executor.Executor
	logger   logger.Logger
}

// NewExtractor creates a Transformer that pulls a Whisper-ready mono WAV
// track out of a recording.
func NewExtractor(exec executor.Executor, log logger.Logger) Transformer {
	return &implExtractor{executor: exec, logger: log}
}

// NewCleaner creates a Transformer that filters rumble out of an audio file.
func NewCleaner(exec executor.Executor, log logger.Logger) Transformer {
	return &implCleaner{executor: exec, logger: log}
}
