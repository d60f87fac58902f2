package export

import (
	"meetingflow/internal/logger"
)

type implWriter struct {
	outputDir string
	logger    logger.Logger
}

// New creates a Writer that drops docx artifacts into outputDir.
func New(outputDir string, log logger.Logger) Writer {
	return &implWriter{outputDir: outputDir, logger: log}
}
