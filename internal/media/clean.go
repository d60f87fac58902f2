package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Run applies a high-pass filter to remove low-frequency rumble before
// transcription. Output lands next to the input with a _clean suffix.
func (m *implCleaner) Run(ctx context.Context, inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("input file not found: %s", inputPath)
	}

	ext := filepath.Ext(inputPath)
	cleanPath := strings.TrimSuffix(inputPath, ext) + "_clean" + ext

	m.logger.Info(ctx, "Cleaning audio: %s", inputPath)

	args := []string{
		"-i", inputPath,
		"-af", "highpass=f=200",
		"-y",
		cleanPath,
	}

	if _, err := m.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg clean audio: %w", err)
	}

	m.logger.Debug(ctx, "Audio cleaned: %s", cleanPath)
	return cleanPath, nil
}
