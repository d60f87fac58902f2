package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Run extracts the audio track into a 16kHz mono WAV next to the input.
// This format is what Whisper expects.
func (m *implExtractor) Run(ctx context.Context, inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("input file not found: %s", inputPath)
	}

	audioPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".wav"

	m.logger.Info(ctx, "Extracting audio: %s", inputPath)

	// -vn: drop video
	// -ar 16000 -ac 1: 16kHz mono, what Whisper expects
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := m.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	m.logger.Info(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}
