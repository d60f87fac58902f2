package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"meetingflow/internal/meeting"
)

// Run transcribes an audio file through whisper.cpp and returns the parsed
// segments, sorted by start time.
func (t *implTranscriber) Run(ctx context.Context, audioPath string) ([]meeting.Segment, error) {
	t.checkOnce.Do(func() {
		if _, err := os.Stat(t.cfg.ModelPath); err != nil {
			t.checkErr = fmt.Errorf("whisper model not found: %s", t.cfg.ModelPath)
		}
	})
	if t.checkErr != nil {
		return nil, t.checkErr
	}

	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout())
	defer cancel()

	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Info(ctx, "Transcribing with %d threads: %s", t.cfg.Threads, audioPath)

	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", audioPath,
		"-osrt",
		"-l", t.cfg.Language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	srtPath := outputPrefix + ".srt"
	data, err := os.ReadFile(srtPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}
	defer os.Remove(srtPath)

	segments, err := ParseSRT(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	t.logger.Info(ctx, "Transcription completed: %d segments", len(segments))
	return segments, nil
}
