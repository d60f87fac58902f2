package transcribe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingflow/internal/config"
	"meetingflow/internal/logger"
)

type srtWritingExecutor struct {
	srt     string
	err     error
	gotName string
	gotArgs []string
}

// Execute mimics whisper.cpp: it writes the SRT next to the audio file.
func (f *srtWritingExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.gotName = name
	f.gotArgs = args
	if f.err != nil {
		return "", f.err
	}

	var prefix string
	for i, arg := range args {
		if arg == "--output-file" && i+1 < len(args) {
			prefix = args[i+1]
		}
	}
	if err := os.WriteFile(prefix+".srt", []byte(f.srt), 0644); err != nil {
		return "", err
	}
	return "", nil
}

func testWhisperConfig(t *testing.T) config.WhisperConfig {
	t.Helper()
	modelPath := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, os.WriteFile(modelPath, []byte("weights"), 0644))
	return config.WhisperConfig{
		ModelPath:      modelPath,
		BinaryPath:     "whisper-cli",
		Language:       "auto",
		Threads:        2,
		TimeoutSeconds: 60,
	}
}

func TestRunTranscribes(t *testing.T) {
	exec := &srtWritingExecutor{
		srt: "1\n00:00:00,000 --> 00:00:02,000\nhello there\n",
	}
	tr := New(testWhisperConfig(t), exec, logger.New("error"))

	audioPath := filepath.Join(t.TempDir(), "meeting.wav")
	segments, err := tr.Run(context.Background(), audioPath)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "hello there", segments[0].Text)

	assert.Equal(t, "whisper-cli", exec.gotName)
	assert.Contains(t, exec.gotArgs, "-osrt")
	assert.Contains(t, exec.gotArgs, audioPath)

	// The intermediate SRT is cleaned up after parsing.
	_, statErr := os.Stat(audioPath[:len(audioPath)-4] + ".srt")
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMissingModel(t *testing.T) {
	cfg := testWhisperConfig(t)
	cfg.ModelPath = "/no/such/model.bin"
	tr := New(cfg, &srtWritingExecutor{}, logger.New("error"))

	_, err := tr.Run(context.Background(), "audio.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whisper model not found")

	// The model check result is cached; later calls fail the same way.
	_, err = tr.Run(context.Background(), "audio.wav")
	assert.Error(t, err)
}

func TestRunCommandFailure(t *testing.T) {
	exec := &srtWritingExecutor{err: context.DeadlineExceeded}
	tr := New(testWhisperConfig(t), exec, logger.New("error"))

	_, err := tr.Run(context.Background(), filepath.Join(t.TempDir(), "meeting.wav"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whisper transcribe")
}
