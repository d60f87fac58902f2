package executor

import "context"

// Executor runs external commands on the host. The media and transcribe
// packages use it for ffmpeg and whisper.cpp respectively; tests substitute
// a fake to avoid needing the binaries.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
