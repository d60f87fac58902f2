package transcribe

import (
	"context"

	"meetingflow/internal/meeting"
)

// Transcriber converts an audio file into ordered, timed text segments.
type Transcriber interface {
	Run(ctx context.Context, audioPath string) ([]meeting.Segment, error)
}
