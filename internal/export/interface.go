package export

import (
	"context"

	"meetingflow/internal/meeting"
)

// Writer persists human-readable meeting artifacts (summary and transcript
// documents) for a finished job.
type Writer interface {
	Write(ctx context.Context, jobID string, data meeting.Data) error
}
