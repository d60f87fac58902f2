package jobs

import (
	"context"

	"meetingflow/internal/meeting"
)

// SubmitRequest describes one recording to process. MeetingID is optional;
// the job id doubles as the correlation id when it is absent.
type SubmitRequest struct {
	InputPath    string
	MeetingID    string
	Participants []meeting.Participant
}

// Runner accepts jobs, runs them asynchronously through the pipeline and
// persists their terminal state.
type Runner interface {
	// Submit registers the job and starts it in the background. An error
	// here is an intake-level infrastructure fault: the job never started.
	Submit(ctx context.Context, req SubmitRequest) (string, error)
	// Wait blocks until all in-flight jobs have finished.
	Wait()
}
