package distribute

import (
	"context"

	"meetingflow/internal/meeting"
)

// Distributor fans the final meeting artifacts out to every participant's
// connected services. Returns nil (not an empty list) when there is nothing
// to distribute.
type Distributor interface {
	Distribute(ctx context.Context, data meeting.Data) []meeting.ParticipantResult
}
