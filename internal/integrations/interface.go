package integrations

import (
	"context"

	"meetingflow/internal/meeting"
)

// Deliverer pushes meeting artifacts into one kind of external service
// using a participant's stored credentials.
type Deliverer interface {
	// Kind is the integration name recorded in distribution results.
	Kind() string
	// Applies reports whether the participant has this integration connected.
	Applies(p meeting.Participant) bool
	// Deliver performs one delivery attempt and returns provider-specific
	// details for the result record.
	Deliver(ctx context.Context, p meeting.Participant, data meeting.Data) (any, error)
}
