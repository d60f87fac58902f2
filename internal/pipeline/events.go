package pipeline

import (
	"context"

	"meetingflow/internal/meeting"
)

// extractEvents pulls scheduled meetings out of the transcript. The keyword
// gate already ran on the edge into this stage. Extraction failures degrade
// to an empty event list; they never abort the job.
func (o *Orchestrator) extractEvents(ctx context.Context, st State) Update {
	if st.Error != "" {
		return Update{}
	}

	found, err := o.events.Extract(ctx, st.TranscriptText)
	if err != nil {
		o.logger.Warn(ctx, "[%s] event extraction failed, recording no events: %v", st.MeetingID, err)
		return Update{Events: []meeting.Event{}, EventsSet: true}
	}

	return Update{Events: found, EventsSet: true}
}
