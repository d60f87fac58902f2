package pipeline

import (
	"context"

	"meetingflow/internal/meeting"
)

// distribute is the terminal stage. It runs even when an earlier stage
// failed, delivering whatever artifacts exist; the engine itself decides
// whether there is anything worth sending.
func (o *Orchestrator) distribute(ctx context.Context, st State) Update {
	data := meeting.Data{
		Summary:      st.Summary,
		Events:       st.Events,
		Text:         st.TranscriptText,
		Participants: st.Participants,
	}

	results := o.distributor.Distribute(ctx, data)
	return Update{Results: results, ResultsSet: true}
}
