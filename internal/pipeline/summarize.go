package pipeline

import "context"

// SummaryUnavailable is recorded when every summarization provider failed.
// The job still completes and distribution is skipped by its empty-summary
// check downstream only when the summary is truly empty, so the sentinel
// keeps the failure visible to the caller.
const SummaryUnavailable = "Summary unavailable: all generation providers failed."

// summarizeTranscript produces the meeting summary. All-provider failure
// yields the sentinel string instead of aborting the job.
func (o *Orchestrator) summarizeTranscript(ctx context.Context, st State) Update {
	if st.Error != "" {
		return Update{}
	}
	if st.TranscriptText == "" {
		return Update{Summary: "No text to summarize."}
	}

	summary, err := o.summarizer.Summarize(ctx, st.TranscriptText)
	if err != nil {
		o.logger.Error(ctx, "[%s] summarization failed: %v", st.MeetingID, err)
		return Update{Summary: SummaryUnavailable}
	}

	return Update{Summary: summary}
}
