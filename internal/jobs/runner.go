package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"meetingflow/internal/meeting"
	"meetingflow/internal/pipeline"
	"meetingflow/internal/store"
)

// Submit registers the job and launches the pipeline in the background.
func (r *implRunner) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	jobID := uuid.New().String()
	meetingID := req.MeetingID
	if meetingID == "" {
		meetingID = jobID
	}

	if err := r.store.Create(ctx, jobID, meetingID); err != nil {
		return "", fmt.Errorf("register job: %w", err)
	}

	r.logger.Info(ctx, "Job %s accepted (meeting %s)", jobID, meetingID)

	r.wg.Add(1)
	go r.run(jobID, meetingID, req)

	return jobID, nil
}

// Wait blocks until all in-flight jobs have finished.
func (r *implRunner) Wait() {
	r.wg.Wait()
}

func (r *implRunner) run(jobID, meetingID string, req SubmitRequest) {
	defer r.wg.Done()

	ctx := r.baseCtx

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error(ctx, "Job %s crashed: %v", jobID, rec)
			if err := r.store.Fail(ctx, jobID, fmt.Sprintf("pipeline crashed: %v", rec)); err != nil {
				r.logger.Error(ctx, "Job %s: record failure: %v", jobID, err)
			}
		}
	}()

	initial := pipeline.State{
		MeetingID:    meetingID,
		InputPath:    req.InputPath,
		Participants: req.Participants,
	}

	final := r.orchestrator.Run(ctx, initial)

	// The terminal record always carries an event list, even when the
	// gate skipped extraction.
	events := final.Events
	if events == nil {
		events = []meeting.Event{}
	}

	result := store.Result{
		MeetingID:           meetingID,
		Summary:             final.Summary,
		Events:              events,
		Text:                final.TranscriptText,
		DistributionResults: final.DistributionResults,
		Error:               final.Error,
	}

	if err := r.store.Complete(ctx, jobID, result); err != nil {
		r.logger.Error(ctx, "Job %s: persist result: %v", jobID, err)
		if failErr := r.store.Fail(ctx, jobID, fmt.Sprintf("persist result: %v", err)); failErr != nil {
			r.logger.Error(ctx, "Job %s: record failure: %v", jobID, failErr)
		}
		return
	}

	// Artifacts are best-effort; an export failure never fails the job.
	if r.export != nil {
		data := meeting.Data{Summary: final.Summary, Events: final.Events, Text: final.TranscriptText}
		if err := r.export.Write(ctx, jobID, data); err != nil {
			r.logger.Warn(ctx, "Job %s: export artifacts: %v", jobID, err)
		}
	}

	r.logger.Info(ctx, "Job %s finished (error=%q)", jobID, final.Error)
}
