package distribute

import (
	"context"
	"fmt"
	"sync"

	"meetingflow/internal/integrations"
	"meetingflow/internal/meeting"
)

// Distribute dispatches independent delivery attempts for every participant
// and joins the outcomes in input order. One failed delivery never affects
// another participant or another integration of the same participant.
//
// Returns nil when participants are absent or the summary is empty; both
// mean distribution was a no-op, which callers must distinguish from an
// empty result list.
func (d *implDistributor) Distribute(ctx context.Context, data meeting.Data) []meeting.ParticipantResult {
	if len(data.Participants) == 0 {
		d.logger.Info(ctx, "No participants with integrations, skipping distribution")
		return nil
	}
	if data.Summary == "" {
		d.logger.Warn(ctx, "No summary available, skipping distribution")
		return nil
	}

	d.logger.Info(ctx, "Distributing to %d participants", len(data.Participants))

	results := make([]meeting.ParticipantResult, len(data.Participants))
	sem := newSemaphore(d.maxConcurrent)

	var wg sync.WaitGroup
	for i, participant := range data.Participants {
		if err := sem.acquire(ctx); err != nil {
			// Context gone; record the participant without attempts.
			results[i] = meeting.ParticipantResult{
				UserEmail: participant.UserEmail,
				Actions:   []meeting.Action{},
			}
			continue
		}

		wg.Add(1)
		go func(idx int, p meeting.Participant) {
			defer wg.Done()
			defer sem.release()
			results[idx] = d.deliverAll(ctx, p, data)
		}(i, participant)
	}
	wg.Wait()

	return results
}

// deliverAll runs every applicable deliverer for one participant, in the
// fixed configured order, recording one action per attempt.
func (d *implDistributor) deliverAll(ctx context.Context, p meeting.Participant, data meeting.Data) meeting.ParticipantResult {
	result := meeting.ParticipantResult{
		UserEmail: p.UserEmail,
		Actions:   []meeting.Action{},
	}

	if p.Integrations == nil {
		d.logger.Info(ctx, "No integrations found for %s", p.UserEmail)
		return result
	}

	for _, deliverer := range d.deliverers {
		if !deliverer.Applies(p) {
			continue
		}

		details, err := d.deliverOne(ctx, deliverer, p, data)
		if err != nil {
			d.logger.Error(ctx, "Error delivering %s for %s: %v", deliverer.Kind(), p.UserEmail, err)
			result.Actions = append(result.Actions, meeting.Action{
				Type:   deliverer.Kind(),
				Status: meeting.ActionError,
				Error:  err.Error(),
			})
			continue
		}

		result.Actions = append(result.Actions, meeting.Action{
			Type:    deliverer.Kind(),
			Status:  meeting.ActionSuccess,
			Details: details,
		})
	}

	return result
}

// deliverOne bounds a single attempt with the per-delivery timeout and
// converts panics from a misbehaving client into a recorded error.
func (d *implDistributor) deliverOne(ctx context.Context, deliverer integrations.Deliverer, p meeting.Participant, data meeting.Data) (details any, err error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delivery panic: %v", r)
		}
	}()

	return deliverer.Deliver(ctx, p, data)
}
