package store

import (
	"meetingflow/internal/meeting"
)

// Status is the externally visible lifecycle of a job.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Result is the durable artifact persisted for every job that reaches a
// terminal status: exactly the terminal pipeline fields the caller cares
// about.
type Result struct {
	MeetingID           string                      `json:"meeting_id,omitempty"`
	Summary             string                      `json:"summary"`
	Events              []meeting.Event             `json:"events"`
	Text                string                      `json:"text"`
	DistributionResults []meeting.ParticipantResult `json:"distribution_results"`
	Error               string                      `json:"error,omitempty"`
}

// Job is one pipeline run tracked by the store.
type Job struct {
	ID        string  `json:"id"`
	MeetingID string  `json:"meeting_id"`
	Status    Status  `json:"status"`
	Result    *Result `json:"result,omitempty"`
	// FailReason is set only for StatusFailed (infrastructure faults).
	FailReason string `json:"fail_reason,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
