package pipeline

import (
	"sort"
	"strings"

	"meetingflow/internal/meeting"
)

// State is the single record threaded through every stage of one job.
// Stages never mutate it directly; they return an Update which the
// orchestrator merges into a fresh copy.
type State struct {
	MeetingID      string
	InputPath      string
	AudioPath      string
	CleanAudioPath string
	Segments       []meeting.Segment
	TranscriptText string
	Summary        string

	// Events is nil until the extraction stage runs; an empty slice is a
	// valid "no events found" result, distinct from nil.
	Events []meeting.Event

	Participants []meeting.Participant

	// DistributionResults stays nil when distribution was a no-op.
	DistributionResults []meeting.ParticipantResult
	DistributionRan     bool

	// Error, once set, is never cleared. It aborts all remaining
	// value-producing stages; only distribution runs after it.
	Error string
}

// Update is the partial result a stage returns. Only non-zero fields are
// merged; EventsSet and ResultsSet disambiguate "set to empty" from "unset".
type Update struct {
	AudioPath      string
	CleanAudioPath string
	Segments       []meeting.Segment
	TranscriptText string
	Summary        string
	Events         []meeting.Event
	EventsSet      bool
	Results        []meeting.ParticipantResult
	ResultsSet     bool
	Error          string
}

// merge applies u to a copy of st. An already-set Error survives regardless
// of what the update carries.
func merge(st State, u Update) State {
	next := st
	if u.AudioPath != "" {
		next.AudioPath = u.AudioPath
	}
	if u.CleanAudioPath != "" {
		next.CleanAudioPath = u.CleanAudioPath
	}
	if u.Segments != nil {
		next.Segments = u.Segments
	}
	if u.TranscriptText != "" {
		next.TranscriptText = u.TranscriptText
	}
	if u.Summary != "" {
		next.Summary = u.Summary
	}
	if u.EventsSet {
		next.Events = u.Events
		if next.Events == nil {
			next.Events = []meeting.Event{}
		}
	}
	if u.ResultsSet {
		next.DistributionResults = u.Results
		next.DistributionRan = true
	}
	if next.Error == "" && u.Error != "" {
		next.Error = u.Error
	}
	return next
}

// JoinSegments sorts segments by start time and joins their texts with
// single spaces. The transcriber contract promises sorted input, but the
// executor restores order rather than trusting it.
func JoinSegments(segments []meeting.Segment) string {
	sorted := make([]meeting.Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	parts := make([]string, 0, len(sorted))
	for _, seg := range sorted {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
