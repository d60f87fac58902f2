package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"meetingflow/internal/meeting"
)

func TestMergeErrorIsSticky(t *testing.T) {
	st := State{Error: "Transcription Failed: no audio"}

	st = merge(st, Update{Error: "later failure"})
	assert.Equal(t, "Transcription Failed: no audio", st.Error)

	st = merge(st, Update{Summary: "still merged"})
	assert.Equal(t, "still merged", st.Summary)
	assert.Equal(t, "Transcription Failed: no audio", st.Error)
}

func TestMergeLeavesOriginalUntouched(t *testing.T) {
	st := State{TranscriptText: "original"}

	next := merge(st, Update{TranscriptText: "refined", Summary: "sum"})
	assert.Equal(t, "original", st.TranscriptText)
	assert.Equal(t, "refined", next.TranscriptText)
	assert.Equal(t, "sum", next.Summary)
}

func TestMergeZeroFieldsDoNotClear(t *testing.T) {
	st := State{
		AudioPath:      "a.wav",
		TranscriptText: "text",
		Summary:        "sum",
	}

	next := merge(st, Update{})
	assert.Equal(t, st, next)
}

func TestMergeEventsSetDistinguishesEmpty(t *testing.T) {
	st := State{}
	assert.Nil(t, st.Events)

	next := merge(st, Update{EventsSet: true})
	assert.NotNil(t, next.Events)
	assert.Empty(t, next.Events)
}

func TestMergeResultsSetMarksDistributionRan(t *testing.T) {
	st := merge(State{}, Update{ResultsSet: true})
	assert.True(t, st.DistributionRan)
	assert.Nil(t, st.DistributionResults)

	st = merge(State{}, Update{
		Results:    []meeting.ParticipantResult{{UserEmail: "a@example.com"}},
		ResultsSet: true,
	})
	assert.Len(t, st.DistributionResults, 1)
}

func TestJoinSegments(t *testing.T) {
	segments := []meeting.Segment{
		{Start: 5.0, End: 6.0, Text: " world "},
		{Start: 1.0, End: 2.0, Text: "hello"},
		{Start: 3.0, End: 4.0, Text: ""},
	}

	assert.Equal(t, "hello world", JoinSegments(segments))
	assert.Equal(t, "", JoinSegments(nil))
}

func TestNextConditionalEdge(t *testing.T) {
	tests := []struct {
		name string
		st   State
		want StageName
	}{
		{
			name: "keyword transcript goes to extraction",
			st:   State{TranscriptText: "let's schedule a follow-up"},
			want: StageExtractEvents,
		},
		{
			name: "no keywords skips extraction",
			st:   State{TranscriptText: "revenue was flat this quarter"},
			want: StageDistribute,
		},
		{
			name: "error skips extraction even with keywords",
			st:   State{TranscriptText: "schedule a meeting", Error: "boom"},
			want: StageDistribute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, next(StageSummarize, tt.st))
		})
	}
}

func TestNextLinearEdges(t *testing.T) {
	assert.Equal(t, StageCleanAudio, next(StageExtractAudio, State{}))
	assert.Equal(t, StageTranscribe, next(StageCleanAudio, State{}))
	assert.Equal(t, StageRefine, next(StageTranscribe, State{}))
	assert.Equal(t, StageSummarize, next(StageRefine, State{}))
	assert.Equal(t, StageDistribute, next(StageExtractEvents, State{}))
	assert.Equal(t, StageEnd, next(StageDistribute, State{}))
}
