package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingflow/internal/llm"
	"meetingflow/internal/logger"
)

type stubGenerator struct {
	name     string
	response string
	err      error
	calls    int
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.response, s.err
}

func newTestExtractor(gen *stubGenerator) *Extractor {
	log := logger.New("error")
	return NewExtractor(llm.NewChain(log, gen), log)
}

func TestExtractSkipsWithoutKeywords(t *testing.T) {
	gen := &stubGenerator{name: "stub"}
	ex := newTestExtractor(gen)

	events, err := ex.Extract(context.Background(), "just numbers and metrics today")
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 0, gen.calls, "gate should prevent the provider call")
}

func TestExtractParsesEvents(t *testing.T) {
	gen := &stubGenerator{
		name: "stub",
		response: `{"events": [{"title": "Design review", "date": "2025-03-01",
			"time": "14:00", "attendees": ["a@example.com"], "description": "weekly"}]}`,
	}
	ex := newTestExtractor(gen)

	events, err := ex.Extract(context.Background(), "let's schedule a design review")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Design review", events[0].Title)
	assert.Equal(t, "2025-03-01", events[0].Date)
	assert.Equal(t, []string{"a@example.com"}, events[0].Attendees)
}

func TestExtractStripsCodeFences(t *testing.T) {
	gen := &stubGenerator{
		name:     "stub",
		response: "```json\n{\"events\": [{\"title\": \"Standup\"}]}\n```",
	}
	ex := newTestExtractor(gen)

	events, err := ex.Extract(context.Background(), "daily meeting sync")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Standup", events[0].Title)
}

func TestExtractMalformedOutputDegrades(t *testing.T) {
	gen := &stubGenerator{name: "stub", response: "sorry, I cannot do that"}
	ex := newTestExtractor(gen)

	events, err := ex.Extract(context.Background(), "schedule something")
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestExtractProviderFailure(t *testing.T) {
	gen := &stubGenerator{name: "stub", err: errors.New("boom")}
	ex := newTestExtractor(gen)

	_, err := ex.Extract(context.Background(), "schedule something")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrNoProvider)
}

func TestParseEventsNullList(t *testing.T) {
	events, err := parseEvents(`{"events": null}`)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}
