package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"meetingflow/internal/llm"
	"meetingflow/internal/logger"
	"meetingflow/internal/meeting"
)

const extractPrompt = "Analyze the following text and extract any scheduled meetings or events. " +
	"Return the result as a strictly valid JSON object with a key 'events' which is a list. " +
	"Each event object should have: 'title', 'date' (YYYY-MM-DD), 'time', 'attendees' (list), and 'description'. " +
	"If no date/time is mentioned, use null. " +
	"Output ONLY JSON.\n\n" +
	"Text:\n%s"

// Extractor pulls structured events out of transcript text with an LLM.
type Extractor struct {
	chain  *llm.Chain
	logger logger.Logger
}

// NewExtractor creates an Extractor over the given provider fallback chain.
func NewExtractor(chain *llm.Chain, log logger.Logger) *Extractor {
	return &Extractor{chain: chain, logger: log}
}

// Extract returns the events mentioned in the text. The heuristic gate is
// re-checked here so the extractor stays safe to call directly; malformed
// model output degrades to "no events found" rather than an error.
func (e *Extractor) Extract(ctx context.Context, text string) ([]meeting.Event, error) {
	if !ShouldExtract(text) {
		return []meeting.Event{}, nil
	}

	response, err := e.chain.Generate(ctx, fmt.Sprintf(extractPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("event extraction: %w", err)
	}

	events, err := parseEvents(response)
	if err != nil {
		e.logger.Warn(ctx, "Unparseable event extraction output, treating as no events: %v", err)
		return []meeting.Event{}, nil
	}
	return events, nil
}

// parseEvents decodes the model response, stripping markdown code fences the
// model sometimes wraps the JSON in.
func parseEvents(response string) ([]meeting.Event, error) {
	clean := strings.TrimSpace(response)
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var parsed struct {
		Events []meeting.Event `json:"events"`
	}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("decode events JSON: %w", err)
	}

	if parsed.Events == nil {
		return []meeting.Event{}, nil
	}
	return parsed.Events, nil
}
