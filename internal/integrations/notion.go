package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"

	"meetingflow/internal/logger"
	"meetingflow/internal/meeting"
)

const (
	notionAPIBase  = "https://api.notion.com/v1"
	notionVersion  = "2022-06-28"
	notionMaxChars = 2000
	// Notion rejects requests with more than 100 blocks; leave headroom for
	// the summary blocks that precede the transcript.
	notionMaxBlocks = 90
)

type notionDeliverer struct {
	client  *http.Client
	logger  logger.Logger
	baseURL string
	timeout time.Duration
}

// NewNotion creates a Deliverer that writes the meeting summary and the full
// transcript into the participant's Notion workspace.
func NewNotion(timeout time.Duration, log logger.Logger) Deliverer {
	return &notionDeliverer{
		client:  &http.Client{Timeout: timeout},
		logger:  log,
		baseURL: notionAPIBase,
		timeout: timeout,
	}
}

func (n *notionDeliverer) Kind() string { return "notion" }

func (n *notionDeliverer) Applies(p meeting.Participant) bool {
	return p.Integrations != nil && p.Integrations.Notion != nil
}

// Deliver creates the meeting page. The transcript is chunked into
// bounded-size paragraphs nested under a toggle block; chunks beyond the
// per-request block limit are appended in follow-up requests so no content
// is dropped.
func (n *notionDeliverer) Deliver(ctx context.Context, p meeting.Participant, data meeting.Data) (any, error) {
	creds := p.Integrations.Notion
	if creds.DatabaseID == "" {
		return nil, fmt.Errorf("notion: no database configured for workspace %s", creds.WorkspaceID)
	}

	title := "Meeting Summary"
	if len(data.Events) > 0 && data.Events[0].Date != "" {
		title += " - " + data.Events[0].Date
	}

	chunks := splitChunks(data.Text, notionMaxChars)
	first := chunks
	var rest []string
	if len(first) > notionMaxBlocks {
		first, rest = chunks[:notionMaxBlocks], chunks[notionMaxBlocks:]
	}

	page := map[string]any{
		"parent": map[string]any{"database_id": creds.DatabaseID},
		"properties": map[string]any{
			"Name": map[string]any{
				"title": []any{textPayload(title)},
			},
		},
		"children": append(summaryBlocks(data.Summary), toggleBlock("Full Transcript", first)),
	}

	var created struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := n.do(ctx, creds.AccessToken, http.MethodPost, "/pages", page, &created); err != nil {
		return nil, err
	}

	for len(rest) > 0 {
		batch := rest
		if len(batch) > notionMaxBlocks {
			batch = rest[:notionMaxBlocks]
		}
		rest = rest[len(batch):]

		appendBody := map[string]any{
			"children": []any{toggleBlock("Full Transcript (cont.)", batch)},
		}
		if err := n.do(ctx, creds.AccessToken, http.MethodPatch,
			"/blocks/"+created.ID+"/children", appendBody, nil); err != nil {
			return nil, fmt.Errorf("append transcript: %w", err)
		}
	}

	n.logger.Info(ctx, "Notion page created for %s: %s", p.UserEmail, created.URL)
	return map[string]string{"id": created.ID, "url": created.URL}, nil
}

func (n *notionDeliverer) do(ctx context.Context, token, method, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("notion: marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, method, n.baseURL+path, bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Notion-Version", notionVersion)

		resp, err := n.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("notion: server error %d: %s", resp.StatusCode, respBody)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("notion: status %d: %s", resp.StatusCode, respBody))
		}

		if out != nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				return backoff.Permanent(fmt.Errorf("notion: decode response: %w", err))
			}
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = n.timeout
	return backoff.Retry(operation, backoff.WithContext(bo, ctx))
}

func summaryBlocks(summary string) []any {
	blocks := []any{headingBlock("Summary")}
	for _, chunk := range splitChunks(summary, notionMaxChars) {
		blocks = append(blocks, paragraphBlock(chunk))
	}
	return blocks
}

func headingBlock(text string) map[string]any {
	return map[string]any{
		"object": "block",
		"type":   "heading_2",
		"heading_2": map[string]any{
			"rich_text": []any{textPayload(text)},
		},
	}
}

func paragraphBlock(text string) map[string]any {
	return map[string]any{
		"object": "block",
		"type":   "paragraph",
		"paragraph": map[string]any{
			"rich_text": []any{textPayload(text)},
		},
	}
}

func toggleBlock(title string, chunks []string) map[string]any {
	children := make([]any, 0, len(chunks))
	for _, chunk := range chunks {
		children = append(children, paragraphBlock(chunk))
	}
	return map[string]any{
		"object": "block",
		"type":   "toggle",
		"toggle": map[string]any{
			"rich_text": []any{textPayload(title)},
			"children":  children,
		},
	}
}

func textPayload(text string) map[string]any {
	return map[string]any{
		"type": "text",
		"text": map[string]any{"content": text},
	}
}

// splitChunks slices text into pieces of at most size bytes, never cutting
// through a multi-byte rune. Empty input yields no chunks.
func splitChunks(text string, size int) []string {
	var chunks []string
	for len(text) > size {
		cut := size
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			// Not valid UTF-8; a byte cut is the only way to make progress.
			cut = size
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
