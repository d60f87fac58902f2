package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingflow/internal/logger"
	"meetingflow/internal/meeting"
)

func notionParticipant() meeting.Participant {
	return meeting.Participant{
		UserEmail: "a@example.com",
		Integrations: &meeting.Integrations{
			Notion: &meeting.NotionIntegration{
				AccessToken: "secret",
				WorkspaceID: "ws",
				DatabaseID:  "db-1",
			},
		},
	}
}

func newTestNotion(baseURL string) *notionDeliverer {
	n := NewNotion(5*time.Second, logger.New("error")).(*notionDeliverer)
	n.baseURL = baseURL
	return n
}

func TestNotionDeliverCreatesPage(t *testing.T) {
	var gotPage map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pages", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, notionVersion, r.Header.Get("Notion-Version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPage))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "page-1", "url": "https://notion.so/p"})
	}))
	defer srv.Close()

	n := newTestNotion(srv.URL)
	details, err := n.Deliver(context.Background(), notionParticipant(), meeting.Data{
		Summary: "short summary",
		Text:    "short transcript",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "page-1", "url": "https://notion.so/p"}, details)

	parent := gotPage["parent"].(map[string]any)
	assert.Equal(t, "db-1", parent["database_id"])

	// Heading, one summary paragraph, one transcript toggle.
	children := gotPage["children"].([]any)
	require.Len(t, children, 3)
	assert.Equal(t, "toggle", children[2].(map[string]any)["type"])
}

func TestNotionDeliverTitleUsesFirstEventDate(t *testing.T) {
	var gotPage map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPage)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "p", "url": "u"})
	}))
	defer srv.Close()

	n := newTestNotion(srv.URL)
	_, err := n.Deliver(context.Background(), notionParticipant(), meeting.Data{
		Summary: "s",
		Text:    "t",
		Events:  []meeting.Event{{Title: "Kickoff", Date: "2025-03-01"}},
	})
	require.NoError(t, err)

	raw, _ := json.Marshal(gotPage["properties"])
	assert.Contains(t, string(raw), "Meeting Summary - 2025-03-01")
}

func TestNotionDeliverBatchesLongTranscripts(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "page-1", "url": "u"})
	}))
	defer srv.Close()

	// 95 chunks of transcript: 90 in the create call, 5 in one append.
	transcript := strings.Repeat("x", notionMaxChars*95)

	n := newTestNotion(srv.URL)
	_, err := n.Deliver(context.Background(), notionParticipant(), meeting.Data{
		Summary: "s",
		Text:    transcript,
	})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "POST /pages", paths[0])
	assert.Equal(t, "PATCH /blocks/page-1/children", paths[1])
}

func TestNotionDeliverRequiresDatabase(t *testing.T) {
	p := notionParticipant()
	p.Integrations.Notion.DatabaseID = ""

	n := newTestNotion("http://unused.invalid")
	_, err := n.Deliver(context.Background(), p, meeting.Data{Summary: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database configured")
}

func TestNotionDeliverPermanentOn4xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := newTestNotion(srv.URL)
	_, err := n.Deliver(context.Background(), notionParticipant(), meeting.Data{Summary: "s", Text: "t"})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "4xx must not be retried")
}

func TestSplitChunks(t *testing.T) {
	assert.Nil(t, splitChunks("", 10))
	assert.Equal(t, []string{"abc"}, splitChunks("abc", 10))
	assert.Equal(t, []string{"abcd", "efgh", "i"}, splitChunks("abcdefghi", 4))
}

func TestSplitChunksKeepsRunesIntact(t *testing.T) {
	// Arabic transcript text: every rune is two bytes, so a byte-offset cut
	// at an even limit would land mid-rune.
	text := strings.Repeat("اجتماع الساعة الخامسة ", 200)

	chunks := splitChunks(text, notionMaxChars)
	require.Greater(t, len(chunks), 1)

	var rejoined strings.Builder
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d is not valid UTF-8", i)
		assert.LessOrEqual(t, len(chunk), notionMaxChars)
		rejoined.WriteString(chunk)
	}
	assert.Equal(t, text, rejoined.String(), "chunking must not lose or alter bytes")
}
