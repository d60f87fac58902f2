package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingflow/internal/logger"
	"meetingflow/internal/meeting"
)

func TestWriteProducesDocs(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, logger.New("error"))

	err := w.Write(context.Background(), "job-1", meeting.Data{
		Summary: "# Decisions\n\n- ship it\n- **follow up** next week",
		Text:    "First sentence. Second sentence. Third sentence.",
	})
	require.NoError(t, err)

	for _, name := range []string{"job-1_summary.docx", "job-1_transcript.docx"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestWriteSkipsEmptySources(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, logger.New("error"))

	require.NoError(t, w.Write(context.Background(), "job-2", meeting.Data{Text: "only a transcript."}))

	_, err := os.Stat(filepath.Join(dir, "job-2_summary.docx"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "job-2_transcript.docx"))
	assert.NoError(t, err)
}

func TestSplitParagraphs(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("A sentence here. ", 6))

	paragraphs := splitParagraphs(text)
	require.Len(t, paragraphs, 2)
	assert.Equal(t, 4, strings.Count(paragraphs[0], "sentence"))
	assert.Equal(t, 2, strings.Count(paragraphs[1], "sentence"))
}

func TestSplitParagraphsEmpty(t *testing.T) {
	assert.Empty(t, splitParagraphs(""))
}

func TestCleanMarkdownInline(t *testing.T) {
	assert.Equal(t, "bold and code", cleanMarkdownInline("**bold** and `code`"))
	assert.Equal(t, "plain", cleanMarkdownInline("plain"))
}
