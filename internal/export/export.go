package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"meetingflow/internal/meeting"
)

// Write produces a summary docx and a transcript docx for the job. Either
// document is skipped when its source text is empty.
func (w *implWriter) Write(ctx context.Context, jobID string, data meeting.Data) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	title := fmt.Sprintf("Meeting %s - %s", jobID, time.Now().Format("2006-01-02 15:04"))

	if data.Summary != "" {
		path := filepath.Join(w.outputDir, jobID+"_summary.docx")
		if err := markdownToDocx(title, data.Summary, path); err != nil {
			return fmt.Errorf("write summary docx: %w", err)
		}
		w.logger.Info(ctx, "Summary exported: %s", path)
	}

	if data.Text != "" {
		path := filepath.Join(w.outputDir, jobID+"_transcript.docx")
		if err := transcriptToDocx(title, data.Text, path); err != nil {
			return fmt.Errorf("write transcript docx: %w", err)
		}
		w.logger.Info(ctx, "Transcript exported: %s", path)
	}

	return nil
}
