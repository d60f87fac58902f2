package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"meetingflow/internal/logger"
)

// recordings dropped into the folder can be raw meeting video or already
// extracted audio.
var supportedFormats = []string{
	".mp4", ".mov", ".mkv", ".webm", ".m4v",
	".wav", ".mp3", ".m4a", ".ogg", ".flac",
}

type implWatcher struct {
	inputDir    string
	handler     Handler
	logger      logger.Logger
	watcher     *fsnotify.Watcher
	settleDelay time.Duration
}

// Start begins monitoring the drop folder for new recordings. Concurrency
// is the job runner's concern; the watcher only submits.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watch folder started: %s", w.inputDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Watch folder stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isRecording(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-recording file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New recording detected: %s", event.Name)

			// Off the event loop so a burst of dropped files is not
			// serialized behind the settle delay.
			go w.submit(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// submit waits for the file to finish copying, then hands it to the handler.
func (w *implWatcher) submit(ctx context.Context, path string) {
	select {
	case <-time.After(w.settleDelay):
	case <-ctx.Done():
		return
	}

	if err := w.handler(ctx, path); err != nil {
		w.logger.Error(ctx, "Failed to submit %s: %v", path, err)
	}
}

// Stop closes the underlying file watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isRecording(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}
