package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"meetingflow/internal/logger"
)

// New creates a Watcher over inputDir that hands new recordings to handler.
func New(inputDir string, handler Handler, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(inputDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir: inputDir,
		handler:  handler,
		logger:   log,
		watcher:  fsw,
		// Settle delay so a file still being copied is complete before the
		// pipeline opens it.
		settleDelay: 500 * time.Millisecond,
	}, nil
}
