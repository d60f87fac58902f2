package watcher

import "context"

// Watcher monitors the drop folder for recordings copied in by hand or by
// out-of-band tooling.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler receives the path of each new recording.
type Handler func(ctx context.Context, path string) error
