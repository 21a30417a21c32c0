package watcher

import "context"

// Watcher monitors a single file and reports changes to it.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is called with the watched path after it changes.
type EventHandler func(ctx context.Context, filePath string) error
