package watcher

import "context"

// FileWatcher monitors a directory tree for changes with debouncing.
type FileWatcher interface {
	// Start begins watching, calling callback with debounced changes. Paths are
	// slash-separated, relative to the watched root and sorted.
	Start(ctx context.Context, callback func(paths []string)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error
}
