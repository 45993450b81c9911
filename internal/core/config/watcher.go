package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	watcher     *fsnotify.Watcher
	path        string
	debounceDur time.Duration
}

// NewWatcher watches the directory holding path. The directory is watched
// rather than the file so editors that replace the file are still seen.
func NewWatcher(path string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		watcher:     watcher,
		path:        abs,
		debounceDur: 100 * time.Millisecond,
	}, nil
}

// Path returns the watched config file.
func (w *Watcher) Path() string {
	return w.path
}

// Next blocks until the config file changes and returns the reloaded
// config, or the load error when the new contents are invalid. It returns
// ctx.Err() when ctx is done and nil, nil once the watcher is closed.
func (w *Watcher) Next(ctx context.Context) (*Config, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil, nil
			}
			if !w.relevant(event) {
				continue
			}

			// Debounce: wait for changes to settle
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(w.debounceDur):
			}
			w.drain()

			return Load(w.path)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return nil, nil
			}
			// Ignore errors, continue watching
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// drain discards events that arrived during the debounce window.
func (w *Watcher) drain() {
	for {
		select {
		case <-w.watcher.Events:
		default:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
