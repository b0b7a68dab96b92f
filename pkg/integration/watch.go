package integration

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchFile emits once per burst of changes to path. Every event restarts the debounce timer, so a burst
// ends only after debounce passes with no new events.
// The parent directory is watched so that editors replacing the file via rename are still noticed.
// The returned channel is closed when ctx is done or the watcher fails.
func WatchFile(ctx context.Context, path string, debounce time.Duration) (<-chan struct{}, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s; %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher; %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s; %w", filepath.Dir(path), err)
	}

	changes := make(chan struct{}, 1)
	go watchLoop(ctx, watcher, path, debounce, changes)
	return changes, nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, debounce time.Duration, changes chan<- struct{}) {
	defer close(changes)
	defer watcher.Close()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	var wait <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.DebugContext(ctx, "watched file changed", "path", path, "op", event.Op.String())
			timer.Reset(debounce)
			wait = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.ErrorContext(ctx, "fs watcher failed", "path", path, "err", err)
		case <-wait:
			wait = nil
			select {
			case changes <- struct{}{}:
			default:
				// a change is already pending for the consumer
			}
		}
	}
}
