package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/photobook/pkg/photo"
)

// Snapshot is one full, ordered result of the live query. Exactly one of
// Records or Err is meaningful.
type Snapshot struct {
	Records []photo.Record
	Err     error
}

// LiveQuery streams full snapshots of the photo collection, newest first,
// until ctx is cancelled. The first snapshot is sent right away; later ones
// follow each burst of filesystem changes. A slow consumer only ever sees the
// newest pending snapshot. The channel is closed once ctx is done or the
// watcher stops.
func (p *persistence) LiveQuery(ctx context.Context) (<-chan Snapshot, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(filepath.Join(p.basePath, Collection), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				p.log.Warn("watcher close", "error", err)
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	snapshots := make(chan Snapshot, 1)

	go func() {
		defer close(snapshots)
		defer closeWatcher()

		// Track directories we already watch so we can add new ones at runtime
		// without duplicating watches.
		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		deliver := func() bool {
			records, err := p.List(ctx)
			if ctx.Err() != nil {
				return false
			}
			snap := Snapshot{Records: records}
			if err != nil {
				snap = Snapshot{Err: err}
			}
			// Replace an undelivered snapshot; it is stale now.
			select {
			case <-snapshots:
			default:
			}
			select {
			case snapshots <- snap:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !deliver() {
			return
		}

		throttle := newEventThrottle(p.throttle)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-throttle.C():
				throttle.Reset()
				if !deliver() {
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Surface watcher errors as a full refresh to keep clients in
				// sync even if we cannot classify the change precisely.
				p.log.Warn("watcher error", "error", err)
				throttle.Enqueue()
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					// If a new directory appears, start watching it to capture
					// subsequent file writes.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								p.log.Warn("watch directory", "dir", absDir, "error", err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
					}
				}
				throttle.Enqueue()
			}
		}
	}()

	return snapshots, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// eventThrottle coalesces rapid change notifications so one snapshot is read
// per burst of filesystem activity instead of on every single write. It is
// owned by the watch goroutine.
type eventThrottle struct {
	delay time.Duration
	timer *time.Timer
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay}
}

// Enqueue arms the timer unless a flush is already pending.
func (t *eventThrottle) Enqueue() {
	if t.timer == nil {
		t.timer = time.NewTimer(t.delay)
	}
}

// C fires once the pending burst should be flushed. It is nil, and so never
// ready, while nothing is pending.
func (t *eventThrottle) C() <-chan time.Time {
	if t.timer == nil {
		return nil
	}
	return t.timer.C
}

// Reset marks the pending burst as flushed.
func (t *eventThrottle) Reset() {
	t.timer = nil
}

func (t *eventThrottle) Stop() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
