package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventKeyChanged indicates the blob stored under Key was written,
	// replaced or removed.
	EventKeyChanged EventType = iota

	// EventInvalidated signals a change that could not be tied to a single
	// key. Callers should reload everything they hold.
	EventInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventKeyChanged:
		return "changed"
	case EventInvalidated:
		return "invalidated"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is emitted by Persistence.Watch when underlying storage changes.
// Key is "/"-joined for nested keys.
type Event struct {
	Type EventType
	Key  string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
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
				p.logger.Warn("closing watcher", "err", err)
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

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Dropped. The next event for the key triggers a full read
				// anyway.
			}
		}

		batch := newCoalescer(100*time.Millisecond, send)
		defer batch.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.logger.Debug("watcher error", "err", err)
				batch.Add(Event{Type: EventInvalidated})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found && !p.isTemp(absDir) {
							if err := watcher.Add(absDir); err != nil {
								p.logger.Warn("watching new directory", "dir", absDir, "err", err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						continue
					}
				}
				if evt.Op == fsnotify.Chmod {
					continue
				}

				if p.isTemp(evt.Name) {
					continue
				}
				key := p.keyForPath(evt.Name)
				p.logger.Debug("store changed", "op", evt.Op.String(), "key", key)
				if key == "" {
					batch.Add(Event{Type: EventInvalidated})
					continue
				}

				batch.Add(Event{Type: EventKeyChanged, Key: key})
			}
		}
	}()

	return events, nil
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
			if d.Name() == tempDir {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

func (p *persistence) isTemp(path string) bool {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil {
		return false
	}
	return rel == tempDir || strings.HasPrefix(rel, tempDir+string(os.PathSeparator))
}

// keyForPath maps a file under the base path back to its store key.
func (p *persistence) keyForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return strings.Join(strings.Split(rel, string(os.PathSeparator)), "/")
}

// coalescer batches events that arrive within delay of the first one and
// sends each distinct event once, in arrival order. send must not block.
type coalescer struct {
	delay time.Duration
	send  func(Event)

	mu      sync.Mutex
	timer   *time.Timer
	pending []Event
	seen    map[Event]bool
	stopped bool
}

func newCoalescer(delay time.Duration, send func(Event)) *coalescer {
	return &coalescer{delay: delay, send: send, seen: make(map[Event]bool)}
}

func (c *coalescer) Add(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || c.seen[ev] {
		return
	}
	c.seen[ev] = true
	c.pending = append(c.pending, ev)
	if c.timer == nil {
		c.timer = time.AfterFunc(c.delay, c.flush)
	}
}

// flush sends under the lock so that once Stop returns nothing else is sent.
func (c *coalescer) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	batch := c.pending
	c.pending = nil
	c.seen = make(map[Event]bool)
	c.timer = nil
	if c.stopped {
		return
	}
	for _, ev := range batch {
		c.send(ev)
	}
}

func (c *coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
