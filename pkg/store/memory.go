package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-process Persistence. Writes can be made to fail with
// FailWrites to exercise callers' error paths.
type Memory struct {
	mu       sync.Mutex
	blobs    map[string]string
	fail     map[string]error
	watchers []chan Event
}

var _ Persistence = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		blobs: make(map[string]string),
		fail:  make(map[string]error),
	}
}

// FailWrites makes every write to key return err wrapped in a *WriteError.
// A nil err clears the failure. The key "*" matches all keys.
func (m *Memory) FailWrites(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.fail, key)
		return
	}
	m.fail[key] = err
}

func (m *Memory) BasePath() string { return "memory" }

func (m *Memory) Read(ctx context.Context, key string) (string, bool, error) {
	return m.ReadNested(ctx, nil, key)
}

func (m *Memory) Write(ctx context.Context, key, text string) error {
	return m.WriteNested(ctx, nil, key, text)
}

func (m *Memory) ReadNested(ctx context.Context, path []string, key string) (string, bool, error) {
	full, err := Join(path, key)
	if err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.blobs[full]
	return text, ok, nil
}

func (m *Memory) WriteNested(ctx context.Context, path []string, key, text string) error {
	full, err := Join(path, key)
	if err != nil {
		return &WriteError{Key: full, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return &WriteError{Key: full, Err: err}
	}
	m.mu.Lock()
	if err, ok := m.fail[full]; ok {
		m.mu.Unlock()
		return &WriteError{Key: full, Err: err}
	}
	if err, ok := m.fail["*"]; ok {
		m.mu.Unlock()
		return &WriteError{Key: full, Err: err}
	}
	m.blobs[full] = text
	for _, w := range m.watchers {
		select {
		case w <- Event{Type: EventKeyChanged, Key: full}:
		default:
		}
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) List(ctx context.Context, path []string) ([]string, error) {
	for _, seg := range path {
		if err := validSegment(seg); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := ""
	if len(path) > 0 {
		prefix = strings.Join(path, "/") + "/"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for key := range m.blobs {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if strings.Contains(rest, "/") {
			continue
		}
		names = append(names, rest)
	}
	sort.Strings(names)
	return names, nil
}

// Watch reports writes made through this Memory until ctx is done.
func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 64)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}
