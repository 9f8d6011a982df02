package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/logging"
	"tableflip.dev/tick/pkg/store"
	"tableflip.dev/tick/pkg/task"
)

// Store keys.
const (
	ActiveKey   = "current_active_todo.md"
	HistoryKey  = "history_index.json"
	RoutinesKey = "routines.json"
	MarkerKey   = "last_processed_date"
)

var (
	ErrNoStore      = errors.New("app: no store configured")
	ErrNoWatch      = errors.New("app: store cannot watch for changes")
	ErrTaskNotFound = errors.New("app: task not found")
)

// Session owns the active document and keeps it in step with the store.
// Every operation holds the session lock until its writes complete, and the
// in-memory document is only replaced once the store accepted the new text.
type Session struct {
	Store           store.FileStore
	Logger          *log.Logger
	RoutinesHeading string

	mu     sync.Mutex
	doc    document.Document
	loaded bool
}

func (s *Session) logger() *log.Logger {
	if s.Logger == nil {
		s.Logger = logging.Discard()
	}
	return s.Logger
}

func (s *Session) routinesHeading() string {
	if s.RoutinesHeading == "" {
		return store.DefaultRoutinesHeading
	}
	return s.RoutinesHeading
}

// Load reads the active document. A missing document is empty.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Session) load(ctx context.Context) error {
	if s.Store == nil {
		return ErrNoStore
	}
	text, ok, err := s.Store.Read(ctx, ActiveKey)
	if err != nil {
		return fmt.Errorf("app: load: %w", err)
	}
	s.doc = document.New(text)
	s.loaded = true
	s.logger().Debug("loaded document", "key", ActiveKey, "found", ok, "tasks", len(s.doc.Tasks()))
	return nil
}

func (s *Session) ensure(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.load(ctx)
}

// Document returns the current document.
func (s *Session) Document(ctx context.Context) (document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return document.Document{}, err
	}
	return s.doc, nil
}

// Text returns the current document text.
func (s *Session) Text(ctx context.Context) (string, error) {
	d, err := s.Document(ctx)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// Tasks returns the parsed tasks of the current document.
func (s *Session) Tasks(ctx context.Context) ([]task.Task, error) {
	d, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return d.Tasks(), nil
}

// Find looks up a task in the current document.
func (s *Session) Find(ctx context.Context, id string) (task.Task, error) {
	d, err := s.Document(ctx)
	if err != nil {
		return task.Task{}, err
	}
	t, ok := d.Find(id)
	if !ok {
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return t, nil
}

// Apply runs m against the current document and writes the result through.
// It reports whether the document changed.
func (s *Session) Apply(ctx context.Context, m document.Mutation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return false, err
	}
	next, changed, err := s.doc.Apply(m)
	if err != nil {
		return false, fmt.Errorf("app: %s: %w", m.Name(), err)
	}
	if !changed {
		s.logger().Debug("mutation is a no-op", "mutation", m.Name())
		return false, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return false, fmt.Errorf("app: %s: %w", m.Name(), err)
	}
	return true, nil
}

// ApplyAdded runs m like Apply and returns the tasks whose ids were not in
// the document before.
func (s *Session) ApplyAdded(ctx context.Context, m document.Mutation) ([]task.Task, error) {
	before, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(before))
	for _, t := range before {
		seen[t.ID] = true
	}
	if _, err := s.Apply(ctx, m); err != nil {
		return nil, err
	}
	after, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	var added []task.Task
	for _, t := range after {
		if !seen[t.ID] {
			added = append(added, t)
		}
	}
	return added, nil
}

// Replace stores text as the whole active document.
func (s *Session) Replace(ctx context.Context, text string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return false, err
	}
	next := document.New(text)
	if next.String() == s.doc.String() {
		return false, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return false, fmt.Errorf("app: replace: %w", err)
	}
	return true, nil
}

// commit writes next and adopts it. Callers hold s.mu.
func (s *Session) commit(ctx context.Context, next document.Document) error {
	if err := s.Store.Write(ctx, ActiveKey, next.String()); err != nil {
		s.logger().Error("write failed", "key", ActiveKey, "err", err)
		return err
	}
	s.doc = next
	s.loaded = true
	s.logger().Debug("wrote document", "key", ActiveKey, "tasks", len(next.Tasks()))
	return nil
}

// Reload re-reads the active document after an outside edit and reports
// whether it differs from what the session held.
func (s *Session) Reload(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Store == nil {
		return false, ErrNoStore
	}
	text, _, err := s.Store.Read(ctx, ActiveKey)
	if err != nil {
		return false, fmt.Errorf("app: reload: %w", err)
	}
	next := document.New(text)
	changed := !s.loaded || next.String() != s.doc.String()
	s.doc = next
	s.loaded = true
	return changed, nil
}

// Watch reloads the document whenever the store reports a change to it and
// delivers each new version. The channel closes when ctx is done.
func (s *Session) Watch(ctx context.Context) (<-chan document.Document, error) {
	p, ok := s.Store.(store.Persistence)
	if !ok {
		return nil, ErrNoWatch
	}
	events, err := p.Watch(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: watch: %w", err)
	}

	out := make(chan document.Document)
	go func() {
		defer close(out)
		for ev := range events {
			if ev.Type == store.EventKeyChanged && ev.Key != ActiveKey {
				continue
			}
			changed, err := s.Reload(ctx)
			if err != nil {
				s.logger().Warn("reload failed", "event", ev.Type, "err", err)
				continue
			}
			if !changed {
				continue
			}
			d, err := s.Document(ctx)
			if err != nil {
				continue
			}
			select {
			case out <- d:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
