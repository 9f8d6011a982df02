package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/routine"
)

func (s *Session) readRoutines(ctx context.Context) ([]routine.Routine, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	raw, _, err := s.Store.Read(ctx, RoutinesKey)
	if err != nil {
		return nil, err
	}
	return routine.Decode(raw)
}

func (s *Session) writeRoutines(ctx context.Context, list []routine.Routine) error {
	encoded, err := routine.Encode(list)
	if err != nil {
		return err
	}
	return s.Store.Write(ctx, RoutinesKey, encoded)
}

// Routines lists the stored routines.
func (s *Session) Routines(ctx context.Context) ([]routine.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.readRoutines(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: routines: %w", err)
	}
	return list, nil
}

// AddRoutine validates and stores r, assigning an id when it has none.
func (s *Session) AddRoutine(ctx context.Context, r routine.Routine) (routine.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addRoutine(ctx, r)
}

func (s *Session) addRoutine(ctx context.Context, r routine.Routine) (routine.Routine, error) {
	r.Text = strings.TrimSpace(r.Text)
	if r.ID == "" {
		r.ID = routine.NewID(time.Now())
	}
	if r.DeadlineRule == "" {
		r.DeadlineRule = routine.DeadlineNone
	}
	if err := r.Validate(); err != nil {
		return routine.Routine{}, fmt.Errorf("app: add routine: %w", err)
	}
	list, err := s.readRoutines(ctx)
	if err != nil {
		return routine.Routine{}, fmt.Errorf("app: add routine: %w", err)
	}
	for _, existing := range list {
		if existing.ID == r.ID {
			return routine.Routine{}, fmt.Errorf("app: add routine: id %s already exists", r.ID)
		}
	}
	if err := s.writeRoutines(ctx, append(list, r)); err != nil {
		return routine.Routine{}, fmt.Errorf("app: add routine: %w", err)
	}
	s.logger().Debug("added routine", "routine", r.ID, "type", r.Type)
	return r, nil
}

// RemoveRoutine deletes the routine with id. Lines it already generated stay
// in the document.
func (s *Session) RemoveRoutine(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.readRoutines(ctx)
	if err != nil {
		return fmt.Errorf("app: remove routine: %w", err)
	}
	kept := make([]routine.Routine, 0, len(list))
	for _, r := range list {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(list) {
		return fmt.Errorf("app: remove routine %s: %w", id, routine.ErrNotFound)
	}
	if err := s.writeRoutines(ctx, kept); err != nil {
		return fmt.Errorf("app: remove routine: %w", err)
	}
	return nil
}

// PromoteToRoutine turns an existing task into a routine. The routine takes
// the task's text and the schedule from tmpl, and the task line is tagged
// with the new routine id.
func (s *Session) PromoteToRoutine(ctx context.Context, taskID string, tmpl routine.Routine) (routine.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return routine.Routine{}, err
	}
	t, ok := s.doc.Find(taskID)
	if !ok {
		return routine.Routine{}, fmt.Errorf("app: promote %s: %w", taskID, ErrTaskNotFound)
	}
	if t.IsRoutine() {
		return routine.Routine{}, fmt.Errorf("app: promote %s: already routine %s", taskID, t.RoutineID)
	}

	tmpl.ID = ""
	tmpl.Text = t.Text
	tmpl.LastRun = ""
	r, err := s.addRoutine(ctx, tmpl)
	if err != nil {
		return routine.Routine{}, err
	}

	next, _, err := s.doc.Apply(document.MarkRoutine{ID: taskID, Type: string(r.Type), RoutineID: r.ID})
	if err != nil {
		return routine.Routine{}, fmt.Errorf("app: promote %s: %w", taskID, err)
	}
	if err := s.commit(ctx, next); err != nil {
		return routine.Routine{}, fmt.Errorf("app: promote %s: %w", taskID, err)
	}
	return r, nil
}
