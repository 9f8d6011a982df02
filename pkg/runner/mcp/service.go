// Package mcp provides the Model Context Protocol server integration for tick.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/glyph"
	"tableflip.dev/tick/pkg/history"
	"tableflip.dev/tick/pkg/line"
	"tableflip.dev/tick/pkg/task"
)

// Service adapts the session to the shapes the MCP tools and resources
// return. Mutations addressed to an unknown id are reported as errors here,
// unlike the silent no-ops of the session, so agents learn their id is stale.
type Service struct {
	Session *app.Session
	Now     func() time.Time
}

// ErrTaskNotFound is returned when a task id is not in the active document.
var ErrTaskNotFound = errors.New("task not found")

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Done        bool   `json:"done"`
	Indent      int    `json:"indent"`
	Section     string `json:"section,omitempty"`
	Estimate    string `json:"estimate,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	DeadlineISO string `json:"deadlineDate,omitempty"`
	Due         string `json:"due,omitempty"`
	Difficulty  int    `json:"difficulty"`
	RoutineType string `json:"routineType,omitempty"`
	RoutineID   string `json:"routineId,omitempty"`
	Line        int    `json:"line"`
	Symbol      string `json:"symbol"`
	Raw         string `json:"raw"`
}

// NewService builds a service around the provided session.
func NewService(s *app.Session) *Service {
	return &Service{Session: s, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) toDTO(t task.Task) TaskDTO {
	today := s.now()
	dto := TaskDTO{
		ID:          t.ID,
		Text:        t.Text,
		Done:        t.IsDone(),
		Indent:      t.Indent,
		Section:     t.Section,
		Estimate:    t.Estimate,
		Deadline:    t.Deadline.String(),
		Difficulty:  t.Difficulty,
		RoutineType: t.RoutineType,
		RoutineID:   t.RoutineID,
		Line:        t.LineNumber,
		Symbol:      glyph.For(t, today).String(),
		Raw:         t.OriginalRaw,
	}
	if !t.Deadline.IsZero() {
		dto.DeadlineISO = t.Deadline.Resolve(today).Format("2006-01-02")
		switch t.Deadline.Due(today) {
		case task.Overdue:
			dto.Due = "overdue"
		case task.DueToday:
			dto.Due = "today"
		case task.Upcoming:
			dto.Due = "upcoming"
		}
	}
	return dto
}

func (s *Service) toDTOs(tasks []task.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, s.toDTO(t))
	}
	return out
}

// ListTasks returns tasks, optionally limited to a section and a status
// ("todo", "done" or "all").
func (s *Service) ListTasks(ctx context.Context, section, status string) ([]TaskDTO, error) {
	tasks, err := s.Session.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case "", "all", "todo", "done":
	default:
		return nil, fmt.Errorf("unknown status %q (expected todo, done or all)", status)
	}
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if section != "" && t.Section != section {
			continue
		}
		if status == "todo" && t.IsDone() || status == "done" && !t.IsDone() {
			continue
		}
		out = append(out, t)
	}
	return s.toDTOs(out), nil
}

// Document returns the raw active document.
func (s *Service) Document(ctx context.Context) (string, error) {
	return s.Session.Text(ctx)
}

// lookup finds id in the current document.
func (s *Service) lookup(ctx context.Context, id string) (task.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return task.Task{}, errors.New("task id is required")
	}
	d, err := s.Session.Document(ctx)
	if err != nil {
		return task.Task{}, err
	}
	t, ok := d.Find(id)
	if !ok {
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return t, nil
}

// atLine returns the task now on line n.
func (s *Service) atLine(ctx context.Context, n int) (TaskDTO, error) {
	tasks, err := s.Session.Tasks(ctx)
	if err != nil {
		return TaskDTO{}, err
	}
	for _, t := range tasks {
		if t.LineNumber == n {
			return s.toDTO(t), nil
		}
	}
	return TaskDTO{}, fmt.Errorf("%w on line %d", ErrTaskNotFound, n)
}

// edit applies a single-line mutation to id and returns the edited task.
func (s *Service) edit(ctx context.Context, id string, m func(task.Task) document.Mutation) (TaskDTO, error) {
	t, err := s.lookup(ctx, id)
	if err != nil {
		return TaskDTO{}, err
	}
	if _, err := s.Session.Apply(ctx, m(t)); err != nil {
		return TaskDTO{}, err
	}
	return s.atLine(ctx, t.LineNumber)
}

// Block returns the task and its descendants.
func (s *Service) Block(ctx context.Context, id string) ([]TaskDTO, error) {
	t, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := s.Session.Document(ctx)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(d.Block(t.ID)), nil
}

// AddTask appends a root-level task, to section when set.
func (s *Service) AddTask(ctx context.Context, text, section string) (TaskDTO, error) {
	section = strings.TrimSpace(section)
	if _, err := s.Session.Apply(ctx, document.AddTask{Text: text, Section: section}); err != nil {
		return TaskDTO{}, err
	}
	tasks, err := s.Session.Tasks(ctx)
	if err != nil {
		return TaskDTO{}, err
	}
	want := task.Normalize(text)
	for i := len(tasks) - 1; i >= 0; i-- {
		t := tasks[i]
		if t.Indent == 0 && task.Normalize(line.Classify(t.OriginalRaw).Body) == want && (section == "" || t.Section == section) {
			return s.toDTO(t), nil
		}
	}
	return TaskDTO{}, fmt.Errorf("%w after add", ErrTaskNotFound)
}

// AddSubtask inserts a child directly below parentID.
func (s *Service) AddSubtask(ctx context.Context, parentID, text string) (TaskDTO, error) {
	parent, err := s.lookup(ctx, parentID)
	if err != nil {
		return TaskDTO{}, err
	}
	if _, err := s.Session.Apply(ctx, document.InsertSubtask{ParentID: parent.ID, Text: text}); err != nil {
		return TaskDTO{}, err
	}
	return s.atLine(ctx, parent.LineNumber+1)
}

// ToggleTask flips a task and its descendants.
func (s *Service) ToggleTask(ctx context.Context, id string) (TaskDTO, error) {
	return s.edit(ctx, id, func(t task.Task) document.Mutation { return document.Toggle{ID: t.ID} })
}

// SetDeadline sets "M/D", or clears the deadline when value is empty.
func (s *Service) SetDeadline(ctx context.Context, id, value string) (TaskDTO, error) {
	d, err := task.ParseDeadline(value)
	if err != nil {
		return TaskDTO{}, err
	}
	return s.edit(ctx, id, func(t task.Task) document.Mutation { return document.SetDeadline{ID: t.ID, Deadline: d} })
}

// CycleDifficulty advances the difficulty one step.
func (s *Service) CycleDifficulty(ctx context.Context, id string) (TaskDTO, error) {
	return s.edit(ctx, id, func(t task.Task) document.Mutation { return document.CycleDifficulty{ID: t.ID} })
}

// SetEstimate sets or clears the estimate.
func (s *Service) SetEstimate(ctx context.Context, id, estimate string) (TaskDTO, error) {
	return s.edit(ctx, id, func(t task.Task) document.Mutation { return document.SetEstimate{ID: t.ID, Estimate: estimate} })
}

// EditTask replaces the task text. The task id changes with its text.
func (s *Service) EditTask(ctx context.Context, id, text string) (TaskDTO, error) {
	if strings.TrimSpace(text) == "" {
		return TaskDTO{}, document.ErrEmptyText
	}
	return s.edit(ctx, id, func(t task.Task) document.Mutation { return document.EditText{ID: t.ID, Text: text} })
}

// DeleteTask removes a task and its subtasks and returns what was removed.
func (s *Service) DeleteTask(ctx context.Context, id string) ([]TaskDTO, error) {
	t, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := s.Session.Document(ctx)
	if err != nil {
		return nil, err
	}
	removed := s.toDTOs(d.Block(t.ID))
	if _, err := s.Session.Apply(ctx, document.Delete{ID: t.ID}); err != nil {
		return nil, err
	}
	return removed, nil
}

// ParsePlace reads "before" or "after".
func ParsePlace(s string) (document.Place, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "after":
		return document.After, nil
	case "before":
		return document.Before, nil
	}
	return document.After, fmt.Errorf("unknown placement %q (expected before or after)", s)
}

// MoveTask drops dragID's block before or after dropID and reports whether
// anything moved.
func (s *Service) MoveTask(ctx context.Context, dragID, dropID string, place document.Place) (bool, error) {
	drag, err := s.lookup(ctx, dragID)
	if err != nil {
		return false, err
	}
	drop, err := s.lookup(ctx, dropID)
	if err != nil {
		return false, err
	}
	return s.Session.Apply(ctx, document.Move{DragID: drag.ID, DropID: drop.ID, Place: place})
}

// MoveToSection moves a task block to the end of section.
func (s *Service) MoveToSection(ctx context.Context, id, section string) (bool, error) {
	t, err := s.lookup(ctx, id)
	if err != nil {
		return false, err
	}
	return s.Session.Apply(ctx, document.MoveToSection{ID: t.ID, Section: section})
}

// FinishDay archives the day as of now.
func (s *Service) FinishDay(ctx context.Context) (app.FinishResult, error) {
	return s.Session.FinishDay(ctx, s.now())
}

// Rollover generates today's routine tasks.
func (s *Service) Rollover(ctx context.Context) (app.RolloverResult, error) {
	return s.Session.Rollover(ctx, s.now())
}

// SearchHistory fuzzy-searches completed tasks, returning at most limit
// groups.
func (s *Service) SearchHistory(ctx context.Context, query string, limit int) ([]history.Group, error) {
	groups, err := s.Session.History(ctx, query)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups, nil
}
