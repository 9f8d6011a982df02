package document

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"tableflip.dev/tick/pkg/line"
	"tableflip.dev/tick/pkg/task"
)

var (
	ErrEmptyText         = errors.New("document: task text is empty")
	ErrEmptySection      = errors.New("document: section name is empty")
	ErrInvalidDifficulty = errors.New("document: difficulty must be between 1 and 5")
	ErrInvalidEstimate   = errors.New("document: estimate may not contain parentheses or read as another tag")
	ErrInvalidRoutine    = errors.New("document: routine tag needs type daily or weekly and a word id")
)

var routineIDPattern = regexp.MustCompile(`^[\w-]+$`)

// Mutation is one semantic edit. Apply returns the edited document and
// whether anything changed. Edits addressed to an id that is not in the
// document are no-ops, not errors.
type Mutation interface {
	Apply(d Document) (Document, bool, error)
	Name() string
}

// Apply runs m against d.
func (d Document) Apply(m Mutation) (Document, bool, error) {
	return m.Apply(d)
}

func (d Document) index(id string) (int, bool) {
	t, ok := d.Find(id)
	if !ok {
		return 0, false
	}
	return t.LineNumber - 1, true
}

// rewrite replaces the body of the task line at i. A body left empty would
// no longer be a task line, so that rewrite is refused.
func (d Document) rewrite(i int, body string) (Document, bool) {
	l := d.lines[i]
	if body == l.Body || strings.TrimSpace(body) == "" {
		return d, false
	}
	lines := d.Lines()
	lines[i] = l.WithBody(body)
	return from(lines), true
}

func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Toggle flips a task between todo and done and gives every descendant the
// same new status.
type Toggle struct {
	ID string
}

func (Toggle) Name() string { return "toggle" }

func (m Toggle) Apply(d Document) (Document, bool, error) {
	i, ok := d.index(m.ID)
	if !ok {
		return d, false, nil
	}
	done := !d.lines[i].Done()
	lines := d.Lines()
	end := blockEnd(lines, i)
	for j := i; j < end; j++ {
		lines[j] = lines[j].WithMark(done)
	}
	return from(lines), true, nil
}

// SetDeadline replaces the deadline tag of one line. A zero Deadline clears it.
type SetDeadline struct {
	ID       string
	Deadline task.Deadline
}

func (SetDeadline) Name() string { return "set-deadline" }

func (m SetDeadline) Apply(d Document) (Document, bool, error) {
	i, ok := d.index(m.ID)
	if !ok {
		return d, false, nil
	}
	next, changed := d.rewrite(i, line.Set(d.lines[i].Body, line.Deadline, m.Deadline.String()))
	return next, changed, nil
}

// CycleDifficulty advances difficulty 1 through 5, wrapping to 1.
type CycleDifficulty struct {
	ID string
}

func (CycleDifficulty) Name() string { return "cycle-difficulty" }

func (m CycleDifficulty) Apply(d Document) (Document, bool, error) {
	t, ok := d.Find(m.ID)
	if !ok {
		return d, false, nil
	}
	return SetDifficulty{ID: m.ID, Difficulty: task.NextDifficulty(t.Difficulty)}.Apply(d)
}

// SetDifficulty writes an explicit difficulty tag.
type SetDifficulty struct {
	ID         string
	Difficulty int
}

func (SetDifficulty) Name() string { return "set-difficulty" }

func (m SetDifficulty) Apply(d Document) (Document, bool, error) {
	if m.Difficulty < task.MinDifficulty || m.Difficulty > task.MaxDifficulty {
		return d, false, ErrInvalidDifficulty
	}
	i, ok := d.index(m.ID)
	if !ok {
		return d, false, nil
	}
	next, changed := d.rewrite(i, line.Set(d.lines[i].Body, line.Difficulty, strconv.Itoa(m.Difficulty)))
	return next, changed, nil
}

// SetEstimate replaces the estimate tag. An empty estimate clears it.
type SetEstimate struct {
	ID       string
	Estimate string
}

func (SetEstimate) Name() string { return "set-estimate" }

func (m SetEstimate) Apply(d Document) (Document, bool, error) {
	est := singleLine(m.Estimate)
	if strings.ContainsAny(est, "()") {
		return d, false, ErrInvalidEstimate
	}
	if t, ok := line.Claimed(est); ok {
		return d, false, fmt.Errorf("%w: %q is a %s", ErrInvalidEstimate, est, t)
	}
	i, ok := d.index(m.ID)
	if !ok {
		return d, false, nil
	}
	next, changed := d.rewrite(i, line.Set(d.lines[i].Body, line.Estimate, est))
	return next, changed, nil
}

// MarkRoutine tags a task as generated by a routine.
type MarkRoutine struct {
	ID        string
	Type      string
	RoutineID string
}

func (MarkRoutine) Name() string { return "mark-routine" }

func (m MarkRoutine) Apply(d Document) (Document, bool, error) {
	if (m.Type != task.Daily && m.Type != task.Weekly) || !routineIDPattern.MatchString(m.RoutineID) {
		return d, false, ErrInvalidRoutine
	}
	i, ok := d.index(m.ID)
	if !ok {
		return d, false, nil
	}
	next, changed := d.rewrite(i, line.Set(d.lines[i].Body, line.Routine, m.Type+":"+m.RoutineID))
	return next, changed, nil
}

// EditText replaces the task name and keeps its tags.
type EditText struct {
	ID   string
	Text string
}

func (EditText) Name() string { return "edit-text" }

func (m EditText) Apply(d Document) (Document, bool, error) {
	text := singleLine(m.Text)
	t, ok := d.Find(m.ID)
	if !ok || text == "" || text == t.Text {
		return d, false, nil
	}
	i := t.LineNumber - 1
	next, changed := d.rewrite(i, line.Rebody(d.lines[i].Body, text))
	return next, changed, nil
}

// InsertSubtask adds a todo directly below its parent, one level deeper and
// ahead of any existing children.
type InsertSubtask struct {
	ParentID string
	Text     string
}

func (InsertSubtask) Name() string { return "insert-subtask" }

func (m InsertSubtask) Apply(d Document) (Document, bool, error) {
	text := singleLine(m.Text)
	if text == "" {
		return d, false, ErrEmptyText
	}
	i, ok := d.index(m.ParentID)
	if !ok {
		return d, false, nil
	}
	child := line.Classify(line.Format(d.lines[i].Indent+1, false, text))
	return from(splice(d.lines, i+1, child)), true, nil
}

// AddTask appends a root-level todo to the end of the document, or to the end
// of Section when it is set.
type AddTask struct {
	Text    string
	Section string
}

func (AddTask) Name() string { return "add-task" }

func (m AddTask) Apply(d Document) (Document, bool, error) {
	text := singleLine(m.Text)
	if text == "" {
		return d, false, ErrEmptyText
	}
	l := line.Classify(line.Format(0, false, text))
	if section := singleLine(m.Section); section != "" {
		return from(appendToSection(d.lines, section, []line.Line{l})), true, nil
	}
	return from(splice(d.lines, contentEnd(d.lines, 0, len(d.lines)), l)), true, nil
}

// Delete removes a task and its descendant block.
type Delete struct {
	ID string
}

func (Delete) Name() string { return "delete" }

func (m Delete) Apply(d Document) (Document, bool, error) {
	i, ok := d.index(m.ID)
	if !ok {
		return d, false, nil
	}
	rest, _ := without(d.lines, i, blockEnd(d.lines, i))
	return from(rest), true, nil
}

// Place says where a moved block lands relative to its drop target.
type Place int

const (
	// Before puts the block directly above the drop target line.
	Before Place = iota
	// After puts the block below the drop target and all its descendants.
	After
)

// Move is a drag and drop: the dragged block is re-indented so its root sits
// at the drop target's depth. Dropping a block onto itself or inside its own
// descendants is a no-op.
type Move struct {
	DragID string
	DropID string
	Place  Place
}

func (Move) Name() string { return "move" }

func (m Move) Apply(d Document) (Document, bool, error) {
	if m.DragID == m.DropID {
		return d, false, nil
	}
	drag, ok := d.index(m.DragID)
	if !ok {
		return d, false, nil
	}
	drop, ok := d.index(m.DropID)
	if !ok {
		return d, false, nil
	}
	end := blockEnd(d.lines, drag)
	if drop >= drag && drop < end {
		return d, false, nil
	}

	rest, block := without(d.lines, drag, end)
	block = shift(block, d.lines[drop].Indent-d.lines[drag].Indent)
	if drop > drag {
		drop -= end - drag
	}
	at := drop
	if m.Place == After {
		at = blockEnd(rest, drop)
	}
	next := from(splice(rest, at, block...))
	return next, next.String() != d.String(), nil
}

// MoveToSection moves a block to the end of a section at root level,
// creating the section when needed.
type MoveToSection struct {
	ID      string
	Section string
}

func (MoveToSection) Name() string { return "move-to-section" }

func (m MoveToSection) Apply(d Document) (Document, bool, error) {
	section := singleLine(m.Section)
	if section == "" {
		return d, false, ErrEmptySection
	}
	i, ok := d.index(m.ID)
	if !ok {
		return d, false, nil
	}
	rest, block := without(d.lines, i, blockEnd(d.lines, i))
	block = shift(block, -d.lines[i].Indent)
	next := from(appendToSection(rest, section, block))
	return next, next.String() != d.String(), nil
}
