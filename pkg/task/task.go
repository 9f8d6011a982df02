// Package task derives Task records from checklist text.
package task

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"tableflip.dev/tick/pkg/line"
)

// Status is the checkbox state of a task.
type Status string

const (
	Todo Status = "todo"
	Done Status = "done"
)

const (
	// DefaultDifficulty applies when a line has no difficulty tag.
	DefaultDifficulty = 2
	MinDifficulty     = 1
	MaxDifficulty     = 5
)

// Routine kinds carried by a routine tag.
const (
	Daily  = "daily"
	Weekly = "weekly"
)

// Task is a projection of one task line. It is rebuilt on every parse and
// never persisted.
type Task struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Status      Status   `json:"status"`
	Indent      int      `json:"indent"`
	Estimate    string   `json:"estimate,omitempty"`
	Deadline    Deadline `json:"deadline,omitempty"`
	Difficulty  int      `json:"difficulty"`
	RoutineType string   `json:"routineType,omitempty"`
	RoutineID   string   `json:"routineId,omitempty"`
	Section     string   `json:"section"`
	LineNumber  int      `json:"lineNumber"`
	OriginalRaw string   `json:"originalRaw"`
}

// IsDone reports whether the task is checked.
func (t Task) IsDone() bool {
	return t.Status == Done
}

// IsRoutine reports whether the line was generated from, or promoted to, a
// routine.
func (t Task) IsRoutine() bool {
	return t.RoutineType != "" && t.RoutineID != ""
}

// IsDailyRoutine reports whether the task regenerates every day.
func (t Task) IsDailyRoutine() bool {
	return t.IsRoutine() && t.RoutineType == Daily
}

// Tags returns the task's annotations as the tagger models them.
func (t Task) Tags() line.Tags {
	tags := line.Tags{
		Estimate:    t.Estimate,
		Deadline:    t.Deadline.String(),
		RoutineType: t.RoutineType,
		RoutineID:   t.RoutineID,
	}
	if t.Difficulty != DefaultDifficulty {
		tags.Difficulty = t.Difficulty
	}
	return tags
}

// Line renders the task in canonical form.
func (t Task) Line() string {
	return line.Format(t.Indent, t.IsDone(), line.Compose(t.Text, t.Tags()))
}

// NextDifficulty cycles 1 through 5 and wraps back to 1.
func NextDifficulty(d int) int {
	if d < MinDifficulty || d >= MaxDifficulty {
		return MinDifficulty
	}
	return d + 1
}

// Normalize collapses whitespace runs so cosmetic spacing does not change
// identity.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ID derives the identity of the nth (0-based) task in a document whose
// normalized text is text.
func ID(text string, occurrence int) string {
	sum := sha256.Sum256([]byte(Normalize(text) + "\x00" + strconv.Itoa(occurrence)))
	return hex.EncodeToString(sum[:8])
}
