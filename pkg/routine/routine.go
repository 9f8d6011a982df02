// Package routine models recurring task templates and the lines they
// generate.
package routine

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"tableflip.dev/tick/pkg/line"
	"tableflip.dev/tick/pkg/task"
)

// Type is how often a routine fires.
type Type string

const (
	Daily  Type = task.Daily
	Weekly Type = task.Weekly
)

// DeadlineRule decides the deadline tag written on a generated line.
type DeadlineRule string

const (
	// DeadlineNone writes no deadline.
	DeadlineNone DeadlineRule = "none"
	// DeadlineToday sets the deadline to the day the line is generated.
	DeadlineToday DeadlineRule = "today"
	// DeadlineWeekday sets the deadline to the next DeadlineOn weekday,
	// counting today.
	DeadlineWeekday DeadlineRule = "weekday"
)

// DateLayout is the layout of LastRun and the rollover marker.
const DateLayout = "2006-01-02"

var (
	ErrInvalidType    = errors.New("routine: type must be daily or weekly")
	ErrInvalidRule    = errors.New("routine: deadline rule must be none, today or weekday")
	ErrMissingWeekday = errors.New("routine: weekly routines need a weekday")
	ErrEmptyText      = errors.New("routine: text is empty")
	ErrInvalidWeekday = errors.New("routine: unknown weekday")
	ErrNotFound       = errors.New("routine: not found")
)

// Routine is a persisted template that adds a task line on matching days.
type Routine struct {
	ID           string        `json:"id"`
	Text         string        `json:"text"`
	Type         Type          `json:"type"`
	GenerateOn   *time.Weekday `json:"generateOn,omitempty"`
	DeadlineRule DeadlineRule  `json:"deadlineRule"`
	DeadlineOn   *time.Weekday `json:"deadlineOn,omitempty"`
	LastRun      string        `json:"lastRun,omitempty"`
}

// Validate checks the record is complete.
func (r Routine) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	switch r.Type {
	case Daily:
	case Weekly:
		if r.GenerateOn == nil {
			return ErrMissingWeekday
		}
	default:
		return ErrInvalidType
	}
	switch r.DeadlineRule {
	case "", DeadlineNone, DeadlineToday:
	case DeadlineWeekday:
		if r.DeadlineOn == nil {
			return fmt.Errorf("%w for deadline rule %q", ErrMissingWeekday, r.DeadlineRule)
		}
	default:
		return ErrInvalidRule
	}
	return nil
}

// Due reports whether the routine fires on today and has not yet run.
func (r Routine) Due(today time.Time) bool {
	if r.LastRun == today.Format(DateLayout) {
		return false
	}
	switch r.Type {
	case Daily:
		return true
	case Weekly:
		return r.GenerateOn != nil && *r.GenerateOn == today.Weekday()
	}
	return false
}

// Deadline computes the deadline for a line generated on today.
func (r Routine) Deadline(today time.Time) task.Deadline {
	switch r.DeadlineRule {
	case DeadlineToday:
		return task.DeadlineOf(today)
	case DeadlineWeekday:
		if r.DeadlineOn == nil {
			return task.Deadline{}
		}
		ahead := (int(*r.DeadlineOn) - int(today.Weekday()) + 7) % 7
		return task.DeadlineOf(today.AddDate(0, 0, ahead))
	}
	return task.Deadline{}
}

// Body is the text and tags of the line generated on today.
func (r Routine) Body(today time.Time) string {
	return line.Compose(strings.TrimSpace(r.Text), line.Tags{
		Deadline:    r.Deadline(today).String(),
		RoutineType: string(r.Type),
		RoutineID:   r.ID,
	})
}

// Line synthesizes the task line generated on today.
func (r Routine) Line(today time.Time) string {
	return line.Format(0, false, r.Body(today))
}

// Decode reads a JSON routines list. Empty input is an empty list.
func Decode(data string) ([]Routine, error) {
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}
	var list []Routine
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, fmt.Errorf("routine: decode: %w", err)
	}
	return list, nil
}

// Encode renders the routines list as indented JSON.
func Encode(list []Routine) (string, error) {
	if list == nil {
		list = []Routine{}
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("routine: encode: %w", err)
	}
	return string(b), nil
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// ParseWeekday accepts English weekday names or three letter prefixes.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) >= 3 {
		if d, ok := weekdays[s[:3]]; ok && strings.HasPrefix(strings.ToLower(d.String()), s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidWeekday, s)
}

// NewID returns a lower-case ULID for a routine created at now.
func NewID(now time.Time) string {
	id, err := ulid.New(ulid.Timestamp(now), ulid.Monotonic(rand.Reader, 0))
	if err != nil {
		return strconv.FormatInt(now.UnixNano(), 36)
	}
	return strings.ToLower(id.String())
}
