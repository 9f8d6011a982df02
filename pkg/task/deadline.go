package task

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Deadline is a month/day with no year. The zero value means no deadline.
type Deadline struct {
	Month time.Month
	Day   int
}

// ParseDeadline reads "M/D". Month and day are range checked; the day is not
// checked against the month's length.
func ParseDeadline(s string) (Deadline, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Deadline{}, nil
	}
	m, d, ok := strings.Cut(s, "/")
	if !ok {
		return Deadline{}, fmt.Errorf("task: deadline %q: want M/D", s)
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return Deadline{}, fmt.Errorf("task: deadline %q: bad month", s)
	}
	day, err := strconv.Atoi(d)
	if err != nil || day < 1 || day > 31 {
		return Deadline{}, fmt.Errorf("task: deadline %q: bad day", s)
	}
	return Deadline{Month: time.Month(month), Day: day}, nil
}

// DeadlineOf returns the deadline falling on the date of t.
func DeadlineOf(t time.Time) Deadline {
	return Deadline{Month: t.Month(), Day: t.Day()}
}

// IsZero reports whether no deadline is set.
func (d Deadline) IsZero() bool {
	return d.Month == 0
}

// String renders "M/D", or "" for the zero value.
func (d Deadline) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d/%d", int(d.Month), d.Day)
}

// Resolve places the deadline in a year relative to today. A date more than
// half a year behind today is taken to mean next year, so a 1/3 deadline
// written in December lands in January.
func (d Deadline) Resolve(today time.Time) time.Time {
	y, m, dd := today.Date()
	base := time.Date(y, m, dd, 0, 0, 0, 0, today.Location())
	when := time.Date(y, d.Month, d.Day, 0, 0, 0, 0, today.Location())
	if base.Sub(when) > 183*24*time.Hour {
		when = when.AddDate(1, 0, 0)
	}
	return when
}

// DueStatus classifies a deadline against today.
type DueStatus int

const (
	NoDeadline DueStatus = iota
	Overdue
	DueToday
	Upcoming
)

// Due classifies the deadline relative to today.
func (d Deadline) Due(today time.Time) DueStatus {
	if d.IsZero() {
		return NoDeadline
	}
	when := d.Resolve(today)
	y, m, dd := today.Date()
	base := time.Date(y, m, dd, 0, 0, 0, 0, today.Location())
	switch {
	case when.Before(base):
		return Overdue
	case when.Equal(base):
		return DueToday
	}
	return Upcoming
}

func (d Deadline) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Deadline) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDeadline(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML renders the deadline as "M/D".
func (d Deadline) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
