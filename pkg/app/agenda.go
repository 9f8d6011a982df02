package app

import (
	"context"
	"time"

	"tableflip.dev/tick/pkg/task"
	"tableflip.dev/tick/pkg/timeutil"
)

// AgendaDay lists the tasks due on Day followed by their open subtasks.
type AgendaDay struct {
	Day   time.Time   `json:"day"`
	Tasks []task.Task `json:"tasks"`
}

// AgendaResult is the calendar view starting at From.
type AgendaResult struct {
	From    time.Time   `json:"from"`
	Overdue []task.Task `json:"overdue"`
	Days    []AgendaDay `json:"days"`
}

// Agenda lays out deadlines over days calendar days starting at from. Open
// tasks whose deadline is already behind from are listed as overdue.
func (s *Session) Agenda(ctx context.Context, from time.Time, days int) (AgendaResult, error) {
	d, err := s.Document(ctx)
	if err != nil {
		return AgendaResult{}, err
	}
	if days < 1 {
		days = 1
	}
	y, m, dd := from.Date()
	start := time.Date(y, m, dd, 0, 0, 0, 0, from.Location())

	res := AgendaResult{From: start, Days: make([]AgendaDay, days)}
	for i := range res.Days {
		res.Days[i].Day = start.AddDate(0, 0, i)
	}

	for _, t := range d.Tasks() {
		switch t.Deadline.Due(start) {
		case task.NoDeadline:
			continue
		case task.Overdue:
			if !t.IsDone() {
				res.Overdue = append(res.Overdue, t)
			}
			continue
		}
		when := t.Deadline.Resolve(start)
		i := int(when.Sub(start).Hours()+12) / 24
		if i < 0 || i >= days {
			continue
		}
		res.Days[i].Tasks = append(res.Days[i].Tasks, t)
		block := d.Block(t.ID)
		for _, child := range block[1:] {
			if !child.IsDone() && child.Deadline.IsZero() {
				res.Days[i].Tasks = append(res.Days[i].Tasks, child)
			}
		}
	}
	return res, nil
}

// SectionSummary counts the tasks under one heading.
type SectionSummary struct {
	Name string `json:"name"`
	Todo int    `json:"todo"`
	Done int    `json:"done"`
}

// Summary is an overview of the active document.
type Summary struct {
	Todo int `json:"todo"`
	Done int `json:"done"`
	// Estimate totals the estimates of open tasks that read as durations.
	Estimate    time.Duration    `json:"estimate"`
	Unestimated int              `json:"unestimated"`
	Overdue     int              `json:"overdue"`
	Sections    []SectionSummary `json:"sections"`
}

// Summary counts the open and done tasks of the current document as of today.
func (s *Session) Summary(ctx context.Context, today time.Time) (Summary, error) {
	d, err := s.Document(ctx)
	if err != nil {
		return Summary{}, err
	}
	var sum Summary
	index := make(map[string]int)
	for _, t := range d.Tasks() {
		i, ok := index[t.Section]
		if !ok {
			i = len(sum.Sections)
			index[t.Section] = i
			sum.Sections = append(sum.Sections, SectionSummary{Name: t.Section})
		}
		if t.IsDone() {
			sum.Done++
			sum.Sections[i].Done++
			continue
		}
		sum.Todo++
		sum.Sections[i].Todo++
		if t.Deadline.Due(today) == task.Overdue {
			sum.Overdue++
		}
		if est, err := timeutil.ParseEstimate(t.Estimate); err == nil {
			sum.Estimate += est
		} else {
			sum.Unestimated++
		}
	}
	return sum, nil
}
