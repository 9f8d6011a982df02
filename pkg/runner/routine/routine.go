// Package routine manages recurring task templates from the command line.
package routine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/printers"
	"tableflip.dev/tick/pkg/routine"
)

// Schedule is the textual form of a routine's timing, as typed on the
// command line.
type Schedule struct {
	// Type is daily or weekly.
	Type string
	// On is the generation weekday of a weekly routine.
	On string
	// Deadline is none, today or a weekday name.
	Deadline string
}

// Routine builds the template the schedule describes.
func (s Schedule) Routine(text string) (routine.Routine, error) {
	r := routine.Routine{
		Text:         text,
		Type:         routine.Type(strings.ToLower(strings.TrimSpace(s.Type))),
		DeadlineRule: routine.DeadlineNone,
	}
	if r.Type == "" {
		r.Type = routine.Daily
	}
	if on := strings.TrimSpace(s.On); on != "" {
		d, err := routine.ParseWeekday(on)
		if err != nil {
			return routine.Routine{}, err
		}
		r.GenerateOn = &d
	}
	switch dl := strings.ToLower(strings.TrimSpace(s.Deadline)); dl {
	case "", string(routine.DeadlineNone):
	case string(routine.DeadlineToday):
		r.DeadlineRule = routine.DeadlineToday
	default:
		d, err := routine.ParseWeekday(dl)
		if err != nil {
			return routine.Routine{}, err
		}
		r.DeadlineRule = routine.DeadlineWeekday
		r.DeadlineOn = &d
	}
	return r, r.Validate()
}

// List prints every routine.
type List struct {
	Session *app.Session
	Encoder printers.Encoder
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not list routines, no session")
	}
	list, err := n.Session.Routines(ctx)
	if err != nil {
		return err
	}
	if n.Encoder.Structured() {
		if list == nil {
			list = []routine.Routine{}
		}
		return n.Encoder.Encode(list)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Title("Routines")
	pp.Routines(list)
	return nil
}

// Add stores a new routine.
type Add struct {
	Session  *app.Session
	Text     string
	Schedule Schedule
	Out      io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not add routine, no session")
	}
	tmpl, err := n.Schedule.Routine(n.Text)
	if err != nil {
		return err
	}
	r, err := n.Session.AddRoutine(ctx, tmpl)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Routines([]routine.Routine{r})
	return nil
}

// Remove deletes a routine by id.
type Remove struct {
	Session *app.Session
	ID      string
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not remove routine, no session")
	}
	if err := n.Session.RemoveRoutine(ctx, n.ID); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Title(fmt.Sprintf("Removed routine %s", n.ID))
	return nil
}

// Promote turns an existing task into a routine.
type Promote struct {
	Session  *app.Session
	TaskID   string
	Schedule Schedule
	Out      io.Writer
}

func (n *Promote) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not promote, no session")
	}
	t, err := n.Session.Find(ctx, n.TaskID)
	if err != nil {
		return err
	}
	tmpl, err := n.Schedule.Routine(t.Text)
	if err != nil {
		return err
	}
	r, err := n.Session.PromoteToRoutine(ctx, t.ID, tmpl)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Routines([]routine.Routine{r})
	return nil
}
