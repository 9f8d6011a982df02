// Package get prints the tasks of the active document.
package get

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/printers"
	"tableflip.dev/tick/pkg/task"
)

// Status filters.
const (
	StatusAll  = "all"
	StatusTodo = "todo"
	StatusDone = "done"
)

type Get struct {
	Session *app.Session
	Section string
	Status  string
	Summary bool
	ShowID  bool
	Today   time.Time
	Encoder printers.Encoder
	Out     io.Writer

	// Rollover adds today's routine tasks first when that has not happened
	// yet today.
	Rollover bool
}

func (n *Get) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not get, no session")
	}
	today := n.Today
	if today.IsZero() {
		today = time.Now()
	}

	if n.Rollover {
		if _, err := n.Session.Rollover(ctx, today); err != nil {
			return err
		}
	}

	if n.Summary {
		sum, err := n.Session.Summary(ctx, today)
		if err != nil {
			return err
		}
		if n.Encoder.Structured() {
			return n.Encoder.Encode(sum)
		}
		pp := printers.PrettyPrint{Today: today, Out: n.Out}
		pp.Summary(sum)
		return nil
	}

	tasks, err := n.Session.Tasks(ctx)
	if err != nil {
		return err
	}
	tasks, err = n.filtered(tasks)
	if err != nil {
		return err
	}

	if n.Encoder.Structured() {
		if tasks == nil {
			tasks = []task.Task{}
		}
		return n.Encoder.Encode(tasks)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Today: today, Out: n.Out}
	pp.NewLine()
	if n.Section != "" {
		pp.TitleWithCount(n.Section, len(tasks))
		pp.Tasks(tasks...)
		return nil
	}
	pp.Sections(tasks)
	return nil
}

func (n *Get) filtered(all []task.Task) ([]task.Task, error) {
	status := strings.ToLower(strings.TrimSpace(n.Status))
	switch status {
	case "", StatusAll, StatusTodo, StatusDone:
	default:
		return nil, fmt.Errorf("unknown status %q (expected todo, done or all)", n.Status)
	}
	c := make([]task.Task, 0, len(all))
	for _, t := range all {
		if n.Section != "" && t.Section != n.Section {
			continue
		}
		if status == StatusTodo && t.IsDone() || status == StatusDone && !t.IsDone() {
			continue
		}
		c = append(c, t)
	}
	return c, nil
}
