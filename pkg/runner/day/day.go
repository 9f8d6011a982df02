// Package day closes out a day and starts the next one.
package day

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/printers"
)

// Finish archives completed tasks and leaves only open ones.
type Finish struct {
	Session *app.Session
	Now     time.Time
	Encoder printers.Encoder
	Out     io.Writer
}

func (n *Finish) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not finish, no session")
	}
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	res, err := n.Session.FinishDay(ctx, now)
	if err != nil {
		return err
	}
	if n.Encoder.Structured() {
		return n.Encoder.Encode(res)
	}

	w := out(n.Out)
	f := color.New(color.Faint)
	_, _ = fmt.Fprintln(w, "")
	_, _ = color.New(color.Bold).Fprintf(w, "Archived %d, %d open tasks carried over\n", len(res.Archived), res.Remaining)
	_, _ = f.Fprintf(w, "snapshot %s\n", path.Join(append(res.SnapshotPath, res.SnapshotFile)...))
	for _, e := range res.Archived {
		_, _ = fmt.Fprintf(w, "  ✘ %s\n", e.Text)
	}
	_, _ = fmt.Fprintln(w, "")
	return nil
}

// Rollover adds the routine tasks due today, once per day.
type Rollover struct {
	Session *app.Session
	Today   time.Time
	Encoder printers.Encoder
	Out     io.Writer
}

func (n *Rollover) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not roll over, no session")
	}
	today := n.Today
	if today.IsZero() {
		today = time.Now()
	}
	res, err := n.Session.Rollover(ctx, today)
	if err != nil {
		return err
	}
	if n.Encoder.Structured() {
		return n.Encoder.Encode(res)
	}

	w := out(n.Out)
	_, _ = fmt.Fprintln(w, "")
	switch {
	case res.Skipped:
		_, _ = color.New(color.Faint).Fprintf(w, "Already rolled over for %s\n", res.Date)
	case len(res.Added) == 0:
		_, _ = fmt.Fprintf(w, "No routines due on %s\n", res.Date)
	default:
		_, _ = color.New(color.Bold).Fprintf(w, "Added %d routine tasks for %s\n", len(res.Added), res.Date)
		for _, text := range res.Added {
			_, _ = fmt.Fprintf(w, "  %s\n", text)
		}
	}
	_, _ = fmt.Fprintln(w, "")
	return nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
