// Package log prints the time-based views: the agenda of upcoming
// deadlines and the report of recent completions.
package log

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/printers"
	"tableflip.dev/tick/pkg/timeutil"
)

// DefaultAgendaDays is the agenda length when none is given.
const DefaultAgendaDays = 7

// Agenda lists deadlines day by day starting at From.
type Agenda struct {
	Session *app.Session
	From    time.Time
	Days    int
	ShowID  bool
	Encoder printers.Encoder
	Out     io.Writer
}

func (n *Agenda) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not show agenda, no session")
	}
	from := n.From
	if from.IsZero() {
		from = time.Now()
	}
	days := n.Days
	if days <= 0 {
		days = DefaultAgendaDays
	}
	res, err := n.Session.Agenda(ctx, from, days)
	if err != nil {
		return err
	}
	if n.Encoder.Structured() {
		return n.Encoder.Encode(res)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Today: time.Now(), Out: n.Out}
	pp.NewLine()
	pp.Title("Agenda")
	pp.Agenda(res)
	return nil
}

// Report lists what was completed within the trailing Window.
type Report struct {
	Session  *app.Session
	Window   string
	Until    time.Time
	Calendar bool
	Encoder  printers.Encoder
	Out      io.Writer
}

func (n *Report) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not report, no session")
	}
	window, err := timeutil.ParseWindow(n.Window)
	if err != nil {
		return err
	}
	until := n.Until
	if until.IsZero() {
		until = time.Now()
	}
	res, err := n.Session.Report(ctx, window.Since(until), until)
	if err != nil {
		return err
	}
	if n.Encoder.Structured() {
		return n.Encoder.Encode(res)
	}
	pp := printers.PrettyPrint{Today: until, Out: n.Out}
	pp.NewLine()
	if n.Calendar {
		pp.ReportMonths(res)
	}
	pp.Report(res, window.String())
	return nil
}
