package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/glyph"
	"tableflip.dev/tick/pkg/history"
	"tableflip.dev/tick/pkg/routine"
	"tableflip.dev/tick/pkg/task"
	"tableflip.dev/tick/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	Today  time.Time
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) today() time.Time {
	if pp.Today.IsZero() {
		return time.Now()
	}
	return pp.Today
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Tasks prints one line per task, indented by depth.
func (pp *PrettyPrint) Tasks(tasks ...task.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	for _, t := range tasks {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), t.ID)
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", len(spacing)-len(t.ID)))
		}
		pp.task(t)
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) task(t task.Task) {
	w := pp.out()
	b := glyph.For(t, pp.today())

	bullet := color.New()
	text := color.New()
	switch b {
	case glyph.Done:
		bullet = color.New(color.Faint)
		text = color.New(color.Faint, color.CrossedOut)
	case glyph.Overdue:
		bullet = color.New(color.FgRed, color.Bold)
	case glyph.DueToday:
		bullet = color.New(color.FgYellow, color.Bold)
	}
	tag := color.New(color.Faint)

	_, _ = fmt.Fprint(w, strings.Repeat("  ", t.Indent))
	_, _ = bullet.Fprintf(w, "%s ", b)
	_, _ = text.Fprint(w, t.Text)
	if t.Estimate != "" {
		_, _ = tag.Fprintf(w, " %s %s", glyph.Estimate, t.Estimate)
	}
	if !t.Deadline.IsZero() {
		_, _ = tag.Fprintf(w, " %s %s", glyph.Deadline, t.Deadline)
	}
	if t.Difficulty != task.DefaultDifficulty {
		_, _ = tag.Fprintf(w, " %s", strings.Repeat(glyph.Difficulty.String(), t.Difficulty))
	}
	if t.IsRoutine() {
		_, _ = tag.Fprintf(w, " %s %s", glyph.Routine, t.RoutineType)
	}
	_, _ = fmt.Fprintln(w, "")
}

// Sections prints tasks grouped under their headings, in document order.
func (pp *PrettyPrint) Sections(tasks []task.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}
	var group []task.Task
	current := tasks[0].Section
	flush := func() {
		if current != "" {
			pp.TitleWithCount(current, len(group))
		}
		pp.Tasks(group...)
		group = nil
	}
	for _, t := range tasks {
		if t.Section != current {
			flush()
			current = t.Section
		}
		group = append(group, t)
	}
	flush()
}

func (pp *PrettyPrint) Summary(sum app.Summary) {
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("Section"), b.Sprint("Open"), b.Sprint("Done"))
	for _, s := range sum.Sections {
		name := s.Name
		if name == "" {
			name = f.Sprint("(top)")
		}
		tbl.AddRow(name, s.Todo, s.Done)
	}
	tbl.AddRow(b.Sprint("Total"), sum.Todo, sum.Done)
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	_, _ = f.Fprintf(pp.out(), "\n%s %s estimated", glyph.Estimate, timeutil.FormatEstimate(sum.Estimate))
	if sum.Unestimated > 0 {
		_, _ = f.Fprintf(pp.out(), ", %d open without a duration", sum.Unestimated)
	}
	if sum.Overdue > 0 {
		_, _ = color.New(color.FgRed).Fprintf(pp.out(), ", %d overdue", sum.Overdue)
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

func (pp *PrettyPrint) Routines(list []routine.Routine) {
	if len(list) == 0 {
		pp.none()
		return
	}
	b := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("ID"), b.Sprint("Routine"), b.Sprint("Schedule"), b.Sprint("Deadline"), b.Sprint("Last run"))
	for _, r := range list {
		tbl.AddRow(r.ID, r.Text, schedule(r), deadline(r), r.LastRun)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

func schedule(r routine.Routine) string {
	if r.Type == routine.Weekly && r.GenerateOn != nil {
		return "weekly on " + r.GenerateOn.String()
	}
	return string(r.Type)
}

func deadline(r routine.Routine) string {
	if r.DeadlineRule == routine.DeadlineWeekday && r.DeadlineOn != nil {
		return "next " + r.DeadlineOn.String()
	}
	if r.DeadlineRule == "" {
		return string(routine.DeadlineNone)
	}
	return string(r.DeadlineRule)
}

// History prints grouped completions, most recent first.
func (pp *PrettyPrint) History(groups []history.Group) {
	if len(groups) == 0 {
		pp.none()
		return
	}
	b := color.New(color.Bold)
	f := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("Count"), b.Sprint("Task"), b.Sprint("Last done"))
	for _, g := range groups {
		tbl.AddRow(g.Count, g.Text, f.Sprint(g.Latest.Local().Format("2006-01-02 15:04")))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	w := pp.out()
	since := result.Since.Local().Format("2006-01-02 15:04")
	until := result.Until.Local().Format("2006-01-02 15:04")
	_, _ = fmt.Fprintf(w, "Report · last %s (%s → %s)\n", label, since, until)

	if result.Total == 0 {
		_, _ = fmt.Fprintln(w, "  No completed tasks found in this window.")
		_, _ = fmt.Fprintln(w)
		return
	}

	f := color.New(color.Faint)
	for _, day := range result.Days {
		_, _ = color.New(color.Bold).Fprintf(w, "\n%s\n", day.Day.Format("Mon Jan 2"))
		for _, e := range day.Entries {
			_, _ = fmt.Fprintf(w, "  %s %s", glyph.Done, e.Text)
			_, _ = f.Fprintf(w, "  (completed %s)\n", e.CompletedAt.Local().Format("15:04"))
		}
	}
	_, _ = fmt.Fprintf(w, "\n%d completed\n\n", result.Total)
}
