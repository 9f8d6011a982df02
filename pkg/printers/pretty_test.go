package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/history"
	"tableflip.dev/tick/pkg/task"
)

var today = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func newPrinter(showID bool) (*PrettyPrint, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	return &PrettyPrint{ShowID: showID, Today: today, Out: &buf}, &buf
}

func TestTasks(t *testing.T) {
	pp, buf := newPrinter(true)
	pp.Tasks(
		task.Task{ID: "171dff69f8b99dca", Text: "taxes", Status: task.Todo, Difficulty: 4, Estimate: "2h", Deadline: task.Deadline{Month: time.October, Day: 1}},
		task.Task{ID: "00000000000000ff", Text: "receipts", Status: task.Done, Indent: 1, Difficulty: 2},
	)
	out := buf.String()
	for _, want := range []string{"171dff69f8b99dca  ! taxes ⧗ 2h ⚑ 10/1 ★★★★", "00000000000000ff    ✘ receipts"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in\n%s", want, out)
		}
	}
}

func TestSectionsGroupsByHeading(t *testing.T) {
	pp, buf := newPrinter(false)
	pp.Sections([]task.Task{
		{Text: "a", Difficulty: 2},
		{Text: "b", Section: "Home", Difficulty: 2},
		{Text: "c", Section: "Home", Difficulty: 2},
	})
	out := buf.String()
	if !strings.Contains(out, "Home - 2 tasks") {
		t.Fatalf("expected section title with count, got\n%s", out)
	}
	if strings.Index(out, "● a") > strings.Index(out, "Home") {
		t.Fatalf("expected top-level tasks before the first heading, got\n%s", out)
	}
}

func TestEmpty(t *testing.T) {
	pp, buf := newPrinter(false)
	pp.Tasks()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestReport(t *testing.T) {
	pp, buf := newPrinter(false)
	pp.Report(app.ReportResult{Since: today.Add(-time.Hour), Until: today}, "1h")
	if !strings.Contains(buf.String(), "No completed tasks") {
		t.Fatalf("expected empty report message, got %q", buf.String())
	}

	buf.Reset()
	day := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)
	pp.Report(app.ReportResult{
		Since: day, Until: today, Total: 1,
		Days: []app.ReportDay{{Day: day, Entries: []history.Entry{{Text: "ship", CompletedAt: day.Add(10 * time.Hour)}}}},
	}, "1d")
	if !strings.Contains(buf.String(), "Sun Oct 18") || !strings.Contains(buf.String(), "✘ ship") {
		t.Fatalf("unexpected report\n%s", buf.String())
	}
}

func TestAgenda(t *testing.T) {
	pp, buf := newPrinter(false)
	pp.Agenda(app.AgendaResult{
		From: today,
		Days: []app.AgendaDay{
			{Day: time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), Tasks: []task.Task{{Text: "today", Difficulty: 2, Deadline: task.Deadline{Month: time.October, Day: 19}}}},
			{Day: time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)},
		},
	})
	out := buf.String()
	if !strings.Contains(out, "19 M  ◆ today") || !strings.Contains(out, "20 T\n") {
		t.Fatalf("unexpected agenda\n%s", out)
	}
}

func TestCalendarHelpers(t *testing.T) {
	if DaysIn(time.Date(2028, time.February, 10, 0, 0, 0, 0, time.UTC)) != 29 {
		t.Fatal("expected 29 days in February 2028")
	}
	if StartDay(today) != time.Thursday {
		t.Fatalf("expected October 2026 to start on Thursday, got %s", StartDay(today))
	}
	if got := NextMonth(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)); got.Month() != time.January || got.Year() != 2027 {
		t.Fatalf("unexpected next month %v", got)
	}
}
