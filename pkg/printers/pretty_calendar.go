package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/tick/pkg/app"
)

// Agenda prints each day of the window with the tasks due that day. Sundays
// are underlined and today is bold.
func (pp *PrettyPrint) Agenda(res app.AgendaResult) {
	w := pp.out()
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)
	i := color.New(color.Italic)

	if len(res.Overdue) > 0 {
		_, _ = color.New(color.FgRed, color.Italic).Fprintln(w, "Overdue")
		pp.Tasks(res.Overdue...)
	}

	today := pp.today()
	for _, day := range res.Days {
		printer := p
		isToday := sameDay(day.Day, today)
		if isToday {
			printer = b
		}
		if day.Day.Weekday() == time.Sunday {
			printer = s
			if isToday {
				printer = bs
			}
		}
		_, _ = printer.Fprintf(w, "%2d %s", day.Day.Day(), day.Day.Weekday().String()[0:1])
		if len(day.Tasks) == 0 {
			_, _ = fmt.Fprintln(w, "")
			continue
		}
		for n, t := range day.Tasks {
			if n == 0 {
				_, _ = fmt.Fprint(w, "  ")
			} else {
				_, _ = fmt.Fprint(w, "      ")
			}
			pp.task(t)
		}
	}
	if len(res.Days) == 0 {
		_, _ = i.Fprintln(w, "no days")
	}
	_, _ = fmt.Fprintln(w, "")
}

const width = len("11 12 13 14 15 16 17") // an example week

// PrintMonthCount prints a month grid where days with a non-zero count are
// highlighted.
func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	w := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(w, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

// ReportMonths prints one month grid per month the report touches.
func (pp *PrettyPrint) ReportMonths(result app.ReportResult) {
	if len(result.Days) == 0 {
		return
	}
	first := result.Days[0].Day
	month := time.Date(first.Year(), first.Month(), 1, 1, 0, 0, 0, first.Location())
	last := result.Days[len(result.Days)-1].Day
	for !month.After(last) {
		count := make([]int, DaysIn(month))
		for _, day := range result.Days {
			if day.Day.Year() == month.Year() && day.Day.Month() == month.Month() {
				count[day.Day.Day()-1] += len(day.Entries)
			}
		}
		pp.PrintMonthCount(month, count)
		month = NextMonth(month)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
