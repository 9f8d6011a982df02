// Package detail renders the panel describing the selected task.
package detail

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/tick/pkg/glyph"
	"tableflip.dev/tick/pkg/runner/tea/internal/theme"
	"tableflip.dev/tick/pkg/task"
)

// Lines returns the label/value rows shown for t.
func Lines(t task.Task, today time.Time) [][2]string {
	rows := [][2]string{
		{"id", t.ID},
		{"status", string(t.Status)},
	}
	if t.Section != "" {
		rows = append(rows, [2]string{"section", t.Section})
	}
	if t.Estimate != "" {
		rows = append(rows, [2]string{"estimate", t.Estimate})
	}
	if !t.Deadline.IsZero() {
		when := t.Deadline.Resolve(today).Format("Mon Jan 2")
		rows = append(rows, [2]string{"deadline", fmt.Sprintf("%s (%s)", t.Deadline, when)})
	}
	rows = append(rows, [2]string{"difficulty", strings.Repeat(glyph.Difficulty.String(), t.Difficulty)})
	if t.IsRoutine() {
		rows = append(rows, [2]string{"routine", t.RoutineType + ":" + t.RoutineID})
	}
	rows = append(rows, [2]string{"line", fmt.Sprintf("%d", t.LineNumber)})
	return rows
}

// View renders the panel for t.
func View(th theme.Theme, t task.Task, today time.Time) string {
	var b strings.Builder
	for i, row := range Lines(t, today) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(th.Task.Label.Render(fmt.Sprintf("%-10s", row[0])))
		b.WriteString(" ")
		b.WriteString(row[1])
	}
	return th.Task.Panel.Render(b.String())
}
