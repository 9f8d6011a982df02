package detail

import (
	"testing"
	"time"

	"tableflip.dev/tick/pkg/task"
)

func TestLines(t *testing.T) {
	today := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	tk := task.Parse("## Work\n- [ ] taxes (2h) (@10/21) (★4)\n")[0]

	got := map[string]string{}
	for _, row := range Lines(tk, today) {
		got[row[0]] = row[1]
	}
	want := map[string]string{
		"id":         tk.ID,
		"status":     "todo",
		"section":    "Work",
		"estimate":   "2h",
		"deadline":   "10/21 (Wed Oct 21)",
		"difficulty": "★★★★",
		"line":       "2",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("expected %s %q, got %q", k, v, got[k])
		}
	}
	if _, ok := got["routine"]; ok {
		t.Fatalf("expected no routine row for a plain task")
	}
}
