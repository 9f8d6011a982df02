package glyph

import (
	"testing"
	"time"

	"tableflip.dev/tick/pkg/task"
)

func TestFor(t *testing.T) {
	today := time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		task task.Task
		want Bullet
	}{
		{"open", task.Task{Status: task.Todo}, Todo},
		{"done beats overdue", task.Task{Status: task.Done, Deadline: task.Deadline{Month: time.October, Day: 1}}, Done},
		{"overdue", task.Task{Status: task.Todo, Deadline: task.Deadline{Month: time.October, Day: 1}}, Overdue},
		{"due today", task.Task{Status: task.Todo, Deadline: task.Deadline{Month: time.October, Day: 19}}, DueToday},
		{"upcoming", task.Task{Status: task.Todo, Deadline: task.Deadline{Month: time.October, Day: 25}}, Todo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := For(tt.task, today); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want.Glyph().Meaning, got.Glyph().Meaning)
			}
		})
	}
}

func TestEveryBulletHasAGlyph(t *testing.T) {
	for b := Todo; b <= Routine; b++ {
		if b.String() == "" {
			t.Fatalf("expected a symbol for bullet %d", b)
		}
	}
}
