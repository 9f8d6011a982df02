package routine

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/routine"
	"tableflip.dev/tick/pkg/store"
)

func TestSchedule(t *testing.T) {
	tests := []struct {
		name string
		in   Schedule
		err  error
		want func(routine.Routine) bool
	}{{
		name: "daily default",
		in:   Schedule{},
		want: func(r routine.Routine) bool { return r.Type == routine.Daily && r.DeadlineRule == routine.DeadlineNone },
	}, {
		name: "weekly with deadline",
		in:   Schedule{Type: "weekly", On: "mon", Deadline: "friday"},
		want: func(r routine.Routine) bool {
			return *r.GenerateOn == time.Monday && r.DeadlineRule == routine.DeadlineWeekday && *r.DeadlineOn == time.Friday
		},
	}, {
		name: "deadline today",
		in:   Schedule{Deadline: "TODAY"},
		want: func(r routine.Routine) bool { return r.DeadlineRule == routine.DeadlineToday },
	}, {
		name: "weekly without day",
		in:   Schedule{Type: "weekly"},
		err:  routine.ErrMissingWeekday,
	}, {
		name: "monthly",
		in:   Schedule{Type: "monthly"},
		err:  routine.ErrInvalidType,
	}, {
		name: "bad weekday",
		in:   Schedule{Deadline: "someday"},
		err:  routine.ErrInvalidWeekday,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.in.Routine("stretch")
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.want(r) {
				t.Fatalf("unexpected routine %+v", r)
			}
		})
	}
}

func TestAddListPromoteRemove(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.Write(ctx, app.ActiveKey, "- [ ] water plants\n"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := &app.Session{Store: mem}

	var buf bytes.Buffer
	add := Add{Session: s, Text: "stretch", Out: &buf}
	if err := add.Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}

	tasks, _ := s.Tasks(ctx)
	promote := Promote{Session: s, TaskID: tasks[0].ID, Schedule: Schedule{Type: "weekly", On: "sunday"}, Out: &buf}
	if err := promote.Do(ctx); err != nil {
		t.Fatalf("promote: %v", err)
	}
	text, _ := s.Text(ctx)
	if !strings.HasPrefix(text, "- [ ] water plants (weekly:") {
		t.Fatalf("expected routine tag on promoted task, got %q", text)
	}

	buf.Reset()
	list := List{Session: s, Out: &buf}
	if err := list.Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(buf.String(), "stretch") || !strings.Contains(buf.String(), "weekly on Sunday") {
		t.Fatalf("unexpected listing\n%s", buf.String())
	}

	routines, _ := s.Routines(ctx)
	remove := Remove{Session: s, ID: routines[0].ID, Out: &buf}
	if err := remove.Do(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := remove.Do(ctx); !errors.Is(err, routine.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}
