package pick

import (
	"errors"
	"testing"

	"tableflip.dev/tick/pkg/task"
)

func fixture() []task.Task {
	return task.Parse("- [ ] water plants\n- [ ] write report\n- [ ] call mom\n- [ ] call mom\n")
}

func TestTask(t *testing.T) {
	tasks := fixture()

	tests := []struct {
		name  string
		query string
		want  string
		err   error
	}{
		{name: "exact id", query: tasks[1].ID, want: "write report"},
		{name: "id prefix", query: tasks[0].ID[:6], want: "water plants"},
		{name: "exact text", query: "Write  Report", want: "write report"},
		{name: "fuzzy", query: "wtrpl", want: "water plants"},
		{name: "duplicate text", query: "call mom", err: ErrAmbiguous},
		{name: "no match", query: "zzzz", err: ErrNoMatch},
		{name: "empty", query: "  ", err: ErrNoQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Task(tasks, tt.query)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Text != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got.Text)
			}
		})
	}
}

func TestAmbiguousErrorListsMatches(t *testing.T) {
	_, err := Task(fixture(), "call mom")
	var amb *AmbiguousError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguousError, got %T", err)
	}
	if len(amb.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(amb.Matches))
	}
	if amb.Matches[0].ID == amb.Matches[1].ID {
		t.Fatalf("expected duplicate lines to carry distinct ids")
	}
}

func TestSection(t *testing.T) {
	sections := []string{"Work", "Home"}
	if s, ok := Section(sections, "home"); !ok || s != "Home" {
		t.Fatalf("expected Home, got %q %v", s, ok)
	}
	if _, ok := Section(sections, "Garden"); ok {
		t.Fatalf("expected no match")
	}
}
