package document

import (
	"errors"
	"strings"
	"testing"

	"tableflip.dev/tick/pkg/task"
)

func idOf(t *testing.T, d Document, text string) string {
	t.Helper()
	for _, tk := range d.Tasks() {
		if tk.Text == text {
			return tk.ID
		}
	}
	t.Fatalf("no task %q in %q", text, d.String())
	return ""
}

func apply(t *testing.T, d Document, m Mutation) Document {
	t.Helper()
	next, _, err := m.Apply(d)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", m.Name(), err)
	}
	return next
}

func TestStringIsLossless(t *testing.T) {
	texts := []string{
		"",
		"\n",
		"# head\n\nsome prose (with parens)\n- [ ] a (★3)\n   - [X] odd indent\n\tnote\n",
		"no trailing newline",
	}
	for _, text := range texts {
		if got := New(text).String(); got != text {
			t.Fatalf("expected %q, got %q", text, got)
		}
	}
}

func TestCascadingToggle(t *testing.T) {
	d := New("- [ ] A\n  - [ ] B\n  - [ ] C\nD")
	next, changed, err := Toggle{ID: idOf(t, d, "A")}.Apply(d)
	if err != nil || !changed {
		t.Fatalf("expected change, got %v %v", changed, err)
	}
	want := "- [x] A\n  - [x] B\n  - [x] C\nD"
	if next.String() != want {
		t.Fatalf("expected %q, got %q", want, next.String())
	}

	back := apply(t, next, Toggle{ID: idOf(t, next, "A")})
	if back.String() != d.String() {
		t.Fatalf("expected toggle back to original, got %q", back.String())
	}
}

func TestToggleDescendantStopsAtNote(t *testing.T) {
	d := New("- [ ] A\n  note\n  - [ ] B")
	next := apply(t, d, Toggle{ID: idOf(t, d, "A")})
	if next.String() != "- [x] A\n  note\n  - [ ] B" {
		t.Fatalf("expected block to end at note, got %q", next.String())
	}
}

func TestDeleteBoundary(t *testing.T) {
	d := New("- [ ] A\n  - [ ] B\n- [ ] C")
	next := apply(t, d, Delete{ID: idOf(t, d, "A")})
	if next.String() != "- [ ] C" {
		t.Fatalf("expected only C, got %q", next.String())
	}
	tasks := next.Tasks()
	if len(tasks) != 1 || tasks[0].LineNumber != 1 {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
}

func TestStaleIDIsNoop(t *testing.T) {
	d := New("- [ ] A\n")
	muts := []Mutation{
		Toggle{ID: "missing"},
		SetDeadline{ID: "missing", Deadline: task.Deadline{Month: 1, Day: 2}},
		CycleDifficulty{ID: "missing"},
		SetDifficulty{ID: "missing", Difficulty: 3},
		SetEstimate{ID: "missing", Estimate: "1h"},
		MarkRoutine{ID: "missing", Type: task.Daily, RoutineID: "r"},
		EditText{ID: "missing", Text: "x"},
		InsertSubtask{ParentID: "missing", Text: "x"},
		Delete{ID: "missing"},
		Move{DragID: "missing", DropID: idOf(t, d, "A")},
		MoveToSection{ID: "missing", Section: "Later"},
	}
	for _, m := range muts {
		next, changed, err := m.Apply(d)
		if err != nil || changed || next.String() != d.String() {
			t.Fatalf("%s: expected no-op, got changed=%v err=%v", m.Name(), changed, err)
		}
	}
}

func TestSetDeadlineSingleTag(t *testing.T) {
	d := New("- [ ] pay rent (@3/10) (★3)")
	next := apply(t, d, SetDeadline{ID: idOf(t, d, "pay rent"), Deadline: task.Deadline{Month: 4, Day: 1}})
	if next.String() != "- [ ] pay rent (@4/1) (★3)" {
		t.Fatalf("unexpected line %q", next.String())
	}
	if n := strings.Count(next.String(), "(@"); n != 1 {
		t.Fatalf("expected one deadline tag, got %d", n)
	}
	cleared := apply(t, next, SetDeadline{ID: idOf(t, next, "pay rent")})
	if cleared.String() != "- [ ] pay rent (★3)" {
		t.Fatalf("unexpected cleared line %q", cleared.String())
	}
}

func TestDifficulty(t *testing.T) {
	d := New("- [ ] lift (★5) (daily:gym)")
	id := idOf(t, d, "lift")

	next := apply(t, d, CycleDifficulty{ID: id})
	if next.String() != "- [ ] lift (★1) (daily:gym)" {
		t.Fatalf("expected wrap to 1 with routine kept last, got %q", next.String())
	}
	if tk, _ := next.Find(id); tk.Difficulty != 1 {
		t.Fatalf("expected difficulty 1, got %d", tk.Difficulty)
	}

	once, changed, _ := SetDifficulty{ID: id, Difficulty: 3}.Apply(d)
	twice, changedAgain, _ := SetDifficulty{ID: id, Difficulty: 3}.Apply(once)
	if !changed || changedAgain {
		t.Fatalf("expected first set to change and second to be a no-op")
	}
	if once.String() != twice.String() {
		t.Fatalf("expected identical output, got %q and %q", once.String(), twice.String())
	}

	plain := New("- [ ] nap")
	if got := apply(t, plain, CycleDifficulty{ID: idOf(t, plain, "nap")}).String(); got != "- [ ] nap (★3)" {
		t.Fatalf("expected default 2 to cycle to 3, got %q", got)
	}

	if _, _, err := (SetDifficulty{ID: id, Difficulty: 6}).Apply(d); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}
}

func TestInsertSubtask(t *testing.T) {
	d := New("- [ ] parent\n  - [ ] existing\n- [ ] next")
	next := apply(t, d, InsertSubtask{ParentID: idOf(t, d, "parent"), Text: "  new  child "})
	want := "- [ ] parent\n  - [ ] new child\n  - [ ] existing\n- [ ] next"
	if next.String() != want {
		t.Fatalf("expected %q, got %q", want, next.String())
	}
	if _, _, err := (InsertSubtask{ParentID: idOf(t, d, "parent"), Text: "   "}).Apply(d); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestAddTask(t *testing.T) {
	d := New("- [ ] a\n\n")
	next := apply(t, d, AddTask{Text: "b"})
	if next.String() != "- [ ] a\n- [ ] b\n\n" {
		t.Fatalf("unexpected document %q", next.String())
	}
	empty := apply(t, New(""), AddTask{Text: "first"})
	if empty.String() != "- [ ] first\n" {
		t.Fatalf("unexpected document %q", empty.String())
	}
	sectioned := apply(t, New("# Work\n- [ ] a\n# Home\n- [ ] b\n"), AddTask{Text: "c", Section: "Work"})
	if sectioned.String() != "# Work\n- [ ] a\n- [ ] c\n# Home\n- [ ] b\n" {
		t.Fatalf("unexpected document %q", sectioned.String())
	}
}

func TestEditTextKeepsTags(t *testing.T) {
	d := New("  - [x] old name (30m) (@3/10) (★4)")
	id := idOf(t, d, "old name")
	next := apply(t, d, EditText{ID: id, Text: "new name"})
	if next.String() != "  - [x] new name (30m) (@3/10) (★4)" {
		t.Fatalf("unexpected line %q", next.String())
	}
	for _, text := range []string{"", "   ", "old name"} {
		if _, changed, _ := (EditText{ID: id, Text: text}).Apply(d); changed {
			t.Fatalf("expected no-op for %q", text)
		}
	}
}

func TestSetEstimate(t *testing.T) {
	d := New("- [ ] read (@5/2)")
	id := idOf(t, d, "read")
	next := apply(t, d, SetEstimate{ID: id, Estimate: "45m"})
	if next.String() != "- [ ] read (45m) (@5/2)" {
		t.Fatalf("unexpected line %q", next.String())
	}
	if _, _, err := (SetEstimate{ID: id, Estimate: "(bad)"}).Apply(d); !errors.Is(err, ErrInvalidEstimate) {
		t.Fatalf("expected ErrInvalidEstimate, got %v", err)
	}
}

func TestMarkRoutine(t *testing.T) {
	d := New("- [ ] water plants (★3)")
	next := apply(t, d, MarkRoutine{ID: idOf(t, d, "water plants"), Type: task.Weekly, RoutineID: "01abc"})
	if next.String() != "- [ ] water plants (★3) (weekly:01abc)" {
		t.Fatalf("unexpected line %q", next.String())
	}
	if _, _, err := (MarkRoutine{ID: "x", Type: "monthly", RoutineID: "r"}).Apply(d); !errors.Is(err, ErrInvalidRoutine) {
		t.Fatalf("expected ErrInvalidRoutine, got %v", err)
	}
}

func TestMove(t *testing.T) {
	const text = "- [ ] A\n  - [ ] A1\n- [ ] B\n    - [ ] B1\n- [ ] C"
	d := New(text)

	t.Run("before", func(t *testing.T) {
		next := apply(t, d, Move{DragID: idOf(t, d, "C"), DropID: idOf(t, d, "A1"), Place: Before})
		want := "- [ ] A\n  - [ ] C\n  - [ ] A1\n- [ ] B\n    - [ ] B1"
		if next.String() != want {
			t.Fatalf("expected %q, got %q", want, next.String())
		}
	})

	t.Run("after skips drop descendants", func(t *testing.T) {
		next := apply(t, d, Move{DragID: idOf(t, d, "A"), DropID: idOf(t, d, "B"), Place: After})
		want := "- [ ] B\n    - [ ] B1\n- [ ] A\n  - [ ] A1\n- [ ] C"
		if next.String() != want {
			t.Fatalf("expected %q, got %q", want, next.String())
		}
	})

	t.Run("reindents block", func(t *testing.T) {
		next := apply(t, d, Move{DragID: idOf(t, d, "A"), DropID: idOf(t, d, "B1"), Place: After})
		want := "- [ ] B\n    - [ ] B1\n    - [ ] A\n      - [ ] A1\n- [ ] C"
		if next.String() != want {
			t.Fatalf("expected %q, got %q", want, next.String())
		}
	})

	t.Run("into own descendant", func(t *testing.T) {
		_, changed, err := Move{DragID: idOf(t, d, "B"), DropID: idOf(t, d, "B1")}.Apply(d)
		if changed || err != nil {
			t.Fatalf("expected no-op, got %v %v", changed, err)
		}
	})

	t.Run("same id", func(t *testing.T) {
		_, changed, _ := Move{DragID: idOf(t, d, "C"), DropID: idOf(t, d, "C")}.Apply(d)
		if changed {
			t.Fatalf("expected no-op")
		}
	})

	t.Run("already in place", func(t *testing.T) {
		_, changed, _ := Move{DragID: idOf(t, d, "A"), DropID: idOf(t, d, "B"), Place: Before}.Apply(d)
		if changed {
			t.Fatalf("expected no change when block is already there")
		}
	})
}

func TestMoveToSection(t *testing.T) {
	d := New("# Today\n- [ ] root\n    - [ ] deep\n      - [ ] deeper\n- [ ] stay\n")

	next := apply(t, d, MoveToSection{ID: idOf(t, d, "deep"), Section: "Later"})
	want := "# Today\n- [ ] root\n- [ ] stay\n\n## Later\n- [ ] deep\n  - [ ] deeper\n"
	if next.String() != want {
		t.Fatalf("expected %q, got %q", want, next.String())
	}
	moved, _ := next.Find(idOf(t, next, "deep"))
	if moved.Indent != 0 || moved.Section != "Later" {
		t.Fatalf("unexpected moved task %+v", moved)
	}

	t.Run("existing section", func(t *testing.T) {
		d := New("# A\n- [ ] a1\n\n# B\n- [ ] b1\n\n# C\n")
		next := apply(t, d, MoveToSection{ID: idOf(t, d, "a1"), Section: "B"})
		want := "# A\n\n# B\n- [ ] b1\n- [ ] a1\n\n# C\n"
		if next.String() != want {
			t.Fatalf("expected %q, got %q", want, next.String())
		}
	})

	t.Run("empty name", func(t *testing.T) {
		if _, _, err := (MoveToSection{ID: idOf(t, d, "root"), Section: " "}).Apply(d); !errors.Is(err, ErrEmptySection) {
			t.Fatalf("expected ErrEmptySection, got %v", err)
		}
	})
}

func TestBlock(t *testing.T) {
	d := New("- [ ] A\n  - [ ] B\n    - [x] C\n- [ ] D")
	block := d.Block(idOf(t, d, "A"))
	if len(block) != 3 || block[2].Text != "C" {
		t.Fatalf("unexpected block %+v", block)
	}
	if d.Block("missing") != nil {
		t.Fatalf("expected nil block for missing id")
	}
}

func TestSetEstimateRejectsOtherTags(t *testing.T) {
	d := New("- [ ] read")
	id := idOf(t, d, "read")
	for _, est := range []string{"@4/1", "★3", "daily:x"} {
		if _, changed, err := (SetEstimate{ID: id, Estimate: est}).Apply(d); !errors.Is(err, ErrInvalidEstimate) || changed {
			t.Fatalf("expected ErrInvalidEstimate for %q, got %v (changed %v)", est, err, changed)
		}
	}
	next := apply(t, d, SetEstimate{ID: id, Estimate: "@home"})
	if next.String() != "- [ ] read (@home)" {
		t.Fatalf("unexpected line %q", next.String())
	}
	if got := next.Tasks()[0]; got.Estimate != "@home" || !got.Deadline.IsZero() {
		t.Fatalf("expected estimate @home, got %+v", got)
	}
}

func TestClearingOnlyTagKeepsTask(t *testing.T) {
	d := New("- [ ] (@3/10)\n- [ ] b")
	id := d.Tasks()[0].ID
	next, changed, err := (SetDeadline{ID: id}).Apply(d)
	if err != nil || changed {
		t.Fatalf("expected no-op, got changed %v err %v", changed, err)
	}
	if next.String() != d.String() || len(next.Tasks()) != 2 {
		t.Fatalf("expected both tasks kept, got %q", next.String())
	}
}
