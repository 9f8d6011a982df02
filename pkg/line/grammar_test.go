package line

import "testing"

func TestClassify(t *testing.T) {
	tests := map[string]struct {
		raw    string
		kind   Kind
		indent int
		done   bool
		body   string
		title  string
	}{
		"todo":            {raw: "- [ ] buy milk", kind: Task, body: "buy milk"},
		"done lower":      {raw: "- [x] buy milk", kind: Task, done: true, body: "buy milk"},
		"done upper":      {raw: "    - [X] nested", kind: Task, indent: 2, done: true, body: "nested"},
		"odd indent":      {raw: "   - [ ] three", kind: Task, indent: 1, body: "three"},
		"tab indent":      {raw: "\t- [ ] tabbed", kind: Task, indent: 1, body: "tabbed"},
		"heading":         {raw: "## Work", kind: Heading, title: "Work"},
		"deep heading":    {raw: "#### Deep  ", kind: Heading, title: "Deep"},
		"hash no space":   {raw: "#tag", kind: Other},
		"bullet":          {raw: "- note", kind: Other},
		"missing space":   {raw: "- [ ]x", kind: Other},
		"wrong mark":      {raw: "- [-] maybe", kind: Other},
		"blank":           {raw: "", kind: Other},
		"only whitespace": {raw: "   ", kind: Other},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			l := Classify(tc.raw)
			if l.Kind != tc.kind {
				t.Fatalf("expected %s, got %s", tc.kind, l.Kind)
			}
			if l.Raw != tc.raw {
				t.Fatalf("expected raw kept, got %q", l.Raw)
			}
			if l.Indent != tc.indent {
				t.Fatalf("expected indent %d, got %d", tc.indent, l.Indent)
			}
			if l.Done() != tc.done {
				t.Fatalf("expected done %v, got %v", tc.done, l.Done())
			}
			if l.Body != tc.body {
				t.Fatalf("expected body %q, got %q", tc.body, l.Body)
			}
			if l.Title != tc.title {
				t.Fatalf("expected title %q, got %q", tc.title, l.Title)
			}
		})
	}
}

func TestSplitFoldsCRLF(t *testing.T) {
	lines := Split("- [ ] a\r\n- [x] b\r\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Body != "a" || !lines[1].Done() || lines[2].Raw != "" {
		t.Fatalf("unexpected lines %+v", lines)
	}
}

func TestWithMarkKeepsRest(t *testing.T) {
	l := Classify("  - [ ] thing (★3)")
	done := l.WithMark(true)
	if done.Raw != "  - [x] thing (★3)" {
		t.Fatalf("unexpected raw %q", done.Raw)
	}
	if back := done.WithMark(false); back.Raw != l.Raw {
		t.Fatalf("expected %q, got %q", l.Raw, back.Raw)
	}
	upper := Classify("- [X] keep")
	if upper.WithMark(true).Raw != "- [X] keep" {
		t.Fatalf("expected already-done line untouched")
	}
}

func TestShift(t *testing.T) {
	l := Classify("    - [ ] deep")
	if got := l.Shift(-2).Raw; got != "- [ ] deep" {
		t.Fatalf("unexpected raw %q", got)
	}
	if got := l.Shift(1).Raw; got != "      - [ ] deep" {
		t.Fatalf("unexpected raw %q", got)
	}
	if got := l.Shift(-5).Indent; got != 0 {
		t.Fatalf("expected indent clamped at 0, got %d", got)
	}
	note := Classify("  free text")
	if note.Shift(3).Raw != note.Raw {
		t.Fatalf("expected non-task line untouched")
	}
}

func TestFormat(t *testing.T) {
	if got := Format(2, false, "x"); got != "    - [ ] x" {
		t.Fatalf("unexpected line %q", got)
	}
	if got := Format(0, true, "y"); got != "- [x] y" {
		t.Fatalf("unexpected line %q", got)
	}
}
