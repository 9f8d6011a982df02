package teaui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/routine"
	"tableflip.dev/tick/pkg/store"
)

var today = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

const fixture = "- [ ] loose\n## Work\n- [ ] a\n  - [ ] b\n## Home\n- [x] c\n"

func newModel(t *testing.T, text string) (Model, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	if err := mem.Write(context.Background(), app.ActiveKey, text); err != nil {
		t.Fatalf("seed: %v", err)
	}
	m := New(&app.Session{Store: mem})
	m.now = func() time.Time { return today }
	next, _ := m.Update(m.load()())
	return next.(Model), mem
}

func keyMsg(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	}
	r := []rune(key)[0]
	return tea.KeyPressMsg{Code: r, Text: key}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func stored(t *testing.T, mem *store.Memory) string {
	t.Helper()
	text, _, err := mem.Read(context.Background(), app.ActiveKey)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return text
}

func stripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestLoadBuildsPanes(t *testing.T) {
	m, _ := newModel(t, fixture)

	var titles []string
	for _, it := range m.secList.Items() {
		titles = append(titles, it.(sectionItem).Title())
	}
	want := "All (4)|(top) (1)|Work (2)|Home (1)"
	if got := strings.Join(titles, "|"); got != want {
		t.Fatalf("expected sections %q, got %q", want, got)
	}
	if n := len(m.taskList.Items()); n != 4 {
		t.Fatalf("expected 4 tasks, got %d", n)
	}
}

func TestSectionSelectionFiltersTasks(t *testing.T) {
	m, _ := newModel(t, fixture)
	m = press(m, "h", "j", "j")
	if s := m.currentSection(); s == nil || s.name != "Work" {
		t.Fatalf("expected Work selected, got %+v", s)
	}
	if n := len(m.taskList.Items()); n != 2 {
		t.Fatalf("expected 2 tasks in Work, got %d", n)
	}
}

func TestToggleThenDelete(t *testing.T) {
	m, mem := newModel(t, fixture)
	m = press(m, "j", "x")
	if want := "- [ ] loose\n## Work\n- [x] a\n  - [x] b\n## Home\n- [x] c\n"; stored(t, mem) != want {
		t.Fatalf("expected %q, got %q", want, stored(t, mem))
	}
	if it := m.currentTask(); it == nil || it.t.Text != "a" {
		t.Fatalf("expected selection to stay on a, got %+v", it)
	}

	m = press(m, "d")
	if want := "- [ ] loose\n## Work\n- [x] a\n  - [x] b\n## Home\n- [x] c\n"; stored(t, mem) != want {
		t.Fatalf("expected a single d to wait, got %q", stored(t, mem))
	}
	m = press(m, "d")
	if want := "- [ ] loose\n## Work\n## Home\n- [x] c\n"; stored(t, mem) != want {
		t.Fatalf("expected %q, got %q", want, stored(t, mem))
	}
	if n := len(m.taskList.Items()); n != 2 {
		t.Fatalf("expected 2 tasks left, got %d", n)
	}
}

func TestAddGoesToSelectedSection(t *testing.T) {
	m, mem := newModel(t, fixture)
	m = press(m, "h", "j", "j", "l", "o")
	if m.mode != modeInsert || m.action != actionAdd {
		t.Fatalf("expected insert mode for add, got %v/%v", m.mode, m.action)
	}
	m.input.SetValue("new thing")
	m = press(m, "enter")

	want := "- [ ] loose\n## Work\n- [ ] a\n  - [ ] b\n- [ ] new thing\n## Home\n- [x] c\n"
	if got := stored(t, mem); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if it := m.currentTask(); it == nil || it.t.Text != "new thing" {
		t.Fatalf("expected the new task selected, got %+v", it)
	}
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after enter")
	}
}

func TestSubtaskAndEdit(t *testing.T) {
	m, mem := newModel(t, "- [ ] a\n")
	m = press(m, "a")
	m.input.SetValue("child")
	m = press(m, "enter")
	if want := "- [ ] a\n  - [ ] child\n"; stored(t, mem) != want {
		t.Fatalf("expected %q, got %q", want, stored(t, mem))
	}

	m = press(m, "i")
	if m.input.Value() != "child" {
		t.Fatalf("expected edit to start from the task text, got %q", m.input.Value())
	}
	m.input.SetValue("kid")
	m = press(m, "enter")
	if want := "- [ ] a\n  - [ ] kid\n"; stored(t, mem) != want {
		t.Fatalf("expected %q, got %q", want, stored(t, mem))
	}
}

func TestTagEdits(t *testing.T) {
	m, mem := newModel(t, "- [ ] read\n")
	m = press(m, "@")
	m.input.SetValue("10/20")
	m = press(m, "enter", "e")
	m.input.SetValue("45m")
	m = press(m, "enter", "s")
	if want := "- [ ] read (45m) (@10/20) (★3)\n"; stored(t, mem) != want {
		t.Fatalf("expected %q, got %q", want, stored(t, mem))
	}

	m = press(m, "@")
	m.input.SetValue("13/40")
	m = press(m, "enter")
	if !m.failed || !strings.HasPrefix(m.status, "ERR: ") {
		t.Fatalf("expected an error status, got %q", m.status)
	}
}

func TestShiftReorders(t *testing.T) {
	m, mem := newModel(t, "- [ ] a\n  - [ ] a1\n- [ ] b\n")
	m = press(m, "J")
	if want := "- [ ] b\n- [ ] a\n  - [ ] a1\n"; stored(t, mem) != want {
		t.Fatalf("expected %q, got %q", want, stored(t, mem))
	}
	if it := m.currentTask(); it == nil || it.t.Text != "a" {
		t.Fatalf("expected a to stay selected, got %+v", it)
	}
	m = press(m, "K")
	if want := "- [ ] a\n  - [ ] a1\n- [ ] b\n"; stored(t, mem) != want {
		t.Fatalf("expected %q, got %q", want, stored(t, mem))
	}
	m = press(m, "K")
	if m.status != "Nothing to move past" {
		t.Fatalf("expected nothing to move past, got %q", m.status)
	}
}

func TestMoveToSection(t *testing.T) {
	m, mem := newModel(t, "- [ ] a\n")
	m = press(m, ">")
	m.input.SetValue("Later")
	m = press(m, "enter")
	if want := "## Later\n- [ ] a\n"; stored(t, mem) != want {
		t.Fatalf("expected %q, got %q", want, stored(t, mem))
	}
}

func TestFinishCommand(t *testing.T) {
	m, mem := newModel(t, "- [x] shipped\n- [ ] open\n")
	m = press(m, ":")
	if m.mode != modeCommand {
		t.Fatalf("expected command mode")
	}
	m.input.SetValue("finish")
	m = press(m, "enter")
	if want := "- [ ] open"; stored(t, mem) != want {
		t.Fatalf("expected %q, got %q", want, stored(t, mem))
	}
	if m.status != "Archived 1, 1 open tasks carried over" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if n := len(m.taskList.Items()); n != 1 {
		t.Fatalf("expected 1 task after finish, got %d", n)
	}
}

func TestEscapeCancelsInsert(t *testing.T) {
	m, mem := newModel(t, "- [ ] a\n")
	m = press(m, "o")
	m.input.SetValue("never")
	m = press(m, "esc")
	if m.mode != modeNormal || m.status != "Cancelled" {
		t.Fatalf("expected cancel, got mode %v status %q", m.mode, m.status)
	}
	if stored(t, mem) != "- [ ] a\n" {
		t.Fatalf("expected no write, got %q", stored(t, mem))
	}
}

func TestOutsideChangeReloads(t *testing.T) {
	m, _ := newModel(t, fixture)
	next, _ := m.Update(changedMsg{document.New("- [ ] z\n")})
	m = next.(Model)
	if n := len(m.taskList.Items()); n != 1 {
		t.Fatalf("expected 1 task after reload, got %d", n)
	}
	if m.status != "Reloaded after outside edit" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestViewRendersPanesAndDetail(t *testing.T) {
	m, _ := newModel(t, "## Work\n- [ ] taxes (2h) (@10/19)\n")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	view := stripANSI(m.View())
	for _, want := range []string{"Sections", "Tasks", "Work (1)", "◆ taxes", "estimate", "[NORMAL]"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}

	m = press(m, "?")
	if view := stripANSI(m.View()); !strings.Contains(view, "reorder") {
		t.Fatalf("expected help text, got:\n%s", view)
	}
}

func TestLoadRollsOverRoutines(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.Write(ctx, app.ActiveKey, "- [ ] a\n"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	session := &app.Session{Store: mem}
	if _, err := session.AddRoutine(ctx, routine.Routine{Text: "stretch", Type: routine.Daily}); err != nil {
		t.Fatalf("add routine: %v", err)
	}
	m := New(session)
	m.now = func() time.Time { return today }
	m.rollover = true

	for i := 0; i < 2; i++ {
		next, _ := m.Update(m.load()())
		m = next.(Model)
	}
	if m.failed {
		t.Fatalf("unexpected failure %q", m.status)
	}
	if n := strings.Count(stored(t, mem), "- [ ] stretch (daily:"); n != 1 {
		t.Fatalf("expected one routine line, got %d in %q", n, stored(t, mem))
	}
	if n := len(m.doc.Tasks()); n != 2 {
		t.Fatalf("expected 2 tasks after rollover, got %d", n)
	}
}
