package clip

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/store"
	"tableflip.dev/tick/pkg/task"
)

func TestCopy(t *testing.T) {
	ctx := context.Background()
	text := "# Work\n- [ ] a\n  - [ ] b\n- [ ] c\n"
	mem := store.NewMemory()
	if err := mem.Write(ctx, app.ActiveKey, text); err != nil {
		t.Fatalf("seed: %v", err)
	}
	session := &app.Session{Store: mem}
	var got string
	write := func(s string) error { got = s; return nil }

	var out bytes.Buffer
	c := Copy{Session: session, Write: write, Out: &out}
	if err := c.Do(ctx); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if got != text {
		t.Fatalf("expected %q, got %q", text, got)
	}

	a := task.Parse(text)[0]
	c.ID = a.ID
	if err := c.Do(ctx); err != nil {
		t.Fatalf("copy block: %v", err)
	}
	if want := "- [ ] a\n  - [ ] b\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	c.ID = "ffffffffffffffff"
	if err := c.Do(ctx); !errors.Is(err, app.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
