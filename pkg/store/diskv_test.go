package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPersistenceReadWrite(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx := context.Background()

	if text, ok, err := p.Read(ctx, "missing.md"); err != nil || ok || text != "" {
		t.Fatalf("expected missing key to read empty, got %q %v %v", text, ok, err)
	}

	if err := p.Write(ctx, "current_active_todo.md", "- [ ] a\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	text, ok, err := p.Read(ctx, "current_active_todo.md")
	if err != nil || !ok || text != "- [ ] a\n" {
		t.Fatalf("unexpected read %q %v %v", text, ok, err)
	}

	if err := p.WriteNested(ctx, []string{"2026", "10"}, "2026-10-19_21-04-05.md", "snap"); err != nil {
		t.Fatalf("write nested: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "2026", "10", "2026-10-19_21-04-05.md")); err != nil {
		t.Fatalf("expected nested file on disk: %v", err)
	}
	text, ok, err = p.ReadNested(ctx, []string{"2026", "10"}, "2026-10-19_21-04-05.md")
	if err != nil || !ok || text != "snap" {
		t.Fatalf("unexpected nested read %q %v %v", text, ok, err)
	}

	names, err := p.List(ctx, []string{"2026", "10"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 1 || names[0] != "2026-10-19_21-04-05.md" {
		t.Fatalf("unexpected names %v", names)
	}
	top, err := p.List(ctx, nil)
	if err != nil {
		t.Fatalf("list root: %v", err)
	}
	if len(top) != 1 || top[0] != "current_active_todo.md" {
		t.Fatalf("unexpected root names %v", top)
	}
}

func TestPersistenceRejectsBadKeys(t *testing.T) {
	p, err := Load(StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"", "..", "a/b", ".tmp"} {
		err := p.Write(ctx, key, "x")
		if !errors.Is(err, ErrWrite) || !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("expected invalid key error for %q, got %v", key, err)
		}
	}
	if _, _, err := p.ReadNested(ctx, []string{"..", "etc"}, "passwd"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected invalid key error, got %v", err)
	}
}

func TestMemoryFailWrites(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	boom := errors.New("disk full")

	m.FailWrites("routines.json", boom)
	err := m.Write(ctx, "routines.json", "[]")
	var werr *WriteError
	if !errors.As(err, &werr) || werr.Key != "routines.json" || !errors.Is(err, boom) {
		t.Fatalf("expected write error wrapping boom, got %v", err)
	}
	if _, ok, _ := m.Read(ctx, "routines.json"); ok {
		t.Fatal("expected failed write to leave key absent")
	}

	m.FailWrites("routines.json", nil)
	if err := m.Write(ctx, "routines.json", "[]"); err != nil {
		t.Fatalf("expected write to succeed after clearing failure, got %v", err)
	}
}

func TestMemoryWatch(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := m.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := m.WriteNested(ctx, []string{"2026"}, "x.md", "x"); err != nil {
		t.Fatalf("write: %v", err)
	}
	ev := <-ch
	if ev.Type != EventKeyChanged || ev.Key != "2026/x.md" {
		t.Fatalf("unexpected event %+v", ev)
	}
	cancel()
	for range ch {
	}
}
