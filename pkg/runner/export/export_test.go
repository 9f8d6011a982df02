package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/store"
)

func TestExportActiveDocument(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.Write(ctx, app.ActiveKey, "- [ ] a\n"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.md")
	var out bytes.Buffer
	e := Export{Session: &app.Session{Store: mem}, Path: path, Out: &out}
	if err := e.Do(ctx); err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "- [ ] a\n" {
		t.Fatalf("expected exported document, got %q", got)
	}
}

func TestExportSnapshot(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.Write(ctx, app.ActiveKey, "- [x] shipped\n"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	session := &app.Session{Store: mem}
	now := time.Date(2026, 10, 19, 18, 0, 0, 0, time.Local)
	if _, err := session.FinishDay(ctx, now); err != nil {
		t.Fatalf("finish: %v", err)
	}

	var out bytes.Buffer
	e := Export{Session: session, Path: "-", Snapshot: "2026-10-19", Out: &out}
	if err := e.Do(ctx); err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.String() != "- [x] shipped\n" {
		t.Fatalf("expected snapshot text, got %q", out.String())
	}

	e.Snapshot = "2026-10-18"
	if err := e.Do(ctx); !errors.Is(err, app.ErrArchiveMissing) {
		t.Fatalf("expected ErrArchiveMissing, got %v", err)
	}
	e.Snapshot = "yesterday"
	if err := e.Do(ctx); err == nil {
		t.Fatalf("expected an error for a bad day")
	}
}
