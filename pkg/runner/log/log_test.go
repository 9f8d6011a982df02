package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/printers"
	"tableflip.dev/tick/pkg/store"
)

var now = time.Date(2026, time.October, 19, 18, 0, 0, 0, time.UTC)

func finished(t *testing.T) *app.Session {
	t.Helper()
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.Write(ctx, app.ActiveKey, "- [x] ship release\n- [ ] taxes (@10/21)\n"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := &app.Session{Store: mem}
	if _, err := s.FinishDay(ctx, now.Add(-2*time.Hour)); err != nil {
		t.Fatalf("finish: %v", err)
	}
	return s
}

func TestReport(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	r := Report{Session: finished(t), Window: "3d", Until: now, Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "last 3d") || !strings.Contains(out, "✘ ship release") {
		t.Fatalf("unexpected report\n%s", out)
	}
}

func TestReportRejectsWindow(t *testing.T) {
	r := Report{Session: finished(t), Window: "soon", Until: now}
	if err := r.Do(context.Background()); err == nil {
		t.Fatalf("expected invalid window error")
	}
}

func TestAgendaJSON(t *testing.T) {
	var buf bytes.Buffer
	a := Agenda{
		Session: finished(t),
		From:    now,
		Days:    3,
		Encoder: printers.Encoder{Format: printers.FormatJSON, Out: &buf},
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("agenda: %v", err)
	}
	var res app.AgendaResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(res.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(res.Days))
	}
	if len(res.Days[2].Tasks) != 1 || res.Days[2].Tasks[0].Text != "taxes" {
		t.Fatalf("expected taxes on the third day, got %+v", res.Days[2])
	}
}
