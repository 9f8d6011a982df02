package history

import (
	"testing"
	"time"
)

var base = time.Date(2026, time.October, 19, 21, 4, 5, 0, time.UTC)

func TestArchive(t *testing.T) {
	path, name := Archive(base)
	if len(path) != 2 || path[0] != "2026" || path[1] != "10" {
		t.Fatalf("unexpected path %v", path)
	}
	if name != "2026-10-19_21-04-05.md" {
		t.Fatalf("unexpected name %q", name)
	}
}

func TestPrependKeepsNewestFirst(t *testing.T) {
	old := []Entry{{ID: "1", Text: "old", CompletedAt: base.Add(-time.Hour)}}
	got := Prepend(old, Entry{ID: "2", Text: "new", CompletedAt: base})
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "1" {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestEncodeDecode(t *testing.T) {
	in := []Entry{{ID: "a", Text: "x", CompletedAt: base, SourceFile: "f.md", SourcePath: []string{"2026", "10"}}}
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || !out[0].CompletedAt.Equal(base) || out[0].SourcePath[1] != "10" {
		t.Fatalf("unexpected entries %+v", out)
	}
	if empty, _ := Encode(nil); empty != "[]" {
		t.Fatalf("expected empty array, got %q", empty)
	}
}

func TestGrouped(t *testing.T) {
	entries := []Entry{
		{Text: "stretch", CompletedAt: base},
		{Text: "taxes", CompletedAt: base.Add(time.Hour)},
		{Text: "stretch", CompletedAt: base.Add(-24 * time.Hour)},
	}
	groups := Grouped(entries)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Text != "taxes" || groups[1].Count != 2 || !groups[1].Latest.Equal(base) {
		t.Fatalf("unexpected groups %+v", groups)
	}
}

func TestSearch(t *testing.T) {
	entries := []Entry{{Text: "write report"}, {Text: "water plants"}, {Text: "buy milk"}}
	got := Search(entries, "wrep")
	if len(got) != 1 || got[0].Text != "write report" {
		t.Fatalf("unexpected matches %+v", got)
	}
	if all := Search(entries, " "); len(all) != 3 {
		t.Fatalf("expected empty query to keep all entries")
	}
}

func TestBetween(t *testing.T) {
	entries := []Entry{
		{Text: "in", CompletedAt: base},
		{Text: "out", CompletedAt: base.Add(-48 * time.Hour)},
	}
	got := Between(entries, base, base.Add(-24*time.Hour))
	if len(got) != 1 || got[0].Text != "in" {
		t.Fatalf("unexpected entries %+v", got)
	}
}
