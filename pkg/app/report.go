package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/tick/pkg/history"
	"tableflip.dev/tick/pkg/store"
)

// ErrArchiveMissing is returned when an index entry points at a snapshot that
// is not in the store.
var ErrArchiveMissing = errors.New("app: archived snapshot not found")

// Entries returns the history index, newest first.
func (s *Session) Entries(ctx context.Context) ([]history.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries(ctx)
}

func (s *Session) entries(ctx context.Context) ([]history.Entry, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	raw, _, err := s.Store.Read(ctx, HistoryKey)
	if err != nil {
		return nil, fmt.Errorf("app: history: %w", err)
	}
	list, err := history.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("app: history: %w", err)
	}
	return list, nil
}

// History groups completed tasks by text. A non-empty query fuzzy-filters
// the entries first.
func (s *Session) History(ctx context.Context, query string) ([]history.Group, error) {
	list, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return history.Grouped(history.Search(list, query)), nil
}

// Archive reads back the snapshot an entry was archived in.
func (s *Session) Archive(ctx context.Context, e history.Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Store == nil {
		return "", ErrNoStore
	}
	text, ok, err := s.Store.ReadNested(ctx, e.SourcePath, e.SourceFile)
	if err != nil {
		return "", fmt.Errorf("app: archive: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrArchiveMissing, strings.Join(e.SourcePath, "/"), e.SourceFile)
	}
	return text, nil
}

// ReportDay groups the tasks completed on one calendar day.
type ReportDay struct {
	Day     time.Time       `json:"day"`
	Entries []history.Entry `json:"entries"`
}

// ReportResult encapsulates a completed-tasks report for a time window.
type ReportResult struct {
	Since time.Time   `json:"since"`
	Until time.Time   `json:"until"`
	Days  []ReportDay `json:"days"`
	Total int         `json:"total"`
}

// Report returns completed tasks grouped by day between the provided bounds,
// oldest day first.
func (s *Session) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	all, err := s.Entries(ctx)
	if err != nil {
		return ReportResult{}, err
	}

	inWindow := history.Between(all, since, until)
	if len(inWindow) == 0 {
		return ReportResult{Since: since, Until: until}, nil
	}

	byDay := make(map[time.Time][]history.Entry)
	for _, e := range inWindow {
		local := e.CompletedAt.In(until.Location())
		y, m, d := local.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, until.Location())
		byDay[day] = append(byDay[day], e)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]ReportDay, 0, len(days))
	for _, day := range days {
		entries := byDay[day]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CompletedAt.Before(entries[j].CompletedAt)
		})
		out = append(out, ReportDay{Day: day, Entries: entries})
	}

	return ReportResult{
		Since: since,
		Until: until,
		Days:  out,
		Total: len(inWindow),
	}, nil
}

// Snapshot reads the last snapshot archived on day and returns its file name
// with the text. It needs a store that can list keys.
func (s *Session) Snapshot(ctx context.Context, day time.Time) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Store.(store.Persistence)
	if !ok {
		return "", "", ErrNoStore
	}
	path, _ := history.Archive(day)
	names, err := p.List(ctx, path)
	if err != nil {
		return "", "", fmt.Errorf("app: snapshot: %w", err)
	}
	prefix := day.Format(history.DayLayout) + "_"
	name := ""
	for _, n := range names {
		if strings.HasPrefix(n, prefix) && strings.HasSuffix(n, ".md") {
			name = n
		}
	}
	if name == "" {
		return "", "", fmt.Errorf("%w: %s", ErrArchiveMissing, day.Format(history.DayLayout))
	}
	text, _, err := s.Store.ReadNested(ctx, path, name)
	if err != nil {
		return "", "", fmt.Errorf("app: snapshot: %w", err)
	}
	return name, text, nil
}
