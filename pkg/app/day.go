package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/history"
	"tableflip.dev/tick/pkg/routine"
)

// FinishResult describes what FinishDay archived.
type FinishResult struct {
	Archived     []history.Entry `json:"archived"`
	SnapshotPath []string        `json:"snapshotPath"`
	SnapshotFile string          `json:"snapshotFile"`
	Remaining    int             `json:"remaining"`
}

// FinishDay closes the day at now. Done tasks are prepended to the history
// index, the whole document is archived under YYYY/MM, and the active document
// is rewritten to the raw lines of the open tasks. Daily routine lines are
// dropped since rollover regenerates them. Headings and notes are not carried
// over.
//
// Writes happen in that order. If any write fails the session keeps the old
// document, though earlier writes may have landed.
func (s *Session) FinishDay(ctx context.Context, now time.Time) (FinishResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return FinishResult{}, err
	}

	path, name := history.Archive(now)
	entropy := ulid.Monotonic(rand.Reader, 0)

	var done []history.Entry
	var keep []string
	for _, t := range s.doc.Tasks() {
		if t.IsDone() {
			done = append(done, history.Entry{
				ID:          strings.ToLower(ulid.MustNew(ulid.Timestamp(now), entropy).String()),
				Text:        t.Text,
				CompletedAt: now,
				SourceFile:  name,
				SourcePath:  path,
			})
			continue
		}
		if t.IsDailyRoutine() {
			continue
		}
		keep = append(keep, t.OriginalRaw)
	}

	raw, _, err := s.Store.Read(ctx, HistoryKey)
	if err != nil {
		return FinishResult{}, fmt.Errorf("app: finish day: %w", err)
	}
	index, err := history.Decode(raw)
	if err != nil {
		return FinishResult{}, fmt.Errorf("app: finish day: %w", err)
	}
	encoded, err := history.Encode(history.Prepend(index, done...))
	if err != nil {
		return FinishResult{}, fmt.Errorf("app: finish day: %w", err)
	}
	if err := s.Store.Write(ctx, HistoryKey, encoded); err != nil {
		return FinishResult{}, fmt.Errorf("app: finish day: %w", err)
	}
	if err := s.Store.WriteNested(ctx, path, name, s.doc.String()); err != nil {
		return FinishResult{}, fmt.Errorf("app: finish day: %w", err)
	}
	if err := s.commit(ctx, document.New(strings.Join(keep, "\n"))); err != nil {
		return FinishResult{}, fmt.Errorf("app: finish day: %w", err)
	}

	s.logger().Info("finished day", "archived", len(done), "remaining", len(keep), "snapshot", strings.Join(append(path, name), "/"))
	return FinishResult{
		Archived:     done,
		SnapshotPath: path,
		SnapshotFile: name,
		Remaining:    len(keep),
	}, nil
}

// RolloverResult describes the lines Rollover generated.
type RolloverResult struct {
	Date    string   `json:"date"`
	Skipped bool     `json:"skipped"`
	Added   []string `json:"added"`
}

// Rollover generates today's routine lines once per day. When the stored
// marker already names today nothing happens. Otherwise every routine due
// today adds a line under the routines heading, unless a task line already
// carries its routine tag. The routines are saved with LastRun set to today,
// and the marker is written last.
func (s *Session) Rollover(ctx context.Context, today time.Time) (RolloverResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(ctx); err != nil {
		return RolloverResult{}, err
	}

	date := today.Format(routine.DateLayout)
	marker, _, err := s.Store.Read(ctx, MarkerKey)
	if err != nil {
		return RolloverResult{}, fmt.Errorf("app: rollover: %w", err)
	}
	if strings.TrimSpace(marker) == date {
		s.logger().Debug("rollover already ran", "date", date)
		return RolloverResult{Date: date, Skipped: true}, nil
	}

	routines, err := s.readRoutines(ctx)
	if err != nil {
		return RolloverResult{}, fmt.Errorf("app: rollover: %w", err)
	}

	present := make(map[string]bool)
	for _, t := range s.doc.Tasks() {
		if t.IsRoutine() {
			present[t.RoutineType+":"+t.RoutineID] = true
		}
	}

	next := s.doc
	var added []string
	ran := false
	for i, r := range routines {
		if !r.Due(today) {
			s.logger().Debug("routine not due", "routine", r.ID, "lastRun", r.LastRun)
			continue
		}
		routines[i].LastRun = date
		ran = true
		// A line from an earlier, partly failed rollover is still there.
		if present[string(r.Type)+":"+r.ID] {
			s.logger().Debug("routine already in document", "routine", r.ID)
			continue
		}
		var changed bool
		next, changed, err = next.Apply(document.AddTask{Text: r.Body(today), Section: s.routinesHeading()})
		if err != nil {
			return RolloverResult{}, fmt.Errorf("app: rollover: routine %s: %w", r.ID, err)
		}
		if changed {
			added = append(added, r.Line(today))
		}
	}

	if len(added) > 0 {
		if err := s.commit(ctx, next); err != nil {
			return RolloverResult{}, fmt.Errorf("app: rollover: %w", err)
		}
	}
	if ran {
		if err := s.writeRoutines(ctx, routines); err != nil {
			return RolloverResult{}, fmt.Errorf("app: rollover: %w", err)
		}
	}
	if err := s.Store.Write(ctx, MarkerKey, date); err != nil {
		return RolloverResult{}, fmt.Errorf("app: rollover: %w", err)
	}

	s.logger().Info("rolled over", "date", date, "added", len(added))
	return RolloverResult{Date: date, Added: added}, nil
}
