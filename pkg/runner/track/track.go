// Package track edits the inline tags that track a task: deadline,
// difficulty and estimate.
package track

import (
	"context"
	"errors"
	"io"
	"strings"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/printers"
	"tableflip.dev/tick/pkg/task"
	"tableflip.dev/tick/pkg/timeutil"
)

// Clear is the argument that removes a tag.
const Clear = "clear"

// Field selects the tag Track edits.
type Field int

const (
	Deadline Field = iota
	Difficulty
	Estimate
)

// Track sets one tag on a task. For Difficulty an empty Value cycles to the
// next level.
type Track struct {
	Session *app.Session
	ID      string
	Field   Field
	Value   string
	ShowID  bool
	Out     io.Writer
}

// Do applies the edit and prints the task as it now reads.
func (n *Track) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not track, no session")
	}
	t, err := n.Session.Find(ctx, n.ID)
	if err != nil {
		return err
	}
	m, err := n.mutation(t)
	if err != nil {
		return err
	}
	if _, err := n.Session.Apply(ctx, m); err != nil {
		return err
	}

	tasks, err := n.Session.Tasks(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	for _, now := range tasks {
		if now.LineNumber == t.LineNumber {
			pp.Tasks(now)
			break
		}
	}
	return nil
}

func (n *Track) mutation(t task.Task) (document.Mutation, error) {
	value := strings.TrimSpace(n.Value)
	if strings.EqualFold(value, Clear) {
		value = ""
	}
	switch n.Field {
	case Deadline:
		d, err := task.ParseDeadline(value)
		if err != nil {
			return nil, err
		}
		return document.SetDeadline{ID: t.ID, Deadline: d}, nil
	case Difficulty:
		if value == "" {
			return document.CycleDifficulty{ID: t.ID}, nil
		}
		level, err := ParseDifficulty(value)
		if err != nil {
			return nil, err
		}
		return document.SetDifficulty{ID: t.ID, Difficulty: level}, nil
	case Estimate:
		return document.SetEstimate{ID: t.ID, Estimate: NormalizeEstimate(value)}, nil
	}
	return nil, errors.New("unknown tag")
}

// ParseDifficulty accepts a number or a run of stars.
func ParseDifficulty(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s != "" && strings.Trim(s, "★*") == "" {
		return len([]rune(s)), nil
	}
	level := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, document.ErrInvalidDifficulty
		}
		level = level*10 + int(r-'0')
		if level > task.MaxDifficulty {
			return 0, document.ErrInvalidDifficulty
		}
	}
	if level < task.MinDifficulty {
		return 0, document.ErrInvalidDifficulty
	}
	return level, nil
}

// NormalizeEstimate rewrites durations it understands ("90 min" becomes
// "1h30m") and keeps any other text as typed.
func NormalizeEstimate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if d, err := timeutil.ParseEstimate(s); err == nil {
		return timeutil.FormatEstimate(d)
	}
	return s
}
