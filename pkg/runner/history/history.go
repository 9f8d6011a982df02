// Package history searches completed tasks.
package history

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/history"
	"tableflip.dev/tick/pkg/printers"
)

// History lists completed tasks grouped by text. With Snapshot set it prints
// the archived document the newest matching completion was saved in.
type History struct {
	Session  *app.Session
	Query    string
	Limit    int
	Snapshot bool
	Encoder  printers.Encoder
	Out      io.Writer
}

func (n *History) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not search history, no session")
	}
	groups, err := n.Session.History(ctx, n.Query)
	if err != nil {
		return err
	}
	if n.Limit > 0 && len(groups) > n.Limit {
		groups = groups[:n.Limit]
	}

	if n.Snapshot {
		return n.snapshot(ctx, groups)
	}

	if n.Encoder.Structured() {
		if groups == nil {
			groups = []history.Group{}
		}
		return n.Encoder.Encode(groups)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	if n.Query != "" {
		pp.Title(fmt.Sprintf("History matching %q", n.Query))
	} else {
		pp.Title("History")
	}
	pp.History(groups)
	return nil
}

func (n *History) snapshot(ctx context.Context, groups []history.Group) error {
	if len(groups) == 0 || len(groups[0].Entries) == 0 {
		return errors.New("no completed task matches")
	}
	latest := groups[0].Entries[0]
	for _, e := range groups[0].Entries[1:] {
		if e.CompletedAt.After(latest.CompletedAt) {
			latest = e
		}
	}
	text, err := n.Session.Archive(ctx, latest)
	if err != nil {
		return err
	}
	w := n.Out
	if w == nil {
		w = color.Output
	}
	_, _ = color.New(color.Faint).Fprintf(w, "# %s, completed %s\n", latest.SourceFile, latest.CompletedAt.Local().Format("2006-01-02 15:04"))
	_, _ = fmt.Fprint(w, text)
	return nil
}
