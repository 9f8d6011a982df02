// Package complete toggles tasks between todo and done.
package complete

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/printers"
)

// Complete flips a task and every descendant to the task's new status.
type Complete struct {
	Session *app.Session
	ID      string
	ShowID  bool
	Out     io.Writer
}

// Do toggles the configured task and prints its block.
func (n *Complete) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not complete, no session")
	}
	t, err := n.Session.Find(ctx, n.ID)
	if err != nil {
		return err
	}
	if _, err := n.Session.Apply(ctx, document.Toggle{ID: t.ID}); err != nil {
		return err
	}

	d, err := n.Session.Document(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.Tasks(d.Block(t.ID)...)
	return nil
}
