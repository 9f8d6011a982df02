// Package strike removes tasks from the active document.
package strike

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/printers"
)

// Strike deletes a task together with its subtasks.
type Strike struct {
	Session *app.Session
	ID      string
	ShowID  bool
	Out     io.Writer
}

func (n *Strike) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not strike, no session")
	}
	d, err := n.Session.Document(ctx)
	if err != nil {
		return err
	}
	block := d.Block(n.ID)
	if len(block) == 0 {
		_, err := n.Session.Find(ctx, n.ID)
		return err
	}
	if _, err := n.Session.Apply(ctx, document.Delete{ID: n.ID}); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.TitleWithCount("Removed", len(block))
	pp.Tasks(block...)
	return nil
}
