// Package watch reprints the active document whenever it changes on disk.
package watch

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/printers"
)

type Watch struct {
	Session *app.Session
	ShowID  bool
	Out     io.Writer
	// Now stamps each reprint.
	Now func() time.Time
}

func (n *Watch) now() time.Time {
	if n.Now == nil {
		return time.Now()
	}
	return n.Now()
}

// Do prints the document, then again after every change, until ctx is done.
func (n *Watch) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not watch, no session")
	}
	updates, err := n.Session.Watch(ctx)
	if err != nil {
		return err
	}
	d, err := n.Session.Document(ctx)
	if err != nil {
		return err
	}
	n.print(d)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-updates:
			if !ok {
				return nil
			}
			n.print(d)
		}
	}
}

func (n *Watch) print(d document.Document) {
	now := n.now()
	pp := printers.PrettyPrint{ShowID: n.ShowID, Today: now, Out: n.Out}
	pp.NewLine()
	pp.Title(now.Format("15:04:05"))
	pp.Sections(d.Tasks())
}
