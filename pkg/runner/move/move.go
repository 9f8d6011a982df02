// Package move drags task blocks around the active document.
package move

import (
	"context"
	"errors"
	"io"
	"strings"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/printers"
)

// Move drops the DragID block next to DropID, or at the end of Section when
// Section is set.
type Move struct {
	Session *app.Session
	DragID  string
	DropID  string
	Place   document.Place
	Section string
	ShowID  bool
	Out     io.Writer
}

func (n *Move) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not move, no session")
	}
	drag, err := n.Session.Find(ctx, n.DragID)
	if err != nil {
		return err
	}

	var m document.Mutation
	switch {
	case strings.TrimSpace(n.Section) != "":
		m = document.MoveToSection{ID: drag.ID, Section: n.Section}
	case n.DropID != "":
		drop, err := n.Session.Find(ctx, n.DropID)
		if err != nil {
			return err
		}
		m = document.Move{DragID: drag.ID, DropID: drop.ID, Place: n.Place}
	default:
		return errors.New("move needs a target task or a section")
	}

	moved, err := n.Session.Apply(ctx, m)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if !moved {
		pp.NewLine()
		pp.Title("Nothing moved")
		return nil
	}
	tasks, err := n.Session.Tasks(ctx)
	if err != nil {
		return err
	}
	pp.NewLine()
	pp.Sections(tasks)
	return nil
}

// ParsePlace reads "before" or "after"; empty means after.
func ParsePlace(s string) (document.Place, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "after":
		return document.After, nil
	case "before":
		return document.Before, nil
	}
	return document.After, errors.New("placement must be before or after")
}
