// Package add appends tasks and subtasks to the active document.
package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/printers"
)

type Add struct {
	Session *app.Session
	Text    string
	// Section places a root task under this heading, creating it when
	// missing.
	Section string
	// ParentID makes the new task a subtask of that task.
	ParentID string
	ShowID   bool
	Out      io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not add, no session")
	}

	var m document.Mutation = document.AddTask{Text: n.Text, Section: n.Section}
	if n.ParentID != "" {
		if _, err := n.Session.Find(ctx, n.ParentID); err != nil {
			return err
		}
		m = document.InsertSubtask{ParentID: n.ParentID, Text: n.Text}
	}

	added, err := n.Session.ApplyAdded(ctx, m)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.Title("Added")
	pp.Tasks(added...)
	return nil
}
