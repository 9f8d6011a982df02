// Package clip puts the active document on the system clipboard.
package clip

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"

	"tableflip.dev/tick/pkg/app"
)

// Copy writes the active document, or one task block, to the clipboard.
type Copy struct {
	Session *app.Session
	// ID limits the copy to a task and its subtasks.
	ID  string
	Out io.Writer

	// Write replaces the clipboard writer in tests.
	Write func(string) error
}

func (c *Copy) Do(ctx context.Context) error {
	if c.Session == nil {
		return errors.New("can not copy, no session")
	}
	d, err := c.Session.Document(ctx)
	if err != nil {
		return err
	}
	text := d.String()
	what := "document"
	if c.ID != "" {
		block := d.Block(c.ID)
		if len(block) == 0 {
			return fmt.Errorf("%w: %s", app.ErrTaskNotFound, c.ID)
		}
		text = ""
		for _, t := range block {
			text += t.OriginalRaw + "\n"
		}
		what = fmt.Sprintf("%d lines", len(block))
	}

	write := c.Write
	if write == nil {
		if clipboard.Unsupported {
			return errors.New("clipboard is not supported on this system")
		}
		write = clipboard.WriteAll
	}
	if err := write(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	w := c.Out
	if w == nil {
		w = color.Output
	}
	_, _ = fmt.Fprintf(w, "Copied %s to the clipboard.\n", what)
	return nil
}
