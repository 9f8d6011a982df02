// Package edit rewrites task text, or the whole document in an editor.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/printers"
)

// DefaultEditor runs when neither VISUAL nor EDITOR is set.
const DefaultEditor = "vi"

// Edit replaces the text of task ID, keeping its tags.
type Edit struct {
	Session *app.Session
	ID      string
	Text    string
	ShowID  bool
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not edit, no session")
	}
	t, err := n.Session.Find(ctx, n.ID)
	if err != nil {
		return err
	}
	if _, err := n.Session.Apply(ctx, document.EditText{ID: t.ID, Text: n.Text}); err != nil {
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
		}
	}
	return nil
}

// Raw opens the whole active document in an editor and stores the result.
type Raw struct {
	Session *app.Session
	// Editor overrides VISUAL and EDITOR.
	Editor string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (n *Raw) editor() string {
	for _, e := range []string{n.Editor, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if e != "" {
			return e
		}
	}
	return DefaultEditor
}

func (n *Raw) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not edit, no session")
	}
	text, err := n.Session.Text(ctx)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "tick-edit-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, app.ActiveKey)
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", n.editor()+` "$1"`, "sh", path)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = n.Stdin, n.Stdout, n.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	changed, err := n.Session.Replace(ctx, string(edited))
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Stdout}
	if !changed {
		pp.Title("No changes")
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
