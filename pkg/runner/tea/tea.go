// Package teaui is the full-screen terminal UI over the active document.
package teaui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tick/pkg/app"
)

// Run launches the Bubble Tea UI. Today's routines are rolled over when the
// document loads. Edits made to the document by other programs show up while
// it runs when the store can watch for them.
func Run(ctx context.Context, session *app.Session) error {
	if session == nil {
		return errors.New("can not start ui, no session")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(session)
	m.ctx = ctx
	m.rollover = true
	if updates, err := session.Watch(ctx); err == nil {
		m.updates = updates
	} else if !errors.Is(err, app.ErrNoWatch) {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
