// Package export writes the active document or an archived snapshot to a
// file outside the store.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/natefinch/atomic"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/history"
)

type Export struct {
	Session *app.Session
	// Path is the destination. "-" writes to Out.
	Path string
	// Snapshot names an archived day (YYYY-MM-DD) to export instead of the
	// active document.
	Snapshot string
	Out      io.Writer
}

func (e *Export) out() io.Writer {
	if e.Out == nil {
		return color.Output
	}
	return e.Out
}

func (e *Export) Do(ctx context.Context) error {
	if e.Session == nil {
		return errors.New("can not export, no session")
	}
	if e.Path == "" {
		return errors.New("export path is required")
	}

	var text string
	if e.Snapshot != "" {
		day, err := time.ParseInLocation(history.DayLayout, e.Snapshot, time.Local)
		if err != nil {
			return fmt.Errorf("invalid snapshot day %q, expected YYYY-MM-DD", e.Snapshot)
		}
		if _, text, err = e.Session.Snapshot(ctx, day); err != nil {
			return err
		}
	} else {
		var err error
		if text, err = e.Session.Text(ctx); err != nil {
			return err
		}
	}

	if e.Path == "-" {
		_, err := io.WriteString(e.out(), text)
		return err
	}
	if err := atomic.WriteFile(e.Path, strings.NewReader(text)); err != nil {
		return fmt.Errorf("export %s: %w", e.Path, err)
	}
	_, _ = fmt.Fprintf(e.out(), "Exported to %s.\n", e.Path)
	return nil
}
