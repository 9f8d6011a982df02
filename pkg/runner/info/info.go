// Package info reports where tick keeps its data.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/tick/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	w := n.Out
	if w == nil {
		w = color.Output
	}

	if override := os.Getenv("TICK_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "TICK_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, "TICK_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(w, "Config.path:            ", n.Config.BasePath())
	_, _ = fmt.Fprintln(w, "Config.log_level:       ", n.Config.LogLevel())
	_, _ = fmt.Fprintln(w, "Config.routines_heading:", n.Config.RoutinesHeading())

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	keys, err := n.Persistence.List(ctx, nil)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Keys:\n")
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "  %s\n", k)
	}
	if len(keys) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", "no keys")
	}
	return nil
}
