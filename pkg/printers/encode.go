package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Output formats understood by Encode. The empty format is the pretty
// printer.
const (
	FormatPretty = ""
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// Encoder writes structured output in JSON or YAML.
type Encoder struct {
	Format string
	Out    io.Writer
}

// Structured reports whether the encoder replaces pretty printing.
func (e Encoder) Structured() bool {
	return e.Format != FormatPretty
}

// Encode writes v in the configured format.
func (e Encoder) Encode(v any) error {
	w := e.Out
	if w == nil {
		w = color.Output
	}
	switch strings.ToLower(e.Format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q (expected json or yaml)", e.Format)
}
