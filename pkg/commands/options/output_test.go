package options

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestHandleError(t *testing.T) {
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	defer func() { color.Output = prev }()

	boom := errors.New("boom")

	o := OutputOptions{}
	if err := o.HandleError(boom); err != boom {
		t.Fatalf("expected the error back without --json, got %v", err)
	}

	o.JSON = true
	if err := o.HandleError(boom); err != nil {
		t.Fatalf("expected the error to be printed, got %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"error":"boom"}` {
		t.Fatalf("expected json error, got %q", got)
	}
}

func TestEncoder(t *testing.T) {
	if (&OutputOptions{}).Encoder().Structured() {
		t.Fatalf("expected pretty output by default")
	}
	if f := (&OutputOptions{JSON: true, Format: "yaml"}).Encoder().Format; f != "json" {
		t.Fatalf("expected --json to win, got %q", f)
	}
	if f := (&OutputOptions{Format: "yaml"}).Encoder().Format; f != "yaml" {
		t.Fatalf("expected yaml, got %q", f)
	}
}
