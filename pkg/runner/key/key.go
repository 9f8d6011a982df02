// Package key prints the legend of bullets and tags.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tick/pkg/glyph"
)

// Key prints a glyph legend describing bullets and inline tags.
type Key struct {
	Out io.Writer
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}

// Do renders the bullet and tag keys.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(k.out(), "")

	all := glyph.DefaultGlyphs()
	k.Key(ctx, all, false)
	_, _ = fmt.Fprintln(k.out(), "")
	k.Key(ctx, all, true)

	_, _ = fmt.Fprintln(k.out(), "")
	return nil
}

// Key renders a glyph table; when tags is true, inline tags are shown.
func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph, tags bool) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	if tags {
		tbl.AddRow(bold.Sprint("Tags"), bold.Sprint("Written"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("Bullets"), bold.Sprint("Written"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		if tags == v.Tag {
			tbl.AddRow(v.Symbol, faint.Sprint(v.Key), v.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}
