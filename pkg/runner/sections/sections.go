// Package sections lists the headings of the active document.
package sections

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/printers"
)

// Count is the task tally of one section.
type Count struct {
	Name string `json:"name" yaml:"name"`
	Open int    `json:"open" yaml:"open"`
	Done int    `json:"done" yaml:"done"`
}

// Sections configures the parameters for `tick sections`.
type Sections struct {
	Session *app.Session
	Encoder printers.Encoder
	Out     io.Writer
}

// Tally counts tasks per heading. Tasks above the first heading are counted
// under the empty name, which is only listed when it holds tasks.
func (s *Sections) Tally(ctx context.Context) ([]Count, error) {
	if s.Session == nil {
		return nil, errors.New("can not list sections, no session")
	}
	d, err := s.Session.Document(ctx)
	if err != nil {
		return nil, err
	}
	counts := []Count{{}}
	index := map[string]int{"": 0}
	for _, name := range d.Sections() {
		if _, ok := index[name]; ok {
			continue
		}
		index[name] = len(counts)
		counts = append(counts, Count{Name: name})
	}
	for _, t := range d.Tasks() {
		c := &counts[index[t.Section]]
		if t.IsDone() {
			c.Done++
		} else {
			c.Open++
		}
	}
	if counts[0].Open+counts[0].Done == 0 {
		counts = counts[1:]
	}
	return counts, nil
}

// Do prints the section table.
func (s *Sections) Do(ctx context.Context) error {
	counts, err := s.Tally(ctx)
	if err != nil {
		return err
	}
	if s.Encoder.Structured() {
		return s.Encoder.Encode(counts)
	}

	w := s.Out
	if w == nil {
		w = color.Output
	}
	if len(counts) == 0 {
		_, _ = fmt.Fprintln(w, "No sections.")
		return nil
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Section"), bold.Sprint("Open"), bold.Sprint("Done"))
	for _, c := range counts {
		name := c.Name
		if name == "" {
			name = faint.Sprint("(top)")
		}
		tbl.AddRow(name, c.Open, c.Done)
	}
	_, _ = fmt.Fprintln(w, tbl)
	return nil
}
