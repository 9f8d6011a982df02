// Package document holds a checklist document as immutable line records and
// applies task edits to it.
package document

import (
	"strings"

	"tableflip.dev/tick/pkg/line"
	"tableflip.dev/tick/pkg/task"
)

// Document is an ordered sequence of classified lines plus the tasks derived
// from them. Values are never modified; every edit builds a new Document.
type Document struct {
	lines []line.Line
	tasks []task.Task
}

// New parses text into a Document.
func New(text string) Document {
	return from(line.Split(text))
}

func from(lines []line.Line) Document {
	return Document{lines: lines, tasks: task.FromLines(lines)}
}

// String joins the lines back into text. For any input with LF endings,
// New(text).String() == text.
func (d Document) String() string {
	raws := make([]string, len(d.lines))
	for i, l := range d.lines {
		raws[i] = l.Raw
	}
	return strings.Join(raws, "\n")
}

// Tasks returns the derived task list.
func (d Document) Tasks() []task.Task {
	out := make([]task.Task, len(d.tasks))
	copy(out, d.tasks)
	return out
}

// Lines returns a copy of the line records.
func (d Document) Lines() []line.Line {
	out := make([]line.Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Find looks up a task by id.
func (d Document) Find(id string) (task.Task, bool) {
	return task.Find(d.tasks, id)
}

// Sections lists heading titles in document order.
func (d Document) Sections() []string {
	var out []string
	for _, l := range d.lines {
		if l.Kind == line.Heading {
			out = append(out, l.Title)
		}
	}
	return out
}

// Block returns the task with id and its descendants, in document order.
func (d Document) Block(id string) []task.Task {
	t, ok := d.Find(id)
	if !ok {
		return nil
	}
	start := t.LineNumber - 1
	end := blockEnd(d.lines, start)
	out := make([]task.Task, 0, end-start)
	for _, tk := range d.tasks {
		if tk.LineNumber-1 >= start && tk.LineNumber-1 < end {
			out = append(out, tk)
		}
	}
	return out
}

// blockEnd returns the index one past the descendant block rooted at start.
// The block holds the following task lines indented deeper than the root and
// stops at the first line that is not such a task.
func blockEnd(lines []line.Line, start int) int {
	root := lines[start]
	end := start + 1
	for end < len(lines) && lines[end].Kind == line.Task && lines[end].Indent > root.Indent {
		end++
	}
	return end
}

// splice returns lines[:at] + insert + lines[at:] without aliasing lines.
func splice(lines []line.Line, at int, insert ...line.Line) []line.Line {
	out := make([]line.Line, 0, len(lines)+len(insert))
	out = append(out, lines[:at]...)
	out = append(out, insert...)
	return append(out, lines[at:]...)
}

// without returns lines with [start, end) removed, plus the removed lines.
func without(lines []line.Line, start, end int) (rest, removed []line.Line) {
	removed = append([]line.Line(nil), lines[start:end]...)
	rest = make([]line.Line, 0, len(lines)-(end-start))
	rest = append(rest, lines[:start]...)
	rest = append(rest, lines[end:]...)
	return rest, removed
}

func shift(lines []line.Line, delta int) []line.Line {
	out := make([]line.Line, len(lines))
	for i, l := range lines {
		out[i] = l.Shift(delta)
	}
	return out
}

// contentEnd is the index after the last non-blank line in [from, to).
func contentEnd(lines []line.Line, from, to int) int {
	for to > from && lines[to-1].Blank() {
		to--
	}
	return to
}

// appendToSection places block at the end of the section titled name,
// creating a `## name` heading at the end of the document when none exists.
func appendToSection(lines []line.Line, name string, block []line.Line) []line.Line {
	head := -1
	for i, l := range lines {
		if l.Kind == line.Heading && l.Title == name {
			head = i
			break
		}
	}
	if head < 0 {
		at := contentEnd(lines, 0, len(lines))
		insert := make([]line.Line, 0, len(block)+2)
		if at > 0 {
			insert = append(insert, line.Classify(""))
		}
		insert = append(insert, line.Classify("## "+name))
		insert = append(insert, block...)
		return splice(lines, at, insert...)
	}
	next := len(lines)
	for i := head + 1; i < len(lines); i++ {
		if lines[i].Kind == line.Heading {
			next = i
			break
		}
	}
	return splice(lines, contentEnd(lines, head+1, next), block...)
}
