// Package line classifies single lines of a checklist document and reads or
// rewrites the inline tags a task line carries.
package line

import (
	"regexp"
	"strings"
)

// Kind is the grammar class of a line.
type Kind int

const (
	// Other is any line that is neither a task nor a heading. It is kept
	// verbatim and never modeled.
	Other Kind = iota
	// Task is a checklist line: `- [ ] body`.
	Task
	// Heading is a `#`-prefixed section title.
	Heading
)

func (k Kind) String() string {
	switch k {
	case Task:
		return "task"
	case Heading:
		return "heading"
	default:
		return "other"
	}
}

var (
	taskPattern    = regexp.MustCompile(`^(?P<indent>\s*)-\s\[(?P<mark>[ xX])\]\s+(?P<body>.+)$`)
	headingPattern = regexp.MustCompile(`^#+\s+(?P<title>.+)$`)

	taskIndent = taskPattern.SubexpIndex("indent")
	taskMark   = taskPattern.SubexpIndex("mark")
	taskBody   = taskPattern.SubexpIndex("body")
	headTitle  = headingPattern.SubexpIndex("title")
)

// Line is an immutable classified line record.
type Line struct {
	Raw    string
	Kind   Kind
	Indent int
	// Mark is the character between the brackets of a task line.
	Mark byte
	// Prefix is the leading whitespace of a task line.
	Prefix string
	Body   string
	Title  string
}

// Classify matches raw against the task and heading grammars.
func Classify(raw string) Line {
	l := Line{Raw: raw}
	if m := taskPattern.FindStringSubmatch(raw); m != nil {
		l.Kind = Task
		l.Prefix = m[taskIndent]
		l.Indent = Width(l.Prefix) / 2
		l.Mark = m[taskMark][0]
		l.Body = m[taskBody]
		return l
	}
	if m := headingPattern.FindStringSubmatch(raw); m != nil {
		l.Kind = Heading
		l.Title = strings.TrimSpace(m[headTitle])
	}
	return l
}

// Split breaks text into classified lines. CRLF endings are folded to LF.
func Split(text string) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raws := strings.Split(text, "\n")
	out := make([]Line, len(raws))
	for i, raw := range raws {
		out[i] = Classify(raw)
	}
	return out
}

// Done reports whether a task line is checked.
func (l Line) Done() bool {
	return l.Kind == Task && (l.Mark == 'x' || l.Mark == 'X')
}

// Blank reports whether the line has no visible content.
func (l Line) Blank() bool {
	return strings.TrimSpace(l.Raw) == ""
}

// Width measures leading whitespace in columns, a tab counting as two.
func Width(ws string) int {
	n := 0
	for _, r := range ws {
		if r == '\t' {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Format renders a task line.
func Format(indent int, done bool, body string) string {
	mark := " "
	if done {
		mark = "x"
	}
	return strings.Repeat("  ", max(indent, 0)) + "- [" + mark + "] " + body
}

// WithMark returns a copy of a task line with its checkbox set to done or todo.
// Everything else on the line is kept byte for byte.
func (l Line) WithMark(done bool) Line {
	if l.Kind != Task || l.Done() == done {
		return l
	}
	mark := byte(' ')
	if done {
		mark = 'x'
	}
	i := strings.Index(l.Raw, "[")
	raw := l.Raw[:i+1] + string(mark) + l.Raw[i+2:]
	return Classify(raw)
}

// WithBody returns a copy of a task line with a new body and the same prefix
// and checkbox.
func (l Line) WithBody(body string) Line {
	if l.Kind != Task {
		return l
	}
	return Classify(l.Prefix + "- [" + string(l.Mark) + "] " + body)
}

// Shift re-indents a task line by delta levels. Non-task lines are returned
// unchanged.
func (l Line) Shift(delta int) Line {
	if l.Kind != Task || delta == 0 {
		return l
	}
	width := max(Width(l.Prefix)+delta*2, 0)
	return Classify(strings.Repeat(" ", width) + l.Raw[len(l.Prefix):])
}
