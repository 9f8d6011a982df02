package line

import (
	"bytes"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Tag names an inline annotation type. The constant order is the canonical
// order tags are written in at the end of a task body.
type Tag int

const (
	Estimate Tag = iota
	Deadline
	Difficulty
	Routine
)

func (t Tag) String() string {
	switch t {
	case Estimate:
		return "estimate"
	case Deadline:
		return "deadline"
	case Difficulty:
		return "difficulty"
	case Routine:
		return "routine"
	}
	return "unknown"
}

var (
	routinePattern    = regexp.MustCompile(`\((daily|weekly):([\w-]+)\)`)
	difficultyPattern = regexp.MustCompile(`\(★(\d+)\)`)
	deadlinePattern   = regexp.MustCompile(`\(@(\d{1,2}/\d{1,2})\)`)
	estimatePattern   = regexp.MustCompile(`\(([^()\x00]+)\)[ \t\x00]*$`)

	// Extraction order. Each pattern runs on the body with the previous
	// matches masked out.
	extractOrder = []Tag{Routine, Difficulty, Deadline, Estimate}
)

func pattern(t Tag) *regexp.Regexp {
	switch t {
	case Routine:
		return routinePattern
	case Difficulty:
		return difficultyPattern
	case Deadline:
		return deadlinePattern
	default:
		return estimatePattern
	}
}

// Claimed reports which other tag would absorb value if it were written as
// an estimate token.
func Claimed(value string) (Tag, bool) {
	tok := "(" + value + ")"
	for _, t := range extractOrder {
		if t != Estimate && pattern(t).MatchString(tok) {
			return t, true
		}
	}
	return Estimate, false
}

// Tags holds the annotations extracted from a task body. Zero values mean
// absent.
type Tags struct {
	Estimate    string
	Deadline    string
	Difficulty  int
	RoutineType string
	RoutineID   string
}

// token is a recognized tag occurrence in a body, [start, end).
type token struct {
	tag        Tag
	start, end int
	groups     []string
}

// scan finds the tag tokens Extract would consume, in extraction order.
// Matched spans are masked with NUL bytes in a working copy so later patterns
// never see earlier tags and byte offsets stay valid against body.
func scan(body string) []token {
	work := []byte(body)
	var found []token
	for _, tag := range extractOrder {
		m := pattern(tag).FindSubmatchIndex(work)
		if m == nil {
			continue
		}
		tok := token{tag: tag, start: m[0], end: m[1]}
		for g := 2; g+1 < len(m); g += 2 {
			tok.groups = append(tok.groups, body[m[g]:m[g+1]])
		}
		if tag == Estimate {
			tok.end = m[0] + bytes.LastIndexByte(work[m[0]:m[1]], ')') + 1
		}
		for i := tok.start; i < tok.end; i++ {
			work[i] = 0
		}
		found = append(found, tok)
	}
	return found
}

// cut removes each span together with the horizontal whitespace before it.
func cut(body string, toks []token) string {
	sort.Slice(toks, func(i, j int) bool { return toks[i].start > toks[j].start })
	for _, t := range toks {
		start := t.start
		for start > 0 && (body[start-1] == ' ' || body[start-1] == '\t') {
			start--
		}
		body = body[:start] + body[t.end:]
	}
	return strings.TrimSpace(body)
}

// Extract strips the routine, difficulty, deadline and estimate tags from
// body, in that order, and returns the remaining text with the tag values.
func Extract(body string) (string, Tags) {
	toks := scan(body)
	var tags Tags
	for _, t := range toks {
		switch t.tag {
		case Routine:
			tags.RoutineType, tags.RoutineID = t.groups[0], t.groups[1]
		case Difficulty:
			tags.Difficulty = clampDifficulty(t.groups[0])
		case Deadline:
			tags.Deadline = t.groups[0]
		case Estimate:
			tags.Estimate = strings.TrimSpace(t.groups[0])
		}
	}
	return cut(body, toks), tags
}

func clampDifficulty(digits string) int {
	n, err := strconv.Atoi(digits)
	switch {
	case err != nil || n > 5:
		return 5
	case n < 1:
		return 1
	}
	return n
}

// Token renders the tag for value, or "" when value is empty.
func Token(t Tag, value string) string {
	if value == "" {
		return ""
	}
	switch t {
	case Deadline:
		return "(@" + value + ")"
	case Difficulty:
		return "(★" + value + ")"
	}
	return "(" + value + ")"
}

// occurrences lists every token of tag t in body. Estimates only ever have
// the one occurrence Extract would return.
func occurrences(body string, t Tag) []token {
	if t == Estimate {
		for _, tok := range scan(body) {
			if tok.tag == Estimate {
				return []token{tok}
			}
		}
		return nil
	}
	var out []token
	for _, m := range pattern(t).FindAllStringIndex(body, -1) {
		out = append(out, token{tag: t, start: m[0], end: m[1]})
	}
	return out
}

// tailStart returns the offset where the trailing run of tags begins.
func tailStart(body string) int {
	var toks []token
	for _, t := range []Tag{Routine, Difficulty, Deadline} {
		toks = append(toks, occurrences(body, t)...)
	}
	toks = append(toks, occurrences(body, Estimate)...)
	pos := len(strings.TrimRight(body, " \t"))
	for moved := true; moved; {
		moved = false
		for _, t := range toks {
			if t.end == pos {
				pos = len(strings.TrimRight(body[:t.start], " \t"))
				moved = true
			}
		}
	}
	return pos
}

// Set removes every occurrence of tag t from body and, when value is not
// empty, writes the new token in its canonical place: right before the first
// trailing tag of a later type, or at the end of the body. Setting the same
// value twice yields the same bytes.
func Set(body string, t Tag, value string) string {
	body = cut(body, occurrences(body, t))
	tok := Token(t, value)
	if tok == "" {
		return body
	}
	tail := tailStart(body)
	at := -1
	for later := t + 1; later <= Routine; later++ {
		for _, o := range occurrences(body, later) {
			if o.start >= tail && (at < 0 || o.start < at) {
				at = o.start
			}
		}
	}
	if at < 0 {
		return strings.TrimSpace(body + " " + tok)
	}
	return strings.TrimSpace(strings.TrimRight(body[:at], " \t") + " " + tok + " " + body[at:])
}

// Rebody swaps the text portion of body for text, keeping every tag token
// Extract recognizes verbatim and in its original relative order.
func Rebody(body, text string) string {
	toks := scan(body)
	sort.Slice(toks, func(i, j int) bool { return toks[i].start < toks[j].start })
	parts := []string{strings.TrimSpace(text)}
	for _, t := range toks {
		parts = append(parts, body[t.start:t.end])
	}
	return strings.Join(parts, " ")
}

// Compose renders text and tags in canonical order.
func Compose(text string, tags Tags) string {
	parts := []string{strings.TrimSpace(text)}
	if tok := Token(Estimate, tags.Estimate); tok != "" {
		parts = append(parts, tok)
	}
	if tok := Token(Deadline, tags.Deadline); tok != "" {
		parts = append(parts, tok)
	}
	if tags.Difficulty != 0 {
		parts = append(parts, Token(Difficulty, strconv.Itoa(tags.Difficulty)))
	}
	if tags.RoutineType != "" && tags.RoutineID != "" {
		parts = append(parts, Token(Routine, tags.RoutineType+":"+tags.RoutineID))
	}
	return strings.Join(parts, " ")
}
