package glyph

import (
	"time"

	"tableflip.dev/tick/pkg/task"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Tag     bool
}

func (g Glyph) String() string {
	return g.Symbol
}

type Bullet int

const (
	Todo Bullet = iota
	Done
	DueToday
	Overdue
	Estimate
	Deadline
	Difficulty
	Routine
)

func DefaultGlyphs() []Glyph {
	return []Glyph{
		{Key: "- [ ]", Symbol: "●", Meaning: "task"},
		{Key: "- [x]", Symbol: "✘", Meaning: "task completed"},
		{Key: "(@M/D)", Symbol: "◆", Meaning: "task due today"},
		{Key: "(@M/D)", Symbol: "!", Meaning: "task overdue"},
		{Key: "(2h)", Symbol: "⧗", Meaning: "estimate", Tag: true},
		{Key: "(@M/D)", Symbol: "⚑", Meaning: "deadline", Tag: true},
		{Key: "(★N)", Symbol: "★", Meaning: "difficulty 1 to 5, 2 when absent", Tag: true},
		{Key: "(daily:id)", Symbol: "↻", Meaning: "generated by a daily or weekly routine", Tag: true},
	}
}

func (b Bullet) Glyph() Glyph {
	return DefaultGlyphs()[b]
}

func (b Bullet) String() string {
	return b.Glyph().String()
}

// For picks the bullet of t as of today.
func For(t task.Task, today time.Time) Bullet {
	if t.IsDone() {
		return Done
	}
	switch t.Deadline.Due(today) {
	case task.Overdue:
		return Overdue
	case task.DueToday:
		return DueToday
	}
	return Todo
}
