package task

import (
	"tableflip.dev/tick/pkg/line"
)

// Parse derives the ordered task list from document text.
func Parse(text string) []Task {
	return FromLines(line.Split(text))
}

// FromLines derives tasks from already classified lines. Headings set the
// section for the lines below them; other lines are skipped.
func FromLines(lines []line.Line) []Task {
	tasks := make([]Task, 0, len(lines))
	seen := make(map[string]int)
	section := ""
	for i, l := range lines {
		switch l.Kind {
		case line.Heading:
			section = l.Title
		case line.Task:
			t := fromLine(l)
			t.Section = section
			t.LineNumber = i + 1

			key := Normalize(t.Text)
			t.ID = ID(key, seen[key])
			seen[key]++

			tasks = append(tasks, t)
		}
	}
	return tasks
}

func fromLine(l line.Line) Task {
	text, tags := line.Extract(l.Body)
	t := Task{
		Text:        text,
		Status:      Todo,
		Indent:      l.Indent,
		Estimate:    tags.Estimate,
		Difficulty:  tags.Difficulty,
		RoutineType: tags.RoutineType,
		RoutineID:   tags.RoutineID,
		OriginalRaw: l.Raw,
	}
	if l.Done() {
		t.Status = Done
	}
	if t.Difficulty == 0 {
		t.Difficulty = DefaultDifficulty
	}
	if d, err := ParseDeadline(tags.Deadline); err == nil {
		t.Deadline = d
	}
	return t
}

// Find returns the task with id.
func Find(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
