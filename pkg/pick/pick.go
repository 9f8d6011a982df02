// Package pick resolves what a user typed into a task, and prompts for one
// when asked to.
package pick

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"tableflip.dev/tick/pkg/task"
)

// MinPrefix is the shortest id prefix accepted as a task reference.
const MinPrefix = 4

var (
	ErrNoQuery   = errors.New("pick: no task given")
	ErrNoMatch   = errors.New("pick: no task matches")
	ErrAmbiguous = errors.New("pick: more than one task matches")
)

// AmbiguousError lists the tasks a query could not tell apart.
type AmbiguousError struct {
	Query   string
	Matches []task.Task
}

func (e *AmbiguousError) Error() string {
	names := make([]string, 0, len(e.Matches))
	for _, t := range e.Matches {
		names = append(names, fmt.Sprintf("%s %q", t.ID, t.Text))
	}
	return fmt.Sprintf("pick: %q matches %d tasks: %s", e.Query, len(e.Matches), strings.Join(names, ", "))
}

func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

type texts []task.Task

func (t texts) String(i int) string { return t[i].Text }
func (t texts) Len() int            { return len(t) }

// Task finds the task query refers to. In order it tries an exact id, a
// unique id prefix, an exact text match and finally a fuzzy text match whose
// best score is not tied.
func Task(tasks []task.Task, query string) (task.Task, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return task.Task{}, ErrNoQuery
	}

	if t, ok := task.Find(tasks, query); ok {
		return t, nil
	}

	if len(query) >= MinPrefix {
		var prefixed []task.Task
		for _, t := range tasks {
			if strings.HasPrefix(t.ID, query) {
				prefixed = append(prefixed, t)
			}
		}
		if len(prefixed) == 1 {
			return prefixed[0], nil
		}
		if len(prefixed) > 1 {
			return task.Task{}, &AmbiguousError{Query: query, Matches: prefixed}
		}
	}

	want := task.Normalize(query)
	var exact []task.Task
	for _, t := range tasks {
		if strings.EqualFold(task.Normalize(t.Text), want) {
			exact = append(exact, t)
		}
	}
	switch len(exact) {
	case 0:
	case 1:
		return exact[0], nil
	default:
		return task.Task{}, &AmbiguousError{Query: query, Matches: exact}
	}

	matches := fuzzy.FindFrom(query, texts(tasks))
	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("%w: %q", ErrNoMatch, query)
	case 1:
		return tasks[matches[0].Index], nil
	}
	if matches[0].Score > matches[1].Score {
		return tasks[matches[0].Index], nil
	}
	var tied []task.Task
	for _, m := range matches {
		if m.Score != matches[0].Score {
			break
		}
		tied = append(tied, tasks[m.Index])
	}
	return task.Task{}, &AmbiguousError{Query: query, Matches: tied}
}

// Section finds a section heading by exact or case-insensitive name.
func Section(sections []string, query string) (string, bool) {
	query = strings.TrimSpace(query)
	for _, s := range sections {
		if s == query {
			return s, true
		}
	}
	for _, s := range sections {
		if strings.EqualFold(s, query) {
			return s, true
		}
	}
	return "", false
}
