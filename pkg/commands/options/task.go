package options

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/pick"
	"tableflip.dev/tick/pkg/task"
)

// TaskOptions selects one task by id, id prefix or text, or interactively.
type TaskOptions struct {
	InteractiveOptions
	Query string
}

// Args collects the query from positional args. With -i none are needed.
func (o *TaskOptions) Args(args []string) error {
	o.Query = strings.Join(args, " ")
	if o.Interactive || strings.TrimSpace(o.Query) != "" {
		return nil
	}
	return errors.New("requires a task id or text, or -i")
}

// Resolve finds the selected task in the session's document.
func (o *TaskOptions) Resolve(ctx context.Context, session *app.Session, label string) (task.Task, error) {
	tasks, err := session.Tasks(ctx)
	if err != nil {
		return task.Task{}, err
	}
	if o.Interactive {
		return pick.Prompter{}.Task(label, tasks)
	}
	return pick.Task(tasks, o.Query)
}
