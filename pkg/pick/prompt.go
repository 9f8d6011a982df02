package pick

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/tick/pkg/task"
)

// Prompter asks on the terminal. Nil streams fall back to the process
// stdin/stdout.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (p Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	return nopWriteCloser{p.Out}
}

type choice struct {
	Task   task.Task
	Indent string
}

// Task shows an interactive, searchable list of tasks.
func (p Prompter) Task(label string, tasks []task.Task) (task.Task, error) {
	if len(tasks) == 0 {
		return task.Task{}, ErrNoMatch
	}
	items := make([]choice, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, choice{Task: t, Indent: strings.Repeat("  ", t.Indent)})
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜ {{ .Indent }}{{ .Task.Text | bold }} {{ .Task.Section | faint }}",
		Inactive: "  {{ .Indent }}{{ .Task.Text }} {{ .Task.Section | faint }}",
		Selected: "{{ .Task.Text | bold }}",
		Details: `
--------- Task ----------
{{ "ID:" | faint }}	{{ .Task.ID }}
{{ "Line:" | faint }}	{{ .Task.OriginalRaw }}
`,
	}

	searcher := func(input string, index int) bool {
		name := strings.Replace(strings.ToLower(items[index].Task.Text), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}

	i, _, err := prompt.Run()
	if err != nil {
		return task.Task{}, err
	}
	return items[i].Task, nil
}

// Section picks an existing heading or accepts a new one. It always talks to
// the process terminal.
func (p Prompter) Section(label string, sections []string) (string, error) {
	prompt := promptui.SelectWithAdd{
		Label:    label,
		Items:    sections,
		AddLabel: "New section",
		HideHelp: true,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("empty")
			}
			return nil
		},
	}
	_, result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// Text asks for a line of free text, offering def as the default.
func (p Prompter) Text(label, def string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: def != "",
		Templates: templates,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("empty")
			}
			return nil
		},
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}
