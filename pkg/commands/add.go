package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/pick"
	"tableflip.dev/tick/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	so := &options.SectionOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}
	var text string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task to the end of the document or of a section.",
		Example: `
tick add water the plants
tick add "file taxes (2h) (@4/15) (★4)" --section Home
tick add -i pay rent
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the task text")
			}
			text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			section := so.Section
			if i.Interactive {
				d, err := session.Document(cmd.Context())
				if err != nil {
					return output.HandleError(err)
				}
				if section, err = (pick.Prompter{}).Section("Section", d.Sections()); err != nil {
					return output.HandleError(err)
				}
			} else if section != "" {
				d, err := session.Document(cmd.Context())
				if err != nil {
					return output.HandleError(err)
				}
				if found, ok := pick.Section(d.Sections(), section); ok {
					section = found
				}
			}
			s := add.Add{
				Session: session,
				Text:    text,
				Section: section,
				ShowID:  io.ShowID,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddSectionArgs(cmd, so, "Add under this heading, creating it when missing.", sectionCompletions)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVarP(&i.Interactive, "interactive", "i", false, "Pick the section from a list.")

	topLevel.AddCommand(cmd)
}

func addSub(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	io := &options.IDOptions{}
	var text string

	cmd := &cobra.Command{
		Use:   "sub <text> --parent <task>",
		Short: "Add a subtask directly below its parent.",
		Example: `
tick sub buy stamps --parent "file taxes"
tick sub buy stamps -i
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the subtask text")
			}
			text = strings.Join(args, " ")
			if !to.Interactive && strings.TrimSpace(to.Query) == "" {
				return errors.New("requires --parent or -i")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			parent, err := to.Resolve(cmd.Context(), session, "Parent task")
			if err != nil {
				return output.HandleError(err)
			}
			s := add.Add{
				Session:  session,
				Text:     text,
				ParentID: parent.ID,
				ShowID:   io.ShowID,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&to.Query, "parent", "p", "", "The parent task: id, id prefix or text.")
	options.InteractiveArgs(cmd, &to.InteractiveOptions)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
