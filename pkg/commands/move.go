package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/pick"
	"tableflip.dev/tick/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	so := &options.SectionOptions{}
	io := &options.IDOptions{}
	var before, after string

	cmd := &cobra.Command{
		Use:   "mv <task> (--before <task> | --after <task> | --section <name>)",
		Short: "Move a task and its subtasks next to another task or into a section.",
		Example: `
tick mv call mom --before "water plants"
tick mv call mom --after 3f9a
tick mv call mom --section Later
`,
		Args: func(_ *cobra.Command, args []string) error {
			set := 0
			for _, v := range []string{before, after, so.Section} {
				if v != "" {
					set++
				}
			}
			if set != 1 {
				return errors.New("requires exactly one of --before, --after or --section")
			}
			return to.Args(args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			drag, err := to.Resolve(ctx, session, "Move")
			if err != nil {
				return output.HandleError(err)
			}
			s := move.Move{
				Session: session,
				DragID:  drag.ID,
				ShowID:  io.ShowID,
			}
			if so.Section != "" {
				s.Section = so.Section
				if d, err := session.Document(ctx); err == nil {
					if found, ok := pick.Section(d.Sections(), so.Section); ok {
						s.Section = found
					}
				}
			} else {
				query, place := before, document.Before
				if after != "" {
					query, place = after, document.After
				}
				tasks, err := session.Tasks(ctx)
				if err != nil {
					return output.HandleError(err)
				}
				drop, err := pick.Task(tasks, query)
				if err != nil {
					return output.HandleError(err)
				}
				s.DropID, s.Place = drop.ID, place
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Drop above this task.")
	cmd.Flags().StringVar(&after, "after", "", "Drop below this task and its subtasks.")
	options.AddSectionArgs(cmd, so, "Move to the end of this heading at the top level.", sectionCompletions)
	options.InteractiveArgs(cmd, &to.InteractiveOptions)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
