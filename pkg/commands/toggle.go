package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/complete"
	"tableflip.dev/tick/pkg/runner/strike"
)

func addToggle(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "toggle <task>",
		Aliases: []string{"done", "complete", "x"},
		Short:   "Check or uncheck a task and all of its subtasks.",
		Example: `
tick toggle water plants
tick toggle 3f9a
tick x -i
`,
		Args: func(_ *cobra.Command, args []string) error {
			return to.Args(args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			t, err := to.Resolve(cmd.Context(), session, "Toggle")
			if err != nil {
				return output.HandleError(err)
			}
			s := complete.Complete{
				Session: session,
				ID:      t.ID,
				ShowID:  io.ShowID,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.InteractiveArgs(cmd, &to.InteractiveOptions)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addStrike(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm <task>",
		Aliases: []string{"strike", "delete"},
		Short:   "Remove a task and its subtasks.",
		Example: `
tick rm water plants
tick rm -i
`,
		Args: func(_ *cobra.Command, args []string) error {
			return to.Args(args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			t, err := to.Resolve(cmd.Context(), session, "Remove")
			if err != nil {
				return output.HandleError(err)
			}
			s := strike.Strike{
				Session: session,
				ID:      t.ID,
				ShowID:  io.ShowID,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.InteractiveArgs(cmd, &to.InteractiveOptions)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
