package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/routine"
)

func addRoutine(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "routine",
		Aliases: []string{"routines"},
		Short:   "Manage tasks that rollover adds every day or every week.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addRoutineList(cmd)
	addRoutineAdd(cmd)
	addRoutineRemove(cmd)
	addRoutinePromote(cmd)

	topLevel.AddCommand(cmd)
}

func addScheduleArgs(cmd *cobra.Command, s *routine.Schedule) {
	cmd.Flags().StringVar(&s.Type, "type", "daily", "How often the task is added: daily or weekly.")
	cmd.Flags().StringVar(&s.On, "on", "", "Weekday a weekly routine is added on, e.g. mon.")
	cmd.Flags().StringVar(&s.Deadline, "deadline", "none", "Deadline given to the added task: none, today or a weekday.")
	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"daily", "weekly"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func addRoutineList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List routines.",
		Example: `
tick routine list
tick routine list --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := routine.List{
				Session: session,
				Encoder: output.Encoder(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addRoutineAdd(topLevel *cobra.Command) {
	schedule := &routine.Schedule{}
	var text string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a routine.",
		Example: `
tick routine add stretch
tick routine add "review the week (1h)" --type weekly --on fri --deadline today
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the routine text")
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
			s := routine.Add{
				Session:  session,
				Text:     text,
				Schedule: *schedule,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	addScheduleArgs(cmd, schedule)

	topLevel.AddCommand(cmd)
}

func addRoutineRemove(topLevel *cobra.Command) {
	var id string

	cmd := &cobra.Command{
		Use:     "rm <routine id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a routine. Tasks it already added stay.",
		Example: `
tick routine rm 01hf3v4k9a
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires one routine id")
			}
			id = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := routine.Remove{
				Session: session,
				ID:      id,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addRoutinePromote(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	schedule := &routine.Schedule{}

	cmd := &cobra.Command{
		Use:   "promote <task>",
		Short: "Turn an existing task into a routine and tag it as generated by it.",
		Example: `
tick routine promote stretch
tick routine promote -i --type weekly --on mon
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
			t, err := to.Resolve(cmd.Context(), session, "Promote")
			if err != nil {
				return output.HandleError(err)
			}
			s := routine.Promote{
				Session:  session,
				TaskID:   t.ID,
				Schedule: *schedule,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	addScheduleArgs(cmd, schedule)
	options.InteractiveArgs(cmd, &to.InteractiveOptions)

	topLevel.AddCommand(cmd)
}
