package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/track"
)

func addTrack(topLevel *cobra.Command) {
	addTrackField(topLevel, trackCommand{
		use:   "deadline <task> --set M/D",
		short: "Set or clear the deadline of a task.",
		example: `
tick deadline file taxes --set 4/15
tick deadline file taxes --set clear
`,
		field:    track.Deadline,
		usage:    "The deadline as M/D, or 'clear'.",
		required: true,
	})
	addTrackField(topLevel, trackCommand{
		use:     "difficulty <task> [--set N]",
		aliases: []string{"diff"},
		short:   "Cycle the difficulty of a task, or set it from 1 to 5.",
		example: `
tick difficulty file taxes
tick difficulty file taxes --set 4
tick diff -i --set ★★★
`,
		field: track.Difficulty,
		usage: "The difficulty as 1 to 5 or a run of stars. Cycles when unset.",
	})
	addTrackField(topLevel, trackCommand{
		use:     "estimate <task> --set DURATION",
		aliases: []string{"est"},
		short:   "Set or clear the time estimate of a task.",
		example: `
tick estimate file taxes --set 2h
tick estimate file taxes --set 1h30m
tick estimate file taxes --set clear
`,
		field:    track.Estimate,
		usage:    "The estimate, e.g. 30m or 2h, or 'clear'.",
		required: true,
	})
}

type trackCommand struct {
	use      string
	aliases  []string
	short    string
	example  string
	field    track.Field
	usage    string
	required bool
}

func addTrackField(topLevel *cobra.Command, tc trackCommand) {
	to := &options.TaskOptions{}
	io := &options.IDOptions{}
	var value string

	cmd := &cobra.Command{
		Use:     tc.use,
		Aliases: tc.aliases,
		Short:   tc.short,
		Example: tc.example,
		Args: func(_ *cobra.Command, args []string) error {
			if tc.required && value == "" {
				return errors.New("requires --set")
			}
			return to.Args(args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			t, err := to.Resolve(cmd.Context(), session, "Task")
			if err != nil {
				return output.HandleError(err)
			}
			s := track.Track{
				Session: session,
				ID:      t.ID,
				Field:   tc.field,
				Value:   value,
				ShowID:  io.ShowID,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&value, "set", "", tc.usage)
	options.InteractiveArgs(cmd, &to.InteractiveOptions)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
