package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/runner/day"
)

func addFinish(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "finish",
		Short: "Close the day: archive the document, log done tasks and carry open ones over.",
		Example: `
tick finish
tick finish --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := day.Finish{
				Session: session,
				Now:     time.Now(),
				Encoder: output.Encoder(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addRollover(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "Add today's routine tasks. Does nothing when already done today.",
		Example: `
tick rollover
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := day.Rollover{
				Session: session,
				Today:   time.Now(),
				Encoder: output.Encoder(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
