package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the document again whenever it changes on disk.",
		Example: `
tick watch
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := watch.Watch{
				Session: session,
				ShowID:  io.ShowID,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
