package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/clip"
)

func addCopy(topLevel *cobra.Command) {
	to := &options.TaskOptions{}

	cmd := &cobra.Command{
		Use:   "copy [task]",
		Short: "Copy the document, or one task with its subtasks, to the clipboard.",
		Example: `
tick copy
tick copy file taxes
tick copy -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := clip.Copy{Session: session}
			to.Query = strings.Join(args, " ")
			if to.Interactive || to.Query != "" {
				t, err := to.Resolve(cmd.Context(), session, "Copy")
				if err != nil {
					return output.HandleError(err)
				}
				s.ID = t.ID
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.InteractiveArgs(cmd, &to.InteractiveOptions)

	topLevel.AddCommand(cmd)
}
