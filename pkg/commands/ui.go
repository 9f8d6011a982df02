package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/tick/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
tick ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return err
			}
			return teaui.Run(cmd.Context(), session)
		},
	}

	topLevel.AddCommand(cmd)
}
