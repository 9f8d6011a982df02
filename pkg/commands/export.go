package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	var (
		path     string
		snapshot string
	)

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write the document, or an archived day, to a file.",
		Example: `
tick export ~/today.md
tick export - --snapshot 2026-10-16
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a path, or - for stdout")
			}
			path = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := export.Export{
				Session:  session,
				Path:     path,
				Snapshot: snapshot,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&snapshot, "snapshot", "", "Export the last snapshot archived on this day, as YYYY-MM-DD.")

	topLevel.AddCommand(cmd)
}
