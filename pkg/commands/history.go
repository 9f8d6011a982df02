package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/runner/history"
)

func addHistory(topLevel *cobra.Command) {
	var (
		limit    int
		snapshot bool
	)

	cmd := &cobra.Command{
		Use:   "history [query]",
		Short: "Search completed tasks, grouped by text.",
		Example: `
tick history
tick history water --limit 5
tick history "weekly review" --snapshot
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := history.History{
				Session:  session,
				Query:    strings.Join(args, " "),
				Limit:    limit,
				Snapshot: snapshot,
				Encoder:  output.Encoder(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Most groups to show. 0 shows all.")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Print the archived document of the best match.")

	topLevel.AddCommand(cmd)
}
