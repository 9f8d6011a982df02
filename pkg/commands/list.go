package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/get"
)

func addList(topLevel *cobra.Command) {
	so := &options.SectionOptions{}
	io := &options.IDOptions{}
	var (
		status     string
		summary    bool
		noRollover bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List the tasks of the active document.",
		Example: `
tick list
tick list --section Work --status todo
tick list --summary
tick list --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := get.Get{
				Session: session,
				Section: so.Section,
				Status:  status,
				Summary:  summary,
				ShowID:   io.ShowID,
				Rollover: !noRollover,
				Today:    time.Now(),
				Encoder:  output.Encoder(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddSectionArgs(cmd, so, "Only list tasks under this heading.", sectionCompletions)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVar(&status, "status", get.StatusAll, "Filter by status: all, todo or done.")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print counts, estimates and deadlines instead of tasks.")
	cmd.Flags().BoolVar(&noRollover, "no-rollover", false, "Do not add today's routine tasks before listing.")
	_ = cmd.RegisterFlagCompletionFunc("status", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{get.StatusAll, get.StatusTodo, get.StatusDone}, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
