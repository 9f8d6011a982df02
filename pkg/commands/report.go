package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/runner/log"
)

func addReport(topLevel *cobra.Command) {
	var (
		window   string
		calendar bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show what got done over a window of days.",
		Example: `
tick report
tick report --last 2w
tick report --last 3m --calendar
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := log.Report{
				Session:  session,
				Window:   window,
				Until:    time.Now(),
				Calendar: calendar,
				Encoder:  output.Encoder(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&window, "last", "7d", "Window to report on, e.g. 3d, 2w or 1m.")
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Show completion counts on month calendars.")

	topLevel.AddCommand(cmd)
}

func addAgenda(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	var days int

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show open tasks by deadline, day by day.",
		Example: `
tick agenda
tick agenda --days 14
tick agenda --on 11/1
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			from, err := on.GetOn(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := log.Agenda{
				Session: session,
				From:    from,
				Days:    days,
				ShowID:  io.ShowID,
				Encoder: output.Encoder(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().IntVar(&days, "days", log.DefaultAgendaDays, "Number of days to show.")
	options.AddOnArgs(cmd, on, "First day of the agenda, today when unset.")
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
