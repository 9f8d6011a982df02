package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/runner/sections"
)

func addSections(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "sections",
		Aliases: []string{"section"},
		Short:   "List the headings of the active document with task counts.",
		Example: `
tick sections
tick sections -o yaml
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := sections.Sections{
				Session: session,
				Encoder: output.Encoder(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
