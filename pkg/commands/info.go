package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/runner/info"
	"tableflip.dev/tick/pkg/store"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the config and where the documents are stored.",
		Example: `
tick info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return output.HandleError(err)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Config:      cfg,
				Persistence: p,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
