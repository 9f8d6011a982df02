package options

import (
	"github.com/spf13/cobra"
)

// SectionOptions names the heading a command works under.
type SectionOptions struct {
	Section string
}

// AddSectionArgs wires the section flag with completion of existing headings.
func AddSectionArgs(cmd *cobra.Command, o *SectionOptions, usage string, complete func(string) []string) {
	cmd.Flags().StringVarP(&o.Section, "section", "s", "", usage)
	if complete != nil {
		_ = cmd.RegisterFlagCompletionFunc("section", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return complete(toComplete), cobra.ShellCompDirectiveNoFileComp
		})
	}
}
