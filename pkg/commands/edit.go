package commands

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/pick"
	"tableflip.dev/tick/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	io := &options.IDOptions{}
	var (
		text   string
		raw    bool
		editor string
	)

	cmd := &cobra.Command{
		Use:   "edit [<task> --text <new text>]",
		Short: "Rename a task keeping its tags, or edit the whole document with --raw.",
		Example: `
tick edit water plants --text "water the plants"
tick edit -i
tick edit --raw
tick edit --raw --editor nano
`,
		Args: func(_ *cobra.Command, args []string) error {
			if raw {
				if len(args) > 0 {
					return errors.New("--raw edits the whole document and takes no task")
				}
				return nil
			}
			return to.Args(args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			session, _, err := loadSession()
			if err != nil {
				return output.HandleError(err)
			}
			if raw {
				r := edit.Raw{
					Session: session,
					Editor:  editor,
					Stdin:   os.Stdin,
					Stdout:  os.Stdout,
					Stderr:  os.Stderr,
				}
				return output.HandleError(r.Do(ctx))
			}

			t, err := to.Resolve(ctx, session, "Edit")
			if err != nil {
				return output.HandleError(err)
			}
			if strings.TrimSpace(text) == "" {
				if text, err = (pick.Prompter{}).Text("Text", t.Text); err != nil {
					return output.HandleError(err)
				}
			}
			s := edit.Edit{
				Session: session,
				ID:      t.ID,
				Text:    text,
				ShowID:  io.ShowID,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "The new task text. Prompts when unset.")
	cmd.Flags().BoolVar(&raw, "raw", false, "Open the whole document in $VISUAL or $EDITOR.")
	cmd.Flags().StringVar(&editor, "editor", "", "Editor command used with --raw.")
	options.InteractiveArgs(cmd, &to.InteractiveOptions)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
