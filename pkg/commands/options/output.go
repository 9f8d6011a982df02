package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Format string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.PersistentFlags().StringVarP(&po.Format, "output", "o", "",
		"Output format. One of 'json' or 'yaml'. Pretty printed when unset.")
}

// Encoder returns the structured encoder picked by the flags.
func (o *OutputOptions) Encoder() printers.Encoder {
	if o.JSON {
		return printers.Encoder{Format: printers.FormatJSON}
	}
	return printers.Encoder{Format: o.Format}
}

func (o *OutputOptions) HandleError(err error) error {
	if o.Encoder().Format == printers.FormatJSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
