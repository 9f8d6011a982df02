package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions, usage string) {
	cmd.Flags().StringVar(&o.OnString, "on", "", usage+
		` Example: --on="2026-2-28" or --on="2/28".`)
}

// GetOn parses the flag relative to now. Unset means today. A short date
// that is already behind now falls in next year.
func (o *OnOptions) GetOn(now time.Time) (time.Time, error) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if o.OnString == "" {
		return today, nil
	}
	t, err := time.ParseInLocation(layoutISO, o.OnString, now.Location())
	if err != nil {
		t, err = time.ParseInLocation(layoutISOShort, o.OnString, now.Location())
		if err != nil {
			return time.Time{}, err
		}
		t = t.AddDate(now.Year(), 0, 0)
		if t.Before(today) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return t, nil
}
