package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/routine/pkg/timeutil"
)

// HistoryOptions
type HistoryOptions struct {
	Last     string
	Calendar bool

	// Days is set by Validate.
	Days int
}

func AddHistoryArgs(cmd *cobra.Command, o *HistoryOptions) {
	cmd.Flags().StringVarP(&o.Last, "last", "l", timeutil.DefaultWindow,
		"Window to show, ending today (for example 3d, 2w, 1w3d).")
	cmd.Flags().BoolVarP(&o.Calendar, "calendar", "c", false,
		"Show the current month as a calendar.")
}

func (o *HistoryOptions) Validate(max int) error {
	days, _, err := timeutil.ParseWindow(o.Last)
	if err != nil {
		return err
	}
	if days > max {
		return fmt.Errorf("--last covers %d days, at most %d are kept", days, max)
	}
	o.Days = days
	return nil
}
