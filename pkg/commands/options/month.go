// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// MonthOptions selects a month and a page of it.
type MonthOptions struct {
	Month    string
	Page     int
	Calendar bool
}

// AddMonthArg registers --month; it accepts a name or a number.
func AddMonthArg(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Month to use, by name ("June") or number ("6" is July, "12" is December).`)
}

// AddPageArgs registers the listing flags.
func AddPageArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().IntVarP(&o.Page, "page", "p", 1,
		"Page of the month to show, starting at 1.")
	cmd.Flags().BoolVar(&o.Calendar, "calendar", false,
		"Also print the month as a calendar, highlighting days with photos.")
}
