package options

import (
	"github.com/spf13/cobra"
)

// FocusOptions
type FocusOptions struct {
	Rating int
	Log    string
	Notes  string
	All    bool
}

func AddFocusCompleteArgs(cmd *cobra.Command, o *FocusOptions) {
	cmd.Flags().IntVarP(&o.Rating, "rating", "r", 0,
		"Session rating from 1 to 10.")
	cmd.Flags().StringVarP(&o.Log, "log", "l", "",
		"Final log line for the session.")
	cmd.Flags().StringVar(&o.Notes, "notes", "",
		"Closing notes for the session.")
}

func AddFocusListArgs(cmd *cobra.Command, o *FocusOptions) {
	cmd.Flags().BoolVar(&o.All, "all", false,
		"List every session instead of the most recent ten.")
}
