package options

import (
	"github.com/spf13/cobra"
)

// JournalOptions
type JournalOptions struct {
	Mood       string
	LinkedGoal string
}

func AddJournalArgs(cmd *cobra.Command, o *JournalOptions) {
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", "😊",
		"Mood emoji for the entry.")
	cmd.Flags().StringVarP(&o.LinkedGoal, "goal", "g", "",
		"ID of the goal this entry relates to.")
}
