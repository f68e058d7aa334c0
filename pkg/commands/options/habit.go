package options

import (
	"github.com/spf13/cobra"
)

// HabitOptions
type HabitOptions struct {
	Category   string
	LinkedGoal string
}

func AddHabitArgs(cmd *cobra.Command, o *HabitOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "Other",
		"Habit category.")
	cmd.Flags().StringVarP(&o.LinkedGoal, "goal", "g", "",
		"ID of the goal this habit supports.")
}
