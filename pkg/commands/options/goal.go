package options

import (
	"github.com/spf13/cobra"
)

// GoalOptions captures the shared goal flags.
type GoalOptions struct {
	Category string
	Deadline string
	Notes    string
	Image    string
	Progress int
}

func AddGoalArgs(cmd *cobra.Command, o *GoalOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "Other",
		"Goal category, for example Health or Side Project.")
	cmd.Flags().StringVarP(&o.Deadline, "deadline", "d", "",
		`Goal deadline, example: --deadline="2026-02-28".`)
	cmd.Flags().StringVar(&o.Notes, "notes", "",
		"Free-form notes attached to the goal.")
}

// MilestoneOptions
type MilestoneOptions struct {
	DueDate string
}

func AddMilestoneArgs(cmd *cobra.Command, o *MilestoneOptions) {
	cmd.Flags().StringVar(&o.DueDate, "due", "",
		`Milestone due date, example: --due="2026-02-28".`)
}
