package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/strive/pkg/category"
	"tableflip.dev/strive/pkg/commands/options"
	"tableflip.dev/strive/pkg/printers"
	"tableflip.dev/strive/pkg/tracker"
)

func addGoal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals"},
		Short:   "Manage goals and their milestones",
		Example: `
strive goal add "Run a marathon" --category Health --deadline 2026-04-01
strive goal list
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addGoalAdd(cmd)
	addGoalList(cmd)
	addGoalSet(cmd)
	addGoalRm(cmd)
	addMilestone(cmd)

	topLevel.AddCommand(cmd)
}

func addGoalAdd(parent *cobra.Command) {
	gopt := &options.GoalOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Example: `
strive goal add "Save an emergency fund" -c Finance -d 2026-06-30
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a goal title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			g := s.AddGoal(title, category.Parse(gopt.Category), gopt.Deadline)
			if gopt.Notes != "" {
				s.UpdateGoal(g.ID, tracker.GoalUpdate{Notes: &gopt.Notes})
			}
			flushMirror(s)
			fmt.Printf("added goal %s\n", g.ID)
			return nil
		},
	}

	options.AddGoalArgs(cmd, gopt)
	parent.AddCommand(cmd)
}

func addGoalList(parent *cobra.Command) {
	io := &options.IDOptions{}
	var cat string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals",
		Example: `
strive goal list
strive goal list --category Health --show-id
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			goals := s.Goals()
			if cat != "" {
				goals = s.GoalsByCategory(category.Parse(cat))
			}

			if output.JSON {
				b, err := json.MarshalIndent(goals, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}

			pp := printers.PrettyPrint{ShowID: io.ShowID}
			pp.TitleWithCount("Goals", len(goals))
			pp.Goals(goals...)
			for _, g := range goals {
				if len(g.Milestones) > 0 {
					pp.Title(g.Title)
					pp.Milestones(g)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cat, "category", "c", "", "Only list goals in this category.")
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addGoalSet(parent *cobra.Command) {
	io := &options.IDOptions{}
	gopt := &options.GoalOptions{}

	cmd := &cobra.Command{
		Use:   "set <goal id>",
		Short: "Update a goal's fields",
		Example: `
strive goal set 4f7c... --progress 40
strive goal set 4f7c... -c Learning -d 2026-01-01
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a goal id")
			}
			io.ID = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}

			upd := tracker.GoalUpdate{}
			if cmd.Flags().Changed("category") {
				c := category.Parse(gopt.Category)
				upd.Category = &c
			}
			if cmd.Flags().Changed("deadline") {
				upd.Deadline = &gopt.Deadline
			}
			if cmd.Flags().Changed("notes") {
				upd.Notes = &gopt.Notes
			}
			if cmd.Flags().Changed("progress") {
				upd.Progress = &gopt.Progress
			}

			g, ok := s.UpdateGoal(io.ID, upd)
			if !ok {
				return fmt.Errorf("no goal with id %s", io.ID)
			}
			flushMirror(s)

			pp := printers.PrettyPrint{}
			pp.Goals(g)
			return nil
		},
	}

	options.AddGoalArgs(cmd, gopt)
	cmd.Flags().IntVarP(&gopt.Progress, "progress", "p", 0, "Progress percentage from 0 to 100.")
	parent.AddCommand(cmd)
}

func addGoalRm(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm <goal id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a goal",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a goal id")
			}
			io.ID = args[0]
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			if !s.DeleteGoal(io.ID) {
				return fmt.Errorf("no goal with id %s", io.ID)
			}
			flushMirror(s)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addMilestone(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "milestone",
		Aliases: []string{"ms"},
		Short:   "Manage a goal's milestones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addMilestoneAdd(cmd)
	addMilestoneSet(cmd)
	addMilestoneToggle(cmd)
	addMilestoneRm(cmd)

	parent.AddCommand(cmd)
}

func addMilestoneAdd(parent *cobra.Command) {
	mo := &options.MilestoneOptions{}
	var goalID, title string

	cmd := &cobra.Command{
		Use:   "add <goal id> <title>",
		Short: "Add a milestone to a goal",
		Example: `
strive goal milestone add 4f7c... "Sign up for the race" --due 2026-01-15
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a goal id and a milestone title")
			}
			goalID = args[0]
			title = strings.Join(args[1:], " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			g, ok := s.AddMilestone(goalID, title, mo.DueDate)
			if !ok {
				return fmt.Errorf("no goal with id %s", goalID)
			}
			flushMirror(s)

			pp := printers.PrettyPrint{}
			pp.Title(g.Title)
			pp.Milestones(g)
			return nil
		},
	}

	options.AddMilestoneArgs(cmd, mo)
	parent.AddCommand(cmd)
}

func addMilestoneSet(parent *cobra.Command) {
	mo := &options.MilestoneOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "set <goal id> <milestone id>",
		Short: "Update a milestone's fields",
		Example: `
strive goal milestone set 4f7c... 9a21... --due 2026-02-01
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}

			upd := tracker.MilestoneUpdate{}
			if cmd.Flags().Changed("title") {
				upd.Title = &title
			}
			if cmd.Flags().Changed("due") {
				upd.DueDate = &mo.DueDate
			}

			g, ok := s.UpdateMilestone(args[0], args[1], upd)
			if !ok {
				return fmt.Errorf("no milestone %s on goal %s", args[1], args[0])
			}
			flushMirror(s)

			pp := printers.PrettyPrint{}
			pp.Title(g.Title)
			pp.Milestones(g)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New milestone title.")
	options.AddMilestoneArgs(cmd, mo)
	parent.AddCommand(cmd)
}

func addMilestoneToggle(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "toggle <goal id> <milestone id>",
		Aliases: []string{"done"},
		Short:   "Toggle a milestone's completion",
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			g, ok := s.ToggleMilestone(args[0], args[1])
			if !ok {
				return fmt.Errorf("no milestone %s on goal %s", args[1], args[0])
			}
			flushMirror(s)

			pp := printers.PrettyPrint{}
			pp.Title(g.Title)
			pp.Milestones(g)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addMilestoneRm(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <goal id> <milestone id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a milestone",
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			if _, ok := s.DeleteMilestone(args[0], args[1]); !ok {
				return fmt.Errorf("no milestone %s on goal %s", args[1], args[0])
			}
			flushMirror(s)
			return nil
		},
	}

	parent.AddCommand(cmd)
}
