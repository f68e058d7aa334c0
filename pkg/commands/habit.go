package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/strive/pkg/commands/options"
	"tableflip.dev/strive/pkg/printers"
	"tableflip.dev/strive/pkg/tracker"
)

func addHabit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits"},
		Short:   "Manage daily habits",
		Example: `
strive habit add "Morning run" --category Health
strive habit toggle <habit id>
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addHabitAdd(cmd)
	addHabitList(cmd)
	addHabitSet(cmd)
	addHabitToggle(cmd)
	addHabitRm(cmd)

	topLevel.AddCommand(cmd)
}

func addHabitAdd(parent *cobra.Command) {
	ho := &options.HabitOptions{}
	var name string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a habit name")
			}
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			h := s.AddHabit(name, ho.Category, ho.LinkedGoal)
			flushMirror(s)
			fmt.Printf("added habit %s\n", h.ID)
			return nil
		},
	}

	options.AddHabitArgs(cmd, ho)
	parent.AddCommand(cmd)
}

func addHabitList(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits with their streaks",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			habits := s.Habits()

			if output.JSON {
				b, err := json.MarshalIndent(habits, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}

			pp := printers.PrettyPrint{ShowID: io.ShowID}
			pp.TitleWithCount("Habits", len(habits))
			pp.Habits(habits...)
			return nil
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addHabitSet(parent *cobra.Command) {
	ho := &options.HabitOptions{}
	var name string

	cmd := &cobra.Command{
		Use:   "set <habit id>",
		Short: "Update a habit's fields",
		Example: `
strive habit set 4f7c... --name "Evening run" -c Health
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}

			upd := tracker.HabitUpdate{}
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("category") {
				upd.Category = &ho.Category
			}
			if cmd.Flags().Changed("goal") {
				upd.LinkedGoalID = &ho.LinkedGoal
			}

			h, ok := s.UpdateHabit(args[0], upd)
			if !ok {
				return fmt.Errorf("no habit with id %s", args[0])
			}
			flushMirror(s)

			pp := printers.PrettyPrint{}
			pp.Habits(h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New habit name.")
	options.AddHabitArgs(cmd, ho)
	parent.AddCommand(cmd)
}

func addHabitToggle(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "toggle <habit id>",
		Aliases: []string{"done", "did"},
		Short:   "Mark a habit done (or undone) for today",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			h, ok := s.ToggleHabit(args[0])
			if !ok {
				return fmt.Errorf("no habit with id %s", args[0])
			}
			flushMirror(s)

			pp := printers.PrettyPrint{}
			pp.Habits(h)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addHabitRm(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <habit id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a habit",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			if !s.DeleteHabit(args[0]) {
				return fmt.Errorf("no habit with id %s", args[0])
			}
			flushMirror(s)
			return nil
		},
	}

	parent.AddCommand(cmd)
}
