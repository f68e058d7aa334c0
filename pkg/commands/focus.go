package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/strive/pkg/commands/options"
	"tableflip.dev/strive/pkg/printers"
)

func addFocus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run Flowtime-style focus sessions",
		Example: `
strive focus add "Write the quarterly report"
strive focus start <task id>
strive focus complete <task id> --rating 7
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addFocusAdd(cmd)
	addFocusList(cmd)
	addFocusStart(cmd)
	addFocusLog(cmd)
	addFocusComplete(cmd)
	addFocusRest(cmd)
	addFocusRested(cmd)
	addFocusRm(cmd)

	topLevel.AddCommand(cmd)
}

func addFocusAdd(parent *cobra.Command) {
	var title string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Queue a focus task",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			t := s.AddFocusTask(title)
			fmt.Printf("added focus task %s\n", t.ID)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addFocusList(parent *cobra.Command) {
	io := &options.IDOptions{}
	fo := &options.FocusOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List focus sessions, most recent first",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			limit := 10
			if fo.All {
				limit = 0
			}
			tasks := s.RecentFocusTasks(limit)

			pp := printers.PrettyPrint{ShowID: io.ShowID}
			pp.TitleWithCount("Focus", len(tasks))
			pp.Focus(tasks...)
			return nil
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddFocusListArgs(cmd, fo)
	parent.AddCommand(cmd)
}

func addFocusStart(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "start <task id>",
		Short: "Start a pending focus task",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			t, err := s.StartFocus(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("focusing on %q, work until it stops flowing\n", t.Title)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addFocusLog(parent *cobra.Command) {
	var id, note string

	cmd := &cobra.Command{
		Use:   "log <task id> <note>",
		Short: "Add a note to the running session",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a task id and a note")
			}
			id = args[0]
			note = strings.Join(args[1:], " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			if _, err := s.LogFocus(id, note); err != nil {
				return err
			}
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addFocusComplete(parent *cobra.Command) {
	fo := &options.FocusOptions{}

	cmd := &cobra.Command{
		Use:     "complete <task id>",
		Aliases: []string{"done"},
		Short:   "End the work interval",
		Example: `
strive focus complete <task id> --rating 7 --notes "good flow"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			t, err := s.CompleteFocus(args[0], fo.Log, fo.Rating, fo.Notes)
			if err != nil {
				return err
			}
			worked := time.Duration(t.Duration) * time.Millisecond
			rest := time.Duration(t.SuggestedRestTime) * time.Millisecond
			fmt.Printf("worked %s, consider resting for %s\n", worked.Round(time.Minute), rest)
			return nil
		},
	}

	options.AddFocusCompleteArgs(cmd, fo)
	parent.AddCommand(cmd)
}

func addFocusRest(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rest <task id>",
		Short: "Start the rest interval after a completed session",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			t, err := s.StartRest(args[0])
			if err != nil {
				return err
			}
			rest := time.Duration(t.SuggestedRestTime) * time.Millisecond
			fmt.Printf("resting, %s suggested\n", rest)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addFocusRested(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rested <task id>",
		Short: "Finish the rest interval and close the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			t, err := s.EndRest(args[0])
			if err != nil {
				return err
			}
			rested := time.Duration(t.RestDuration) * time.Millisecond
			fmt.Printf("rested %s, session closed\n", rested.Round(time.Minute))
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addFocusRm(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <task id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a focus task",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			if !s.DeleteFocusTask(args[0]) {
				return fmt.Errorf("no focus task with id %s", args[0])
			}
			return nil
		},
	}

	parent.AddCommand(cmd)
}
