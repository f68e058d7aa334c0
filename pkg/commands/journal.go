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

func addJournal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "journal",
		Aliases: []string{"log"},
		Short:   "Keep a daily journal",
		Example: `
strive journal add "Shipped the first draft" --mood 🎉
strive journal list
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addJournalAdd(cmd)
	addJournalList(cmd)
	addJournalSet(cmd)
	addJournalRm(cmd)

	topLevel.AddCommand(cmd)
}

func addJournalAdd(parent *cobra.Command) {
	jo := &options.JournalOptions{}
	var content string

	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Add a journal entry",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires entry content")
			}
			content = strings.Join(args, " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			e := s.AddJournalEntry(content, jo.Mood, jo.LinkedGoal)
			flushMirror(s)
			fmt.Printf("added entry %s\n", e.ID)
			return nil
		},
	}

	options.AddJournalArgs(cmd, jo)
	parent.AddCommand(cmd)
}

func addJournalList(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List journal entries, newest first",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			entries := s.Journal()

			if output.JSON {
				b, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}

			pp := printers.PrettyPrint{ShowID: io.ShowID}
			pp.TitleWithCount("Journal", len(entries))
			pp.Journal(entries...)
			return nil
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addJournalSet(parent *cobra.Command) {
	jo := &options.JournalOptions{}
	var content string

	cmd := &cobra.Command{
		Use:   "set <entry id>",
		Short: "Update a journal entry",
		Example: `
strive journal set 4f7c... --mood 😤
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}

			upd := tracker.JournalUpdate{}
			if cmd.Flags().Changed("content") {
				upd.Content = &content
			}
			if cmd.Flags().Changed("mood") {
				upd.Mood = &jo.Mood
			}
			if cmd.Flags().Changed("goal") {
				upd.LinkedGoalID = &jo.LinkedGoal
			}

			e, ok := s.UpdateJournalEntry(args[0], upd)
			if !ok {
				return fmt.Errorf("no journal entry with id %s", args[0])
			}
			flushMirror(s)

			pp := printers.PrettyPrint{}
			pp.Journal(e)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "New entry content.")
	options.AddJournalArgs(cmd, jo)
	parent.AddCommand(cmd)
}

func addJournalRm(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <entry id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a journal entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			if !s.DeleteJournalEntry(args[0]) {
				return fmt.Errorf("no journal entry with id %s", args[0])
			}
			flushMirror(s)
			return nil
		},
	}

	parent.AddCommand(cmd)
}
