package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/strive/pkg/interchange"
	"tableflip.dev/strive/pkg/tracker"
)

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import data from a JSON backup or per-entity CSV files",
		Example: `
strive import json strive-backup-2025-06-15.json
strive import goals goals.csv
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addImportJSON(cmd)
	addImportCSV(cmd, "goals", "Import goals from CSV, appending to the existing goals",
		func(data []byte) interchange.ImportResult {
			return interchange.ImportGoalsCSV(data, time.Now())
		},
		func(s *tracker.Service, d *interchange.DataSet) {
			s.AppendGoals(d.Goals)
		})
	addImportCSV(cmd, "habits", "Import habits from CSV, appending to the existing habits",
		func(data []byte) interchange.ImportResult {
			return interchange.ImportHabitsCSV(data)
		},
		func(s *tracker.Service, d *interchange.DataSet) {
			s.AppendHabits(d.Habits)
		})
	addImportCSV(cmd, "journal", "Import journal entries from CSV, ahead of the existing entries",
		func(data []byte) interchange.ImportResult {
			return interchange.ImportJournalCSV(data, time.Now())
		},
		func(s *tracker.Service, d *interchange.DataSet) {
			s.PrependJournal(d.Journal)
		})

	topLevel.AddCommand(cmd)
}

func addImportJSON(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "json <file>",
		Aliases: []string{"backup"},
		Short:   "Restore a JSON backup, replacing all goals, habits and journal entries",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			res := interchange.ImportJSON(data)
			if !res.Success {
				return fmt.Errorf("import failed: %s", res.Message)
			}

			s, err := loadService()
			if err != nil {
				return err
			}
			s.ReplaceAll(res.Data.Goals, res.Data.Habits, res.Data.Journal)
			fmt.Println(res.Message)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addImportCSV(parent *cobra.Command, name, short string,
	parse func([]byte) interchange.ImportResult,
	merge func(*tracker.Service, *interchange.DataSet)) {

	cmd := &cobra.Command{
		Use:   name + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			res := parse(data)
			if !res.Success {
				return fmt.Errorf("import failed: %s", res.Message)
			}

			s, err := loadService()
			if err != nil {
				return err
			}
			merge(s, res.Data)

			fmt.Println(res.Message)
			if len(res.Errors) > 0 {
				warn := color.New(color.FgYellow)
				_, _ = warn.Fprintf(os.Stderr, "%d rows skipped:\n", len(res.Errors))
				for _, msg := range res.Errors {
					_, _ = warn.Fprintf(os.Stderr, "  %s\n", msg)
				}
			}
			return nil
		},
	}

	parent.AddCommand(cmd)
}
