package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/strive/pkg/commands/options"
	"tableflip.dev/strive/pkg/interchange"
	"tableflip.dev/strive/pkg/tracker"
)

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export data to a JSON backup or per-entity CSV files",
		Example: `
strive export json
strive export goals --out goals.csv
strive export focus
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addExportJSON(cmd)
	addExportCSV(cmd, "goals", "Export goals as CSV", func(s *tracker.Service, w io.Writer) error {
		return interchange.ExportGoalsCSV(w, s.Goals())
	})
	addExportCSV(cmd, "milestones", "Export every goal's milestones as CSV", func(s *tracker.Service, w io.Writer) error {
		return interchange.ExportMilestonesCSV(w, s.Goals())
	})
	addExportCSV(cmd, "habits", "Export habits as CSV", func(s *tracker.Service, w io.Writer) error {
		return interchange.ExportHabitsCSV(w, s.Habits())
	})
	addExportCSV(cmd, "journal", "Export journal entries as CSV", func(s *tracker.Service, w io.Writer) error {
		return interchange.ExportJournalCSV(w, s.Journal())
	})
	addExportCSV(cmd, "focus", "Export focus sessions as CSV", func(s *tracker.Service, w io.Writer) error {
		return interchange.ExportFocusCSV(w, s.FocusTasks())
	})

	topLevel.AddCommand(cmd)
}

func addExportJSON(parent *cobra.Command) {
	fo := &options.FileOptions{}

	cmd := &cobra.Command{
		Use:     "json",
		Aliases: []string{"backup"},
		Short:   "Export everything as a dated JSON backup",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}

			now := time.Now()
			path := fo.Out
			if path == "" {
				path = fmt.Sprintf("strive-backup-%s.json", now.Format("2006-01-02"))
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			goals, habits, journal, _ := s.Snapshot()
			if err := interchange.ExportJSON(f, goals, habits, journal, now); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	options.AddOutArgs(cmd, fo)
	parent.AddCommand(cmd)
}

// addExportCSV registers one CSV export subcommand. They all share the same
// shape: load, serialize, write to --out or stdout.
func addExportCSV(parent *cobra.Command, name, short string, write func(*tracker.Service, io.Writer) error) {
	fo := &options.FileOptions{}

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if fo.Out != "" {
				f, err := os.Create(fo.Out)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			return write(s, w)
		},
	}

	options.AddOutArgs(cmd, fo)
	parent.AddCommand(cmd)
}
