package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/strive/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var window string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize recent activity",
		Example: `
strive report
strive report --window 3d
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			dur, label, err := timeutil.ParseWindow(window)
			if err != nil {
				return err
			}

			s, err := loadService()
			if err != nil {
				return err
			}
			r := s.ActivityReport(dur)

			if output.JSON {
				b, err := json.MarshalIndent(r, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}

			focused := time.Duration(r.FocusedMs) * time.Millisecond
			fmt.Printf("last %s:\n", label)
			fmt.Printf("  focus      %d sessions, %s", r.FocusSessions, timeutil.FormatWindow(focused))
			if r.MeanRating > 0 {
				fmt.Printf(", mean rating %.1f", r.MeanRating)
			}
			fmt.Println()
			fmt.Printf("  journal    %d entries\n", r.JournalEntries)
			fmt.Printf("  habits     %d done today\n", r.HabitsDoneToday)
			fmt.Printf("  goals      %d at 100%%\n", r.GoalsCompleted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", timeutil.DefaultWindow,
		"Lookback window, for example 1w or 3d12h.")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
