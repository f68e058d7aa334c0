package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/strive/pkg/printers"
)

func addUpcoming(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show goal and milestone deadlines coming up",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			ds := s.UpcomingDeadlines()

			if output.JSON {
				b, err := json.MarshalIndent(ds, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}

			pp := printers.PrettyPrint{}
			pp.TitleWithCount("Upcoming deadlines", len(ds))
			pp.Deadlines(ds...)
			return nil
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addPriorities(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "priorities",
		Aliases: []string{"today"},
		Short:   "Show the top five things to work on today",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			ps := s.TodaysPriorities()

			if output.JSON {
				b, err := json.MarshalIndent(ps, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}

			pp := printers.PrettyPrint{}
			pp.TitleWithCount("Today's priorities", len(ps))
			pp.Priorities(ps...)
			return nil
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addSummary(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show mean goal progress per category",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			progress := s.CategoryProgress()

			if output.JSON {
				b, err := json.MarshalIndent(progress, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}

			pp := printers.PrettyPrint{}
			pp.Title("Progress by category")
			pp.CategorySummary(progress)
			return nil
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
