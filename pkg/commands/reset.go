package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func addReset(topLevel *cobra.Command) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase every goal, habit, journal entry and focus session",
		Example: `
strive reset --yes
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to erase everything without --yes")
			}
			s, err := loadService()
			if err != nil {
				return err
			}
			if err := s.ResetAll(); err != nil {
				return err
			}
			fmt.Println("all data erased")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm erasing all data.")
	topLevel.AddCommand(cmd)
}
