package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func addSync(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Work with the optional remote mirror",
		Example: `
strive sync health
strive sync migrate
strive sync refresh
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addSyncHealth(cmd)
	addSyncMigrate(cmd)
	addSyncRefresh(cmd)

	topLevel.AddCommand(cmd)
}

func addSyncHealth(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check connectivity to the remote backend",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			m := s.Mirror()
			if m.LocalOnly() {
				fmt.Println("local-only mode, no remote configured")
				return nil
			}
			if !m.Healthy(context.Background()) {
				return fmt.Errorf("remote backend is unreachable")
			}
			fmt.Println("remote backend is healthy")
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addSyncMigrate(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bulk-push all local data to the remote backend",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			goals, habits, journal, _ := s.Snapshot()
			if err := s.Mirror().MigrateAll(context.Background(), goals, habits, journal); err != nil {
				return err
			}
			fmt.Printf("migrated %d goals, %d habits, %d journal entries\n",
				len(goals), len(habits), len(journal))
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func addSyncRefresh(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Replace local goals, habits and journal with the remote copy",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadService()
			if err != nil {
				return err
			}
			if err := s.Refresh(context.Background()); err != nil {
				return err
			}
			goals, habits, journal, _ := s.Snapshot()
			fmt.Printf("refreshed %d goals, %d habits, %d journal entries\n",
				len(goals), len(habits), len(journal))
			return nil
		},
	}

	parent.AddCommand(cmd)
}
