package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/strive/pkg/store"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the store for changes until interrupted",
		Long: "Watches the data directory and reports which collection changed. " +
			"Useful alongside a second terminal or a sync job writing to the " +
			"same store.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			events, err := p.Watch(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("watching %s\n", cfg.BasePath())
			for evt := range events {
				switch evt.Type {
				case store.EventCollectionChanged:
					fmt.Printf("%s changed\n", evt.Collection)
				case store.EventStoreInvalidated:
					fmt.Println("store changed, reload everything")
				}
			}
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
