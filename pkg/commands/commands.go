package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/strive/pkg/remote"
	"tableflip.dev/strive/pkg/store"
	"tableflip.dev/strive/pkg/tracker"
)

var (
	output = &base.OutputOptions{}
)

func New() *cobra.Command {
	// A .env next to the binary can hold STRIVE_* settings for development.
	_ = godotenv.Load()

	cmd := &cobra.Command{
		Use:   "strive",
		Short: base.Wrap80("Personal goal, habit and focus tracking on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addGoal(topLevel)
	addHabit(topLevel)
	addJournal(topLevel)
	addFocus(topLevel)
	addUpcoming(topLevel)
	addPriorities(topLevel)
	addSummary(topLevel)
	addReport(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addSync(topLevel)
	addWatch(topLevel)
	addReset(topLevel)
	addVersion(topLevel)
}

// loadService builds the tracker service from config: diskv persistence plus
// the remote mirror, which stays inert unless remote mode is enabled.
func loadService() (*tracker.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	rc := cfg.Remote()
	m := remote.New(remote.Config{URL: rc.URL, Enabled: rc.Enabled, Timeout: rc.Timeout})
	return tracker.New(p, m), nil
}

// flushMirror drains the outbox after a mutation. Delivery is best effort;
// a failure is reported but never fails the command. Local state remains
// authoritative either way.
func flushMirror(s *tracker.Service) {
	m := s.Mirror()
	if m.LocalOnly() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := m.Flush(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
}
