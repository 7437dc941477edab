package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/biglone/techpulse/internal/logging"
	"github.com/biglone/techpulse/internal/sched"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the ingestion worker until interrupted",
	Long: `Starts the background worker: seeds the default sources on first run,
then ingests all active sources immediately and on a fixed interval.
Stops cleanly on SIGINT or SIGTERM.`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.store.EnsureDefaultSources()
	if err != nil {
		return err
	}
	if created > 0 {
		logging.Info("seeded default sources", "created", created)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(a.cfg.IntervalMinutes) * time.Minute
	scheduler := sched.New(a.ing, interval)
	scheduler.Run(ctx)
	return nil
}
