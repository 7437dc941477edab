package main

import (
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run a single ingestion pass and exit",
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.ing.IngestAll(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("ingested %d items from %d sources\n", stats.Items, stats.Sources)
	return nil
}
