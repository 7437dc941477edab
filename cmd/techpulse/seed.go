package main

import (
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the default source set",
	Long: `Creates the bundled default sources (engineering blogs, Hacker News,
Reddit, and more). Sources that already exist are left untouched, so
seeding is safe to repeat.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.store.EnsureDefaultSources()
	if err != nil {
		return err
	}
	cmd.Printf("created %d sources\n", created)
	return nil
}
