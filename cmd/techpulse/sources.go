package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured sources",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	sources, err := a.store.ListSources()
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		cmd.Println("no sources configured; run 'techpulse seed' to load the defaults")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tACTIVE\tWEIGHT\tLAST FETCHED")
	for _, src := range sources {
		last := "never"
		if !src.LastFetchedAt.IsZero() {
			last = src.LastFetchedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%.1f\t%s\n",
			src.ID, src.Name, src.Type, src.Active, src.Weight, last)
	}
	return w.Flush()
}
