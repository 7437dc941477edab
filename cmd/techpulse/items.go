package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biglone/techpulse/internal/store"
)

var (
	flagItemsSort  string
	flagItemsQuery string
	flagItemsTag   string
	flagItemsLimit int
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List stored items",
	Long: `Lists stored items. The default "hot" sort orders by score; "latest"
orders by publication time.`,
	RunE: runItems,
}

func init() {
	itemsCmd.Flags().StringVar(&flagItemsSort, "sort", "hot", "sort order: hot or latest")
	itemsCmd.Flags().StringVar(&flagItemsQuery, "query", "", "filter by text in title, summary, or content")
	itemsCmd.Flags().StringVar(&flagItemsTag, "tag", "", "filter by tag")
	itemsCmd.Flags().IntVar(&flagItemsLimit, "limit", 20, "maximum items to show (1-100)")
	rootCmd.AddCommand(itemsCmd)
}

func runItems(cmd *cobra.Command, args []string) error {
	if flagItemsSort != "hot" && flagItemsSort != "latest" {
		return fmt.Errorf("invalid sort %q: must be hot or latest", flagItemsSort)
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	items, err := a.store.ListItems(store.ListOptions{
		Query: flagItemsQuery,
		Tag:   flagItemsTag,
		Sort:  flagItemsSort,
		Limit: flagItemsLimit,
	})
	if err != nil {
		return err
	}
	if len(items) == 0 {
		cmd.Println("no items found")
		return nil
	}

	for _, item := range items {
		published := "unknown"
		if item.PublishedAt != nil {
			published = item.PublishedAt.Local().Format("2006-01-02 15:04")
		}
		cmd.Printf("%6.1f  %s\n", item.Score, item.Title)
		cmd.Printf("        %s\n", item.CanonicalURL)
		meta := []string{published}
		if item.Tags != "" {
			meta = append(meta, item.Tags)
		}
		if item.Engagement > 0 {
			meta = append(meta, fmt.Sprintf("%d engagement", item.Engagement))
		}
		cmd.Printf("        %s\n\n", strings.Join(meta, " | "))
	}
	return nil
}
