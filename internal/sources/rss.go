package sources

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/biglone/techpulse/internal/fetch"
	"github.com/biglone/techpulse/internal/model"
)

// RSS fetches and parses syndication documents. It also covers the Medium
// and Substack source kinds, which are plain feeds with different defaults.
type RSS struct {
	client *fetch.Client
	parser *gofeed.Parser
}

// NewRSS creates the syndication adapter.
func NewRSS(client *fetch.Client) *RSS {
	return &RSS{
		client: client,
		parser: gofeed.NewParser(),
	}
}

// Fetch downloads the feed document and maps its entries to candidates.
// An entry without a link falls back to its GUID, then to the feed URL.
func (a *RSS) Fetch(ctx context.Context, src model.Source) ([]model.Candidate, error) {
	if src.URL == "" {
		return nil, nil
	}

	header := http.Header{}
	header.Set("User-Agent", "Mozilla/5.0 (TechPulse RSS)")
	header.Set("Accept", "application/rss+xml,application/xml;q=0.9,*/*;q=0.8")

	xml, err := a.client.Text(ctx, src.URL, header)
	if err != nil {
		return nil, err
	}

	feed, err := a.parser.ParseString(xml)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", src.URL, err)
	}

	candidates := make([]model.Candidate, 0, len(feed.Items))
	for _, entry := range feed.Items {
		title := entry.Title
		if title == "" {
			title = "Untitled"
		}

		link := entry.Link
		if link == "" {
			link = entry.GUID
		}
		if link == "" {
			link = src.URL
		}

		content := entry.Content
		if content == "" {
			content = entry.Description
		}

		candidates = append(candidates, model.Candidate{
			Title:        title,
			URL:          link,
			CanonicalURL: entry.Link,
			Summary:      entry.Description,
			Content:      content,
			PublishedAt:  publishedTime(entry),
			Tags:         entry.Categories,
		})
	}

	return candidates, nil
}

func publishedTime(entry *gofeed.Item) *time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed
	}
	return entry.UpdatedParsed
}
