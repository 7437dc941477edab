package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/biglone/techpulse/internal/fetch"
	"github.com/biglone/techpulse/internal/model"
)

// hnSearchURL is the Algolia "newest stories" endpoint, page size 50.
const hnSearchURL = "https://hn.algolia.com/api/v1/search_by_date?tags=story&hitsPerPage=50"

// hnHit is one story from the Algolia search API.
type hnHit struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	CreatedAt   string `json:"created_at"`
	ObjectID    string `json:"objectID"`
	Points      int    `json:"points"`
	NumComments int    `json:"num_comments"`
}

// HackerNews fetches the newest stories from the HN Algolia API.
type HackerNews struct {
	client *fetch.Client
	base   string // overridable for tests
}

// NewHackerNews creates the forum-ranking adapter.
func NewHackerNews(client *fetch.Client) *HackerNews {
	return &HackerNews{client: client, base: hnSearchURL}
}

// Fetch queries the newest-stories endpoint. Engagement is the story's
// point score; stories without an external URL link to the HN discussion.
func (a *HackerNews) Fetch(ctx context.Context, src model.Source) ([]model.Candidate, error) {
	var resp struct {
		Hits []hnHit `json:"hits"`
	}
	if err := a.client.JSON(ctx, a.base, nil, &resp); err != nil {
		return nil, err
	}

	candidates := make([]model.Candidate, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		url := hit.URL
		if url == "" {
			url = fmt.Sprintf("https://news.ycombinator.com/item?id=%s", hit.ObjectID)
		}

		var published *time.Time
		if hit.CreatedAt != "" {
			if t, err := time.Parse(time.RFC3339, hit.CreatedAt); err == nil {
				published = &t
			}
		}

		candidates = append(candidates, model.Candidate{
			Title:        hit.Title,
			URL:          url,
			CanonicalURL: url,
			Summary:      "Hacker News discussion",
			PublishedAt:  published,
			Engagement:   hit.Points,
			Comments:     hit.NumComments,
			Tags:         []string{"HN"},
		})
	}

	return candidates, nil
}
