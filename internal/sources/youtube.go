package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/biglone/techpulse/internal/fetch"
	"github.com/biglone/techpulse/internal/model"
)

const youtubeSearchBase = "https://www.googleapis.com/youtube/v3/search"

// youtubeResult is one entry of a search response.
type youtubeResult struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
	} `json:"snippet"`
}

// YouTube searches for videos matching the source's query handle. The
// adapter needs an API key; without one it returns no candidates and no
// error, so the source is silently skipped.
type YouTube struct {
	client *fetch.Client
	apiKey string
	base   string // overridable for tests
}

// NewYouTube creates the video-search adapter.
func NewYouTube(client *fetch.Client, apiKey string) *YouTube {
	return &YouTube{client: client, apiKey: apiKey, base: youtubeSearchBase}
}

// Fetch searches for up to 25 recent videos; title and summary come from
// the result snippet metadata.
func (a *YouTube) Fetch(ctx context.Context, src model.Source) ([]model.Candidate, error) {
	if a.apiKey == "" {
		return nil, nil
	}

	query := src.Handle
	if query == "" {
		query = "technology"
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", "25")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("key", a.apiKey)

	var resp struct {
		Items []youtubeResult `json:"items"`
	}
	if err := a.client.JSON(ctx, a.base+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	candidates := make([]model.Candidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videoURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.ID.VideoID)

		var published *time.Time
		if item.Snippet.PublishedAt != "" {
			if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
				published = &t
			}
		}

		candidates = append(candidates, model.Candidate{
			Title:        item.Snippet.Title,
			URL:          videoURL,
			CanonicalURL: videoURL,
			Summary:      item.Snippet.Description,
			PublishedAt:  published,
			Tags:         []string{"YouTube"},
		})
	}

	return candidates, nil
}
