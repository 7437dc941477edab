package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/biglone/techpulse/internal/fetch"
	"github.com/biglone/techpulse/internal/model"
)

const redditBase = "https://www.reddit.com"

// redditUserAgent identifies us; Reddit rejects default library agents.
const redditUserAgent = "TechPulse/0.1 (+https://tech-pulse.biglone.tech)"

// redditPost is one entry of a subreddit listing.
type redditPost struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Selftext    string  `json:"selftext"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

// Reddit fetches the "new" listing of a subreddit.
type Reddit struct {
	client *fetch.Client
	base   string // overridable for tests
}

// NewReddit creates the subreddit-listing adapter.
func NewReddit(client *fetch.Client) *Reddit {
	return &Reddit{client: client, base: redditBase}
}

// Fetch retrieves the newest posts of the source's subreddit handle.
// Entries missing a title or URL are dropped; engagement is the post score.
func (a *Reddit) Fetch(ctx context.Context, src model.Source) ([]model.Candidate, error) {
	subreddit := src.Handle
	if subreddit == "" {
		subreddit = "programming"
	}

	listingURL := fmt.Sprintf("%s/r/%s/new.json?limit=50", a.base, url.PathEscape(subreddit))
	header := http.Header{}
	header.Set("User-Agent", redditUserAgent)

	var resp struct {
		Data struct {
			Children []struct {
				Data redditPost `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := a.client.JSON(ctx, listingURL, header, &resp); err != nil {
		return nil, err
	}

	candidates := make([]model.Candidate, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		post := child.Data
		if post.Title == "" || post.URL == "" {
			continue
		}

		summary := post.Selftext
		if summary == "" {
			summary = "Reddit post"
		}

		var published *time.Time
		if post.CreatedUTC > 0 {
			t := time.Unix(int64(post.CreatedUTC), 0).UTC()
			published = &t
		}

		candidates = append(candidates, model.Candidate{
			Title:        post.Title,
			URL:          post.URL,
			CanonicalURL: post.URL,
			Summary:      summary,
			PublishedAt:  published,
			Engagement:   post.Score,
			Comments:     post.NumComments,
			Tags:         []string{"Reddit", subreddit},
		})
	}

	return candidates, nil
}
