package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/biglone/techpulse/internal/fetch"
	"github.com/biglone/techpulse/internal/model"
)

const xSearchBase = "https://api.twitter.com/2/tweets/search/recent"

// xTitleMaxChars caps the candidate title built from the post text.
const xTitleMaxChars = 120

// xTweet is one result of the recent-search endpoint.
type xTweet struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	CreatedAt     string `json:"created_at"`
	PublicMetrics struct {
		LikeCount    int `json:"like_count"`
		RetweetCount int `json:"retweet_count"`
		ReplyCount   int `json:"reply_count"`
	} `json:"public_metrics"`
}

// X runs a recent-search query against the X API. The adapter needs a
// bearer token; without one it returns no candidates and no error, so the
// source is silently skipped.
type X struct {
	client *fetch.Client
	token  string
	base   string // overridable for tests
}

// NewX creates the social-search adapter.
func NewX(client *fetch.Client, token string) *X {
	return &X{client: client, token: token, base: xSearchBase}
}

// Fetch searches recent posts for the source's query handle. The candidate
// title is the first line of the post text, hard-cut at 120 characters;
// engagement is likes + reposts + replies.
func (a *X) Fetch(ctx context.Context, src model.Source) ([]model.Candidate, error) {
	if a.token == "" {
		return nil, nil
	}

	query := src.Handle
	if query == "" {
		query = "technology"
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", "25")
	params.Set("tweet.fields", "created_at,public_metrics")

	header := http.Header{}
	header.Set("Authorization", "Bearer "+a.token)

	var resp struct {
		Data []xTweet `json:"data"`
	}
	if err := a.client.JSON(ctx, a.base+"?"+params.Encode(), header, &resp); err != nil {
		return nil, err
	}

	candidates := make([]model.Candidate, 0, len(resp.Data))
	for _, tweet := range resp.Data {
		postURL := fmt.Sprintf("https://x.com/i/web/status/%s", tweet.ID)

		var published *time.Time
		if tweet.CreatedAt != "" {
			if t, err := time.Parse(time.RFC3339, tweet.CreatedAt); err == nil {
				published = &t
			}
		}

		candidates = append(candidates, model.Candidate{
			Title:        firstLine(tweet.Text, xTitleMaxChars),
			URL:          postURL,
			CanonicalURL: postURL,
			Summary:      tweet.Text,
			PublishedAt:  published,
			Engagement:   tweet.PublicMetrics.LikeCount + tweet.PublicMetrics.RetweetCount + tweet.PublicMetrics.ReplyCount,
			Tags:         []string{"X"},
		})
	}

	return candidates, nil
}

// firstLine takes the first line of text, hard-cut at max runes.
func firstLine(text string, max int) string {
	line, _, _ := strings.Cut(text, "\n")
	runes := []rune(line)
	if len(runes) > max {
		return string(runes[:max])
	}
	return line
}
