// Package sources implements one adapter per source kind. Each adapter
// turns one upstream's response into the common candidate shape the
// ingestion pipeline works on.
package sources

import (
	"context"

	"github.com/biglone/techpulse/internal/config"
	"github.com/biglone/techpulse/internal/fetch"
	"github.com/biglone/techpulse/internal/model"
)

// Adapter fetches the current candidate items for one configured source.
// Adapters are independently fallible; the orchestrator isolates failures.
type Adapter interface {
	Fetch(ctx context.Context, src model.Source) ([]model.Candidate, error)
}

// Registry holds one adapter per source kind and knows which kinds are
// currently usable given the configured credentials.
type Registry struct {
	creds   config.Credentials
	rss     *RSS
	hn      *HackerNews
	reddit  *Reddit
	x       *X
	youtube *YouTube
}

// NewRegistry wires every adapter to the shared HTTP client.
func NewRegistry(client *fetch.Client, creds config.Credentials) *Registry {
	return &Registry{
		creds:   creds,
		rss:     NewRSS(client),
		hn:      NewHackerNews(client),
		reddit:  NewReddit(client),
		x:       NewX(client, creds.XBearerToken),
		youtube: NewYouTube(client, creds.YouTubeAPIKey),
	}
}

// ForType returns the adapter for a source kind, or nil for unknown kinds.
// The kind set is closed, so this is a plain switch.
func (r *Registry) ForType(t model.SourceType) Adapter {
	switch t {
	case model.SourceRSS, model.SourceMedium, model.SourceSubstack:
		return r.rss
	case model.SourceHN:
		return r.hn
	case model.SourceReddit:
		return r.reddit
	case model.SourceX:
		return r.x
	case model.SourceYouTube:
		return r.youtube
	default:
		return nil
	}
}

// Available reports whether sources of this kind can produce items right
// now. Credential-gated kinds without a credential are skipped silently,
// which is a configuration state rather than an error.
func (r *Registry) Available(t model.SourceType) bool {
	switch t {
	case model.SourceX:
		return r.creds.XBearerToken != ""
	case model.SourceYouTube:
		return r.creds.YouTubeAPIKey != ""
	default:
		return true
	}
}
