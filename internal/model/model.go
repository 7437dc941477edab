// Package model provides the core data types for TechPulse.
package model

import "time"

// SourceType identifies the kind of upstream a source pulls from.
type SourceType string

const (
	SourceRSS      SourceType = "rss"
	SourceMedium   SourceType = "medium"
	SourceSubstack SourceType = "substack"
	SourceHN       SourceType = "hn"
	SourceReddit   SourceType = "reddit"
	SourceX        SourceType = "x"
	SourceYouTube  SourceType = "youtube"
)

// SourceTypes lists every supported source type.
var SourceTypes = []SourceType{
	SourceRSS,
	SourceMedium,
	SourceSubstack,
	SourceHN,
	SourceReddit,
	SourceX,
	SourceYouTube,
}

// UsesFeedURL reports whether sources of this type are configured with a
// feed URL. The remaining types are configured with a query handle instead.
func (t SourceType) UsesFeedURL() bool {
	switch t {
	case SourceRSS, SourceMedium, SourceSubstack:
		return true
	}
	return false
}

// RequiresAuth reports whether sources of this type need an external
// credential before they can be fetched.
func (t SourceType) RequiresAuth() bool {
	return t == SourceX || t == SourceYouTube
}

// Valid reports whether t is a known source type.
func (t SourceType) Valid() bool {
	for _, known := range SourceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Source is a configured upstream feed.
//
// Feed-kind sources (rss, medium, substack) carry a URL; handle-kind sources
// (hn, reddit, x, youtube) carry a query handle. Deactivated sources are kept
// but skipped by the ingestion pipeline.
type Source struct {
	ID            int64
	Name          string
	Type          SourceType
	URL           string // feed URL for feed-kind sources
	Handle        string // subreddit / search query for handle-kind sources
	Tags          string // comma-joined tag list declared by the source owner
	Weight        float64
	Active        bool
	RequiresAuth  bool
	LastFetchedAt time.Time // zero until the pipeline has passed over this source
}

// Item is one piece of aggregated content.
//
// URLHash is the sha256 hex of the canonical URL and is globally unique: it is
// the deduplication key across all sources. SourceID records the source the
// item first arrived through and is never reassigned on later sightings.
type Item struct {
	ID           int64
	SourceID     int64
	Title        string
	URL          string
	CanonicalURL string
	URLHash      string
	Summary      string
	SummaryZh    string
	Content      string
	PublishedAt  *time.Time // nil when the upstream gave no publish time
	Tags         string     // comma-joined, empty when no tags apply
	Language     string     // "zh", "en", or empty when undetermined
	Engagement   int        // points / likes / score, source dependent
	Comments     int
	Score        float64
	FetchedAt    time.Time
}

// Candidate is the not-yet-normalized record an adapter produces from a
// single upstream entry.
type Candidate struct {
	Title        string
	URL          string
	CanonicalURL string // optional; falls back to URL
	Summary      string
	Content      string
	PublishedAt  *time.Time
	Tags         []string
	Language     string
	Engagement   int
	Comments     int
}
