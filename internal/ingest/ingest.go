// Package ingest runs the fetch-normalize-score pipeline over all
// configured sources and persists the results.
package ingest

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/biglone/techpulse/internal/enrich"
	"github.com/biglone/techpulse/internal/logging"
	"github.com/biglone/techpulse/internal/model"
	"github.com/biglone/techpulse/internal/normalize"
	"github.com/biglone/techpulse/internal/ranking"
	"github.com/biglone/techpulse/internal/sources"
	"github.com/biglone/techpulse/internal/store"
	"github.com/biglone/techpulse/internal/tags"
)

// maxConcurrentSources caps how many sources are fetched in parallel.
const maxConcurrentSources = 4

// Registry resolves a source type to a fetch adapter.
type Registry interface {
	ForType(t model.SourceType) sources.Adapter
	Available(t model.SourceType) bool
}

// Enricher produces summaries for an item, falling back to the provided
// text when it cannot.
type Enricher interface {
	Available() bool
	Summarize(ctx context.Context, req enrich.Request) enrich.Result
}

// Stats reports the outcome of one full pipeline pass.
type Stats struct {
	Sources int // active sources in the pass, credential-skipped included
	Items   int // items upserted across all sources
}

// Ingester drives the ingestion pipeline.
type Ingester struct {
	store    *store.Store
	registry Registry
	enricher Enricher
}

func New(st *store.Store, reg Registry, enr Enricher) *Ingester {
	return &Ingester{store: st, registry: reg, enricher: enr}
}

// IngestAll runs one pass over every active source. Sources fetch
// concurrently; a failure in one source never aborts the others. Every
// fetched source gets its last-fetched time stamped, whether or not the
// fetch succeeded, so a persistently broken source is still visibly being
// tried. Credential-skipped sources are neither fetched nor stamped, but
// they still count toward Stats.Sources.
func (ing *Ingester) IngestAll(ctx context.Context) (Stats, error) {
	active, err := ing.store.ActiveSources()
	if err != nil {
		return Stats{}, err
	}

	counts := make([]int, len(active))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSources)

	for i, src := range active {
		i, src := i, src
		if !ing.registry.Available(src.Type) {
			logging.Debug("skipping source, credentials not configured", "source", src.Name, "type", src.Type)
			continue
		}
		adapter := ing.registry.ForType(src.Type)
		if adapter == nil {
			logging.Warn("no adapter for source type", "source", src.Name, "type", src.Type)
			continue
		}

		g.Go(func() error {
			n, err := ing.ingestSource(gctx, adapter, src)
			if err != nil {
				logging.Warn("source ingestion failed", "source", src.Name, "error", err)
			}
			counts[i] = n
			if err := ing.store.MarkFetched(src.ID, time.Now().UTC()); err != nil {
				logging.Warn("failed to mark source fetched", "source", src.Name, "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	stats := Stats{Sources: len(active)}
	for _, n := range counts {
		stats.Items += n
	}
	return stats, nil
}

// ingestSource fetches one source and persists its candidates. Returns the
// number of items stored. A single bad candidate is logged and skipped
// rather than failing the whole source.
func (ing *Ingester) ingestSource(ctx context.Context, adapter sources.Adapter, src model.Source) (int, error) {
	candidates, err := adapter.Fetch(ctx, src)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	stored := 0
	for _, cand := range candidates {
		item, ok := ing.buildItem(ctx, src, cand, now)
		if !ok {
			continue
		}
		if err := ing.store.UpsertItem(item); err != nil {
			logging.Warn("failed to store item", "source", src.Name, "url", item.CanonicalURL, "error", err)
			continue
		}
		stored++
	}

	logging.Debug("source pass complete", "source", src.Name, "candidates", len(candidates), "stored", stored)
	return stored, nil
}

// buildItem normalizes, tags, scores, and optionally enriches one
// candidate. Returns false when the candidate has no usable URL.
func (ing *Ingester) buildItem(ctx context.Context, src model.Source, cand model.Candidate, now time.Time) (model.Item, bool) {
	raw := cand.CanonicalURL
	if raw == "" {
		raw = cand.URL
	}
	canonical := normalize.CanonicalURL(raw)
	if canonical == "" {
		return model.Item{}, false
	}

	title := normalize.CleanText(cand.Title)
	if title == "" {
		title = "Untitled"
	}
	content := normalize.CleanText(cand.Content)
	summary := normalize.PickSummary(cand.Summary, cand.Content)

	language := cand.Language
	if language == "" {
		language = normalize.DetectLanguage(title + " " + summary)
	}

	item := model.Item{
		SourceID:     src.ID,
		Title:        title,
		URL:          cand.URL,
		CanonicalURL: canonical,
		URLHash:      normalize.URLHash(canonical),
		Summary:      summary,
		Content:      content,
		PublishedAt:  cand.PublishedAt,
		Tags:         tags.Merge(src.Tags, cand.Tags, title, summary),
		Language:     language,
		Engagement:   cand.Engagement,
		Comments:     cand.Comments,
		Score:        ranking.Score(src.Weight, cand.PublishedAt, cand.Engagement, now),
		FetchedAt:    now,
	}

	if ing.enricher != nil && ing.enricher.Available() {
		res := ing.enricher.Summarize(ctx, enrich.Request{
			Title:           title,
			Content:         content,
			FallbackSummary: summary,
		})
		item.Summary = res.Summary
		item.SummaryZh = res.SummaryZh
	}
	if item.SummaryZh == "" && item.Language == "zh" {
		item.SummaryZh = item.Summary
	}

	return item, true
}
