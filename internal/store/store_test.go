package store

import (
	"testing"
	"time"

	"github.com/biglone/techpulse/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSource(t *testing.T, s *Store) int64 {
	t.Helper()
	id, err := s.CreateSource(model.Source{
		Name:   "Test Feed",
		Type:   model.SourceRSS,
		URL:    "https://example.com/feed.xml",
		Tags:   "Testing",
		Weight: 1.0,
		Active: true,
	})
	if err != nil {
		t.Fatalf("CreateSource error: %v", err)
	}
	return id
}

func TestCreateAndListSources(t *testing.T) {
	s := newTestStore(t)
	id := testSource(t, s)
	if id == 0 {
		t.Fatal("expected non-zero source ID")
	}

	sources, err := s.ListSources()
	if err != nil {
		t.Fatalf("ListSources error: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	src := sources[0]
	if src.Name != "Test Feed" || src.Type != model.SourceRSS {
		t.Errorf("unexpected source: %+v", src)
	}
	if !src.Active {
		t.Error("expected source to be active")
	}
	if !src.LastFetchedAt.IsZero() {
		t.Errorf("expected zero LastFetchedAt, got %v", src.LastFetchedAt)
	}
}

func TestActiveSourcesFiltering(t *testing.T) {
	s := newTestStore(t)
	id := testSource(t, s)
	_, err := s.CreateSource(model.Source{
		Name:   "Disabled Feed",
		Type:   model.SourceRSS,
		URL:    "https://example.com/off.xml",
		Weight: 1.0,
		Active: false,
	})
	if err != nil {
		t.Fatalf("CreateSource error: %v", err)
	}

	active, err := s.ActiveSources()
	if err != nil {
		t.Fatalf("ActiveSources error: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active source, got %d", len(active))
	}
	if active[0].ID != id {
		t.Errorf("expected source %d, got %d", id, active[0].ID)
	}
}

func TestSetSourceActive(t *testing.T) {
	s := newTestStore(t)
	id := testSource(t, s)

	if err := s.SetSourceActive(id, false); err != nil {
		t.Fatalf("SetSourceActive error: %v", err)
	}
	active, err := s.ActiveSources()
	if err != nil {
		t.Fatalf("ActiveSources error: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active sources, got %d", len(active))
	}
}

func TestMarkFetched(t *testing.T) {
	s := newTestStore(t)
	id := testSource(t, s)

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := s.MarkFetched(id, ts); err != nil {
		t.Fatalf("MarkFetched error: %v", err)
	}

	sources, err := s.ListSources()
	if err != nil {
		t.Fatalf("ListSources error: %v", err)
	}
	if sources[0].LastFetchedAt.IsZero() {
		t.Error("expected LastFetchedAt to be set")
	}
	if !sources[0].LastFetchedAt.Equal(ts) {
		t.Errorf("expected %v, got %v", ts, sources[0].LastFetchedAt)
	}
}

func TestEnsureDefaultSourcesIdempotent(t *testing.T) {
	s := newTestStore(t)

	created, err := s.EnsureDefaultSources()
	if err != nil {
		t.Fatalf("EnsureDefaultSources error: %v", err)
	}
	if created != len(model.DefaultSources) {
		t.Errorf("expected %d created, got %d", len(model.DefaultSources), created)
	}

	created, err = s.EnsureDefaultSources()
	if err != nil {
		t.Fatalf("second EnsureDefaultSources error: %v", err)
	}
	if created != 0 {
		t.Errorf("expected 0 created on second run, got %d", created)
	}

	sources, err := s.ListSources()
	if err != nil {
		t.Fatalf("ListSources error: %v", err)
	}
	if len(sources) != len(model.DefaultSources) {
		t.Errorf("expected %d sources, got %d", len(model.DefaultSources), len(sources))
	}
}

func testItem(srcID int64, hash string) model.Item {
	published := time.Now().Add(-2 * time.Hour).UTC()
	return model.Item{
		SourceID:     srcID,
		Title:        "Go 1.25 Released",
		URL:          "https://example.com/go125?utm_source=feed",
		CanonicalURL: "https://example.com/go125",
		URLHash:      hash,
		Summary:      "The Go team has released version 1.25.",
		Tags:         "Backend",
		Language:     "en",
		Engagement:   42,
		Comments:     7,
		Score:        85.5,
		PublishedAt:  &published,
		FetchedAt:    time.Now().UTC(),
	}
}

func TestUpsertItemInsertThenUpdate(t *testing.T) {
	s := newTestStore(t)
	srcID := testSource(t, s)

	item := testItem(srcID, "hash-1")
	if err := s.UpsertItem(item); err != nil {
		t.Fatalf("UpsertItem error: %v", err)
	}

	count, err := s.ItemCount()
	if err != nil {
		t.Fatalf("ItemCount error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 item, got %d", count)
	}

	item.Title = "Go 1.25 Released (updated)"
	item.Engagement = 100
	item.Score = 90.0
	if err := s.UpsertItem(item); err != nil {
		t.Fatalf("second UpsertItem error: %v", err)
	}

	count, err = s.ItemCount()
	if err != nil {
		t.Fatalf("ItemCount error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 item after upsert, got %d", count)
	}

	got, err := s.GetItemByHash("hash-1")
	if err != nil {
		t.Fatalf("GetItemByHash error: %v", err)
	}
	if got == nil {
		t.Fatal("expected item, got nil")
	}
	if got.Title != "Go 1.25 Released (updated)" {
		t.Errorf("title not updated: %q", got.Title)
	}
	if got.Engagement != 100 {
		t.Errorf("engagement not updated: %d", got.Engagement)
	}
	if got.Score != 90.0 {
		t.Errorf("score not updated: %v", got.Score)
	}
}

func TestUpsertKeepsOriginalSource(t *testing.T) {
	s := newTestStore(t)
	first := testSource(t, s)
	second, err := s.CreateSource(model.Source{
		Name:   "Other Feed",
		Type:   model.SourceRSS,
		URL:    "https://other.example.com/feed.xml",
		Weight: 1.0,
		Active: true,
	})
	if err != nil {
		t.Fatalf("CreateSource error: %v", err)
	}

	item := testItem(first, "shared-hash")
	if err := s.UpsertItem(item); err != nil {
		t.Fatalf("UpsertItem error: %v", err)
	}

	dup := testItem(second, "shared-hash")
	dup.Title = "Same story, different feed"
	if err := s.UpsertItem(dup); err != nil {
		t.Fatalf("duplicate UpsertItem error: %v", err)
	}

	got, err := s.GetItemByHash("shared-hash")
	if err != nil {
		t.Fatalf("GetItemByHash error: %v", err)
	}
	if got.SourceID != first {
		t.Errorf("expected source %d to keep ownership, got %d", first, got.SourceID)
	}
	if got.Title != "Same story, different feed" {
		t.Errorf("expected refreshed title, got %q", got.Title)
	}
}

func TestGetItemByHashMissing(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetItemByHash("nope")
	if err != nil {
		t.Fatalf("GetItemByHash error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown hash, got %+v", got)
	}
}

func TestListItemsHotAndLatest(t *testing.T) {
	s := newTestStore(t)
	srcID := testSource(t, s)

	old := time.Now().Add(-48 * time.Hour).UTC()
	recent := time.Now().Add(-1 * time.Hour).UTC()

	highScore := testItem(srcID, "high")
	highScore.Title = "High scoring but older"
	highScore.Score = 99
	highScore.PublishedAt = &old

	lowScore := testItem(srcID, "low")
	lowScore.Title = "Fresh but low score"
	lowScore.Score = 10
	lowScore.PublishedAt = &recent

	for _, it := range []model.Item{highScore, lowScore} {
		if err := s.UpsertItem(it); err != nil {
			t.Fatalf("UpsertItem error: %v", err)
		}
	}

	hot, err := s.ListItems(ListOptions{Sort: "hot"})
	if err != nil {
		t.Fatalf("ListItems(hot) error: %v", err)
	}
	if len(hot) != 2 {
		t.Fatalf("expected 2 items, got %d", len(hot))
	}
	if hot[0].URLHash != "high" {
		t.Errorf("hot sort: expected high-score item first, got %q", hot[0].URLHash)
	}

	latest, err := s.ListItems(ListOptions{Sort: "latest"})
	if err != nil {
		t.Fatalf("ListItems(latest) error: %v", err)
	}
	if latest[0].URLHash != "low" {
		t.Errorf("latest sort: expected most recent item first, got %q", latest[0].URLHash)
	}
}

func TestListItemsFilters(t *testing.T) {
	s := newTestStore(t)
	srcID := testSource(t, s)

	goItem := testItem(srcID, "go")
	goItem.Title = "Generics in Go"
	goItem.Tags = "Backend"

	k8sItem := testItem(srcID, "k8s")
	k8sItem.Title = "Scaling Kubernetes clusters"
	k8sItem.Tags = "DevOps"

	for _, it := range []model.Item{goItem, k8sItem} {
		if err := s.UpsertItem(it); err != nil {
			t.Fatalf("UpsertItem error: %v", err)
		}
	}

	byQuery, err := s.ListItems(ListOptions{Query: "Kubernetes"})
	if err != nil {
		t.Fatalf("ListItems(query) error: %v", err)
	}
	if len(byQuery) != 1 || byQuery[0].URLHash != "k8s" {
		t.Errorf("query filter: expected only k8s item, got %d items", len(byQuery))
	}

	byTag, err := s.ListItems(ListOptions{Tag: "Backend"})
	if err != nil {
		t.Fatalf("ListItems(tag) error: %v", err)
	}
	if len(byTag) != 1 || byTag[0].URLHash != "go" {
		t.Errorf("tag filter: expected only go item, got %d items", len(byTag))
	}

	none, err := s.ListItems(ListOptions{Query: "quantum"})
	if err != nil {
		t.Fatalf("ListItems(no match) error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestListItemsLimitClamp(t *testing.T) {
	s := newTestStore(t)
	srcID := testSource(t, s)

	for i := 0; i < 3; i++ {
		it := testItem(srcID, string(rune('a'+i)))
		if err := s.UpsertItem(it); err != nil {
			t.Fatalf("UpsertItem error: %v", err)
		}
	}

	items, err := s.ListItems(ListOptions{Limit: 2})
	if err != nil {
		t.Fatalf("ListItems error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected limit of 2, got %d", len(items))
	}

	items, err = s.ListItems(ListOptions{Limit: -5})
	if err != nil {
		t.Fatalf("ListItems error: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("negative limit should fall back to default, got %d items", len(items))
	}

	items, err = s.ListItems(ListOptions{Limit: 5000})
	if err != nil {
		t.Fatalf("ListItems error: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("oversized limit should still return everything, got %d items", len(items))
	}
}

func TestNullableItemFields(t *testing.T) {
	s := newTestStore(t)
	srcID := testSource(t, s)

	item := model.Item{
		SourceID:     srcID,
		Title:        "No date, no extras",
		URL:          "https://example.com/bare",
		CanonicalURL: "https://example.com/bare",
		URLHash:      "bare",
		Score:        1.0,
		FetchedAt:    time.Now().UTC(),
	}
	if err := s.UpsertItem(item); err != nil {
		t.Fatalf("UpsertItem error: %v", err)
	}

	got, err := s.GetItemByHash("bare")
	if err != nil {
		t.Fatalf("GetItemByHash error: %v", err)
	}
	if got.PublishedAt != nil {
		t.Errorf("expected nil PublishedAt, got %v", got.PublishedAt)
	}
	if got.Summary != "" || got.Language != "" {
		t.Errorf("expected empty optional fields, got summary=%q language=%q", got.Summary, got.Language)
	}
	if got.Engagement != 0 || got.Comments != 0 {
		t.Errorf("expected zero counters, got %d/%d", got.Engagement, got.Comments)
	}
}
