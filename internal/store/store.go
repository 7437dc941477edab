// Package store provides SQLite persistence for TechPulse.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/biglone/techpulse/internal/model"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ListOptions filter and order item queries.
type ListOptions struct {
	Query string // free-text match on title/summary/content
	Tag   string // substring match on the tag list
	Sort  string // "hot" (default) or "latest"
	Limit int    // clamped to 1..100, default 50
}

// Open creates a Store at the given database path, creating tables as
// needed. File-based databases run in WAL mode.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		url TEXT,
		handle TEXT,
		tags TEXT,
		weight REAL NOT NULL DEFAULT 1.0,
		active INTEGER NOT NULL DEFAULT 1,
		requires_auth INTEGER NOT NULL DEFAULT 0,
		last_fetched_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		canonical_url TEXT NOT NULL,
		url_hash TEXT NOT NULL UNIQUE,
		summary TEXT,
		summary_zh TEXT,
		content TEXT,
		published_at DATETIME,
		tags TEXT,
		language TEXT,
		engagement INTEGER,
		comments INTEGER,
		score REAL NOT NULL DEFAULT 0,
		fetched_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (source_id) REFERENCES sources(id)
	);

	CREATE INDEX IF NOT EXISTS idx_items_score ON items(score DESC);
	CREATE INDEX IF NOT EXISTS idx_items_published ON items(published_at DESC);
	CREATE INDEX IF NOT EXISTS idx_items_source ON items(source_id);
	CREATE INDEX IF NOT EXISTS idx_sources_active ON sources(active);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// CreateSource inserts a source and returns its ID.
func (s *Store) CreateSource(src model.Source) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		INSERT INTO sources (name, type, url, handle, tags, weight, active, requires_auth)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		src.Name,
		string(src.Type),
		nullString(src.URL),
		nullString(src.Handle),
		nullString(src.Tags),
		src.Weight,
		boolToInt(src.Active),
		boolToInt(src.RequiresAuth),
	)
	if err != nil {
		return 0, fmt.Errorf("insert source: %w", err)
	}
	return res.LastInsertId()
}

// ListSources returns every configured source.
func (s *Store) ListSources() ([]model.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.querySources("SELECT id, name, type, url, handle, tags, weight, active, requires_auth, last_fetched_at FROM sources ORDER BY id")
}

// ActiveSources returns the sources the pipeline should pass over.
func (s *Store) ActiveSources() ([]model.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.querySources("SELECT id, name, type, url, handle, tags, weight, active, requires_auth, last_fetched_at FROM sources WHERE active = 1 ORDER BY id")
}

func (s *Store) querySources(query string, args ...any) ([]model.Source, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []model.Source
	for rows.Next() {
		var src model.Source
		var url, handle, tags sql.NullString
		var active, requiresAuth int
		var lastFetched sql.NullTime
		err := rows.Scan(
			&src.ID,
			&src.Name,
			&src.Type,
			&url,
			&handle,
			&tags,
			&src.Weight,
			&active,
			&requiresAuth,
			&lastFetched,
		)
		if err != nil {
			return nil, err
		}
		src.URL = url.String
		src.Handle = handle.String
		src.Tags = tags.String
		src.Active = active != 0
		src.RequiresAuth = requiresAuth != 0
		src.LastFetchedAt = lastFetched.Time
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// MarkFetched records the time of the pipeline's latest pass over a source.
func (s *Store) MarkFetched(sourceID int64, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE sources SET last_fetched_at = ? WHERE id = ?", ts, sourceID)
	return err
}

// SetSourceActive flips a source's active flag.
func (s *Store) SetSourceActive(sourceID int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE sources SET active = ? WHERE id = ?", boolToInt(active), sourceID)
	return err
}

// EnsureDefaultSources seeds the bootstrap source set. Sources already
// present (matched by type plus url, handle, or name) are left alone, so
// seeding is idempotent. Returns the number of sources created.
func (s *Store) EnsureDefaultSources() (int, error) {
	existing, err := s.ListSources()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, src := range existing {
		seen[sourceKey(src)] = struct{}{}
	}

	created := 0
	for _, src := range model.DefaultSources {
		if _, ok := seen[sourceKey(src)]; ok {
			continue
		}
		if _, err := s.CreateSource(src); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// sourceKey identifies a source for bootstrap dedup: URL when present,
// else handle, else name, always scoped by type.
func sourceKey(src model.Source) string {
	t := string(src.Type)
	if src.URL != "" {
		return "url:" + t + ":" + strings.ToLower(strings.TrimSpace(src.URL))
	}
	if src.Handle != "" {
		return "handle:" + t + ":" + strings.ToLower(strings.TrimSpace(src.Handle))
	}
	return "name:" + t + ":" + strings.ToLower(strings.TrimSpace(src.Name))
}

// UpsertItem inserts the item or, when its identity hash already exists,
// refreshes the stored record in place. The original source_id is kept on
// update: identity is URL-based, so ownership stays with the source that
// first observed the URL.
func (s *Store) UpsertItem(item model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO items (
			source_id, title, url, canonical_url, url_hash, summary, summary_zh,
			content, published_at, tags, language, engagement, comments, score, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url_hash) DO UPDATE SET
			title = excluded.title,
			url = excluded.url,
			canonical_url = excluded.canonical_url,
			summary = excluded.summary,
			summary_zh = excluded.summary_zh,
			content = excluded.content,
			published_at = excluded.published_at,
			tags = excluded.tags,
			language = excluded.language,
			engagement = excluded.engagement,
			comments = excluded.comments,
			score = excluded.score,
			fetched_at = excluded.fetched_at
	`,
		item.SourceID,
		item.Title,
		item.URL,
		item.CanonicalURL,
		item.URLHash,
		nullString(item.Summary),
		nullString(item.SummaryZh),
		nullString(item.Content),
		nullTime(item.PublishedAt),
		nullString(item.Tags),
		nullString(item.Language),
		nullInt(item.Engagement),
		nullInt(item.Comments),
		item.Score,
		item.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert item %s: %w", item.URLHash, err)
	}
	return nil
}

// GetItemByHash returns the stored item with the given identity hash, or
// nil when none exists.
func (s *Store) GetItemByHash(hash string) (*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, err := s.queryItems(itemSelect+" WHERE url_hash = ?", hash)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// ListItems retrieves items for display. The default "hot" sort orders by
// score; "latest" ignores score and orders purely by publication time.
func (s *Store) ListItems(opts ListOptions) ([]model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var conditions []string
	var args []any

	if opts.Query != "" {
		pattern := "%" + opts.Query + "%"
		conditions = append(conditions, "(title LIKE ? OR summary LIKE ? OR content LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	if opts.Tag != "" {
		conditions = append(conditions, "tags LIKE ?")
		args = append(args, "%"+opts.Tag+"%")
	}

	query := itemSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if opts.Sort == "latest" {
		query += " ORDER BY published_at DESC, fetched_at DESC"
	} else {
		query += " ORDER BY score DESC, published_at DESC"
	}

	limit := opts.Limit
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	query += " LIMIT ?"
	args = append(args, limit)

	return s.queryItems(query, args...)
}

// ItemCount returns the total number of stored items.
func (s *Store) ItemCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count)
	return count, err
}

const itemSelect = `
	SELECT id, source_id, title, url, canonical_url, url_hash, summary, summary_zh,
		content, published_at, tags, language, engagement, comments, score, fetched_at
	FROM items`

// queryItems executes a query and scans results. Caller holds s.mu.
func (s *Store) queryItems(query string, args ...any) ([]model.Item, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var summary, summaryZh, content, tags, language sql.NullString
		var published sql.NullTime
		var engagement, comments sql.NullInt64
		err := rows.Scan(
			&item.ID,
			&item.SourceID,
			&item.Title,
			&item.URL,
			&item.CanonicalURL,
			&item.URLHash,
			&summary,
			&summaryZh,
			&content,
			&published,
			&tags,
			&language,
			&engagement,
			&comments,
			&item.Score,
			&item.FetchedAt,
		)
		if err != nil {
			return nil, err
		}
		item.Summary = summary.String
		item.SummaryZh = summaryZh.String
		item.Content = content.String
		item.Tags = tags.String
		item.Language = language.String
		item.Engagement = int(engagement.Int64)
		item.Comments = int(comments.Int64)
		if published.Valid {
			t := published.Time
			item.PublishedAt = &t
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
