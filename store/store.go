// Package store persists layout analysis results in SQLite. Results are
// stored as a thin indexed envelope (url, screen type, pattern type) plus
// the full JSON document, so listings stay cheap while the complete
// structure remains retrievable.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/domlens/layout"
)

// ErrNotFound is returned by Get when no record matches the id.
var ErrNotFound = errors.New("store: layout not found")

const schema = `
	CREATE TABLE IF NOT EXISTS layouts (
		id          TEXT PRIMARY KEY,
		url         TEXT NOT NULL,
		result_id   TEXT NOT NULL,
		screen_type TEXT NOT NULL,
		pattern_type TEXT NOT NULL,
		slot_count  INTEGER NOT NULL,
		result      TEXT NOT NULL,
		created_at  INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_layouts_url ON layouts(url);
	CREATE INDEX IF NOT EXISTS idx_layouts_screen_type ON layouts(screen_type);
	CREATE INDEX IF NOT EXISTS idx_layouts_created ON layouts(created_at);
`

// Record is one persisted analysis.
type Record struct {
	ID          string         `json:"id"`
	URL         string         `json:"url"`
	ResultID    string         `json:"resultId"`
	ScreenType  string         `json:"screenType"`
	PatternType string         `json:"patternType"`
	SlotCount   int            `json:"slotCount"`
	Result      *layout.Result `json:"result,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Store wraps the layouts database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path with production pragmas
// applied. Parent directories are created as needed.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save persists a result and returns the record id.
func (s *Store) Save(ctx context.Context, url string, res *layout.Result) (string, error) {
	if res == nil {
		return "", errors.New("store: nil result")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("store: id: %w", err)
	}

	body, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("store: encode result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO layouts (id, url, result_id, screen_type, pattern_type, slot_count, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), url, res.ID, res.ScreenType, res.PatternSummary.PatternType,
		len(res.Slots), string(body), time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("store: insert: %w", err)
	}
	return id.String(), nil
}

// Get returns one record including the full result document.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, result_id, screen_type, pattern_type, slot_count, result, created_at
		FROM layouts WHERE id = ?`, id)

	var rec Record
	var body string
	var created int64
	err := row.Scan(&rec.ID, &rec.URL, &rec.ResultID, &rec.ScreenType,
		&rec.PatternType, &rec.SlotCount, &body, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", id, err)
	}

	rec.CreatedAt = time.Unix(created, 0).UTC()
	var res layout.Result
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		return nil, fmt.Errorf("store: decode result %s: %w", id, err)
	}
	rec.Result = &res
	return &rec, nil
}

// ListOptions filters List. Zero values mean no filter; Limit defaults to 50.
type ListOptions struct {
	URL        string
	ScreenType string
	Limit      int
}

// List returns record envelopes newest first. Result documents are not
// loaded; use Get for the full structure.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, url, result_id, screen_type, pattern_type, slot_count, created_at
		FROM layouts WHERE 1=1`
	args := []any{}
	if opts.URL != "" {
		query += " AND url = ?"
		args = append(args, opts.URL)
	}
	if opts.ScreenType != "" {
		query += " AND screen_type = ?"
		args = append(args, opts.ScreenType)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var created int64
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.ResultID, &rec.ScreenType,
			&rec.PatternType, &rec.SlotCount, &created); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		rec.CreatedAt = time.Unix(created, 0).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: rows: %w", err)
	}
	return records, nil
}
