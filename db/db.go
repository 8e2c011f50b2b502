// Package db persists finished analysis runs and the watch list in SQLite.
// Storage is a cache of results for the dashboard, not a pipeline dependency:
// a run completes fine even if saving it fails.
package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	video_id TEXT NOT NULL,
	source TEXT NOT NULL,
	fetched_at TIMESTAMP NOT NULL,
	comment_count INTEGER NOT NULL,
	summary_json TEXT NOT NULL,
	digest_summary TEXT,
	digest_source TEXT
);

CREATE TABLE IF NOT EXISTS run_comments (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	comment_id TEXT NOT NULL,
	author TEXT NOT NULL,
	text TEXT NOT NULL,
	clean_text TEXT NOT NULL,
	label TEXT NOT NULL,
	score REAL NOT NULL,
	like_count INTEGER NOT NULL,
	published_at TIMESTAMP,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_runs_video_id ON runs(video_id);

CREATE TABLE IF NOT EXISTS watched_videos (
	video_id TEXT PRIMARY KEY,
	added_at TIMESTAMP NOT NULL,
	last_run_id TEXT,
	last_analyzed_at TIMESTAMP
);
`

// Store wraps the SQLite handle.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// New opens (or creates) the database at path and ensures the schema.
func New(path string, logger zerolog.Logger) (*Store, error) {
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// The pipeline is single threaded; one writer avoids SQLITE_BUSY from
	// the cron worker racing the HTTP handlers.
	handle.SetMaxOpenConns(1)

	if _, err := handle.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := handle.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{
		db:     handle,
		logger: logger.With().Str("component", "db").Logger(),
	}, nil
}

// Close releases the underlying handle.
func (s *Store) Close() error {
	return s.db.Close()
}
