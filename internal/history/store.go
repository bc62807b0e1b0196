// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of aggregation runs so past lookups
// can be listed and exported without re-querying the registries.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/trialscout/pkg/types"
)

const (
	defaultPath  = "data/history.db"
	defaultLimit = 50
)

// Store manages the run history SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the history database at cfg.Path, creating the
// parent directory and schema when missing.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			query TEXT NOT NULL,
			names_searched INTEGER NOT NULL,
			trials_found INTEGER NOT NULL,
			error_count INTEGER NOT NULL,
			was_truncated INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one run. An empty ID gets a fresh UUID and a zero CreatedAt
// gets the current time. The stored record is returned.
func (s *Store) Record(ctx context.Context, r types.RunRecord) (types.RunRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, query, names_searched, trials_found, error_count, was_truncated, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.Kind), r.Query, r.NamesSearched, r.TrialsFound, r.ErrorCount,
		r.WasTruncated, r.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return r, fmt.Errorf("inserting run %s: %w", r.ID, err)
	}
	return r, nil
}

// ListOptions filters List.
type ListOptions struct {
	// Kind restricts results to one run kind. Empty means all kinds.
	Kind types.RunKind

	// Limit caps the number of runs returned (default 50). Negative means
	// no cap.
	Limit int
}

// List returns runs newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.RunRecord, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	query := `SELECT id, kind, query, names_searched, trials_found, error_count, was_truncated, created_at FROM runs`
	var args []any
	if opts.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(opts.Kind))
	}
	query += ` ORDER BY rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs := []types.RunRecord{}
	for rows.Next() {
		var (
			r       types.RunRecord
			kind    string
			created string
		)
		if err := rows.Scan(&r.ID, &kind, &r.Query, &r.NamesSearched, &r.TrialsFound,
			&r.ErrorCount, &r.WasTruncated, &created); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Kind = types.RunKind(kind)
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
