package report

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"appresolve/internal/resolve"
)

// DatabaseFile is the SQLite database name inside the output directory.
const DatabaseFile = "resolve.db"

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users must delete the database after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store keeps run results in SQLite so outcomes stay queryable across runs.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore initializes or connects to the results database inside dir.
func OpenStore(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, DatabaseFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// RunSummary is one persisted run with its statistics.
type RunSummary struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Stats      resolve.RunStats
}

// Runs returns all persisted runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, queries, confirmed, needs_review,
			no_match, duplicates_dropped, search_failures, lookup_failures
		FROM runs ORDER BY started_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			run                   RunSummary
			startedAt, finishedAt string
		)
		if err := rows.Scan(
			&run.ID, &startedAt, &finishedAt,
			&run.Stats.Queries, &run.Stats.Confirmed, &run.Stats.NeedsReview,
			&run.Stats.NoMatch, &run.Stats.DuplicatesDropped,
			&run.Stats.SearchFailures, &run.Stats.LookupFailures,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339, startedAt); parseErr == nil {
			run.StartedAt = ts
		}
		if ts, parseErr := time.Parse(time.RFC3339, finishedAt); parseErr == nil {
			run.FinishedAt = ts
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// SaveRun records a completed run and all its tables in one transaction.
func (s *Store) SaveRun(ctx context.Context, runID string, startedAt time.Time, result *resolve.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stats := result.Stats
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, started_at, finished_at, queries, confirmed, needs_review,
			no_match, duplicates_dropped, search_failures, lookup_failures
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		startedAt.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		stats.Queries,
		stats.Confirmed,
		stats.NeedsReview,
		stats.NoMatch,
		stats.DuplicatesDropped,
		stats.SearchFailures,
		stats.LookupFailures,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, row := range result.Confirmed {
		breakdown, err := json.Marshal(row.Breakdown)
		if err != nil {
			return fmt.Errorf("encode breakdown: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO confirmed (
				run_id, app_key, query_name, track_id, bundle_id, track_name,
				seller_name, primary_genre, language_codes, release_date,
				countries, score_total, breakdown
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, row.AppKey, row.QueryName, row.TrackID, row.BundleID,
			row.TrackName, row.SellerName, row.PrimaryGenre,
			strings.Join(row.LanguageCodes, ";"), row.ReleaseDate,
			strings.Join(row.Countries, ";"), row.Breakdown.Total, string(breakdown),
		); err != nil {
			return fmt.Errorf("insert confirmed row: %w", err)
		}
	}

	for _, row := range result.Review {
		breakdown, err := json.Marshal(row.Breakdown)
		if err != nil {
			return fmt.Errorf("encode breakdown: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO review (
				run_id, app_key, query_name, rank, track_id, bundle_id,
				track_name, seller_name, primary_genre, countries,
				score_total, breakdown
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, row.AppKey, row.QueryName, row.Rank, row.TrackID,
			row.BundleID, row.TrackName, row.SellerName, row.PrimaryGenre,
			strings.Join(row.Countries, ";"), row.Breakdown.Total, string(breakdown),
		); err != nil {
			return fmt.Errorf("insert review row: %w", err)
		}
	}

	for _, row := range result.Audit {
		b := row.Breakdown
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO candidates (
				run_id, app_key, query_name, track_id, bundle_id, track_name,
				seller_name, primary_genre, countries, exact, startswith,
				contains, fuzzy, dev_bonus, bundle_bonus, genre_bonus, total
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, row.AppKey, row.QueryName, row.TrackID, row.BundleID,
			row.TrackName, row.SellerName, row.PrimaryGenre,
			strings.Join(row.Countries, ";"),
			b.Exact, b.StartsWith, b.Contains, b.Fuzzy,
			b.DevBonus, b.BundleBonus, b.GenreBonus, b.Total,
		); err != nil {
			return fmt.Errorf("insert candidate row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}
