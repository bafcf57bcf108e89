// Package history keeps an optional record of past restore runs in a
// SQLite database, so it's possible to see what a run downloaded after
// the fact. Recording is best-effort and never affects the run itself.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/csmith/steamicons/restore"

	_ "modernc.org/sqlite"
)

// Run is one recorded pipeline run with its aggregate counts
type Run struct {
	ID          int64
	Time        time.Time
	Scanned     int
	Written     int
	Skipped     int
	WouldWrite  int
	ParseFailed int
	FetchFailed int
	WriteFailed int
}

// SQLiteStore records runs in a SQLite database
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the history database at path, creating the
// schema and the parent directory if needed.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}

	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp    TEXT    NOT NULL,
    scanned      INTEGER NOT NULL,
    written      INTEGER NOT NULL,
    skipped      INTEGER NOT NULL,
    would_write  INTEGER NOT NULL,
    parse_failed INTEGER NOT NULL,
    fetch_failed INTEGER NOT NULL,
    write_failed INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS outcomes (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id        INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    file          TEXT    NOT NULL,
    game_id       TEXT    NOT NULL DEFAULT '',
    icon_filename TEXT    NOT NULL DEFAULT '',
    state         TEXT    NOT NULL,
    error         TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_outcomes_run   ON outcomes(run_id);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Record inserts one run row and one row per outcome in a transaction.
func (s *SQLiteStore) Record(summary restore.Summary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ts := time.Now().UTC().Format(time.RFC3339)

	res, err := tx.Exec(
		`INSERT INTO runs (timestamp, scanned, written, skipped, would_write, parse_failed, fetch_failed, write_failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ts, summary.Scanned, summary.Written, summary.Skipped, summary.WouldWrite,
		summary.ParseFailed, summary.FetchFailed, summary.WriteFailed,
	)
	if err != nil {
		return err
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, outcome := range summary.Outcomes {
		errText := ""
		if outcome.Err != nil {
			errText = outcome.Err.Error()
		}
		if _, err := tx.Exec(
			`INSERT INTO outcomes (run_id, file, game_id, icon_filename, state, error)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, outcome.File, outcome.GameID, outcome.IconFilename,
			outcome.State.String(), errText,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Runs returns the most recent runs, newest first. A limit of zero or
// less returns everything.
func (s *SQLiteStore) Runs(limit int) ([]Run, error) {
	query := `SELECT id, timestamp, scanned, written, skipped, would_write, parse_failed, fetch_failed, write_failed
		FROM runs ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var tsStr string
		if err := rows.Scan(&run.ID, &tsStr, &run.Scanned, &run.Written, &run.Skipped,
			&run.WouldWrite, &run.ParseFailed, &run.FetchFailed, &run.WriteFailed); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		run.Time = ts
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
