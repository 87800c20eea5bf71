package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/abdul-hamid-achik/reqx/packages/core/runner"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	file        TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL,
	total       INTEGER NOT NULL,
	executed    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS requests (
	run_id      TEXT NOT NULL REFERENCES runs(id),
	idx         INTEGER NOT NULL,
	method      TEXT NOT NULL,
	url         TEXT NOT NULL,
	status      INTEGER,
	duration_ms INTEGER,
	dry_run     INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, idx)
);
`

// Store persists run history in a SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the standard history database location under the
// user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".reqx", "history.db"), nil
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a completed run and returns its generated ID.
func (s *Store) Record(ctx context.Context, report *runner.Report) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	executed := 0
	for _, r := range report.Results {
		if !r.DryRun {
			executed++
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, file, started_at, duration_ms, total, executed) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, report.File, time.Now().UTC(), report.Duration.Milliseconds(), report.Total, executed,
	)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}

	for _, r := range report.Results {
		var status sql.NullInt64
		var durationMs sql.NullInt64
		if r.Response != nil {
			status = sql.NullInt64{Int64: int64(r.Response.StatusCode), Valid: true}
			durationMs = sql.NullInt64{Int64: r.Response.DurationMs(), Valid: true}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO requests (run_id, idx, method, url, status, duration_ms, dry_run) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, r.Index, r.Request.Method, r.Request.URL, status, durationMs, r.DryRun,
		)
		if err != nil {
			return "", fmt.Errorf("recording request %d: %w", r.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	return runID, nil
}

// Run is a stored run summary.
type Run struct {
	ID         string
	File       string
	StartedAt  time.Time
	DurationMs int64
	Total      int
	Executed   int
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file, started_at, duration_ms, total, executed FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(&run.ID, &run.File, &run.StartedAt, &run.DurationMs, &run.Total, &run.Executed); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// RequestRecord is a stored per-request result.
type RequestRecord struct {
	Index      int
	Method     string
	URL        string
	Status     int
	DurationMs int64
	DryRun     bool
}

// Requests returns the stored requests of a run in file order.
func (s *Store) Requests(ctx context.Context, runID string) ([]*RequestRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, method, url, status, duration_ms, dry_run FROM requests WHERE run_id = ? ORDER BY idx`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*RequestRecord
	for rows.Next() {
		rec := &RequestRecord{}
		var status, durationMs sql.NullInt64
		if err := rows.Scan(&rec.Index, &rec.Method, &rec.URL, &status, &durationMs, &rec.DryRun); err != nil {
			return nil, err
		}
		rec.Status = int(status.Int64)
		rec.DurationMs = durationMs.Int64
		records = append(records, rec)
	}

	return records, rows.Err()
}
