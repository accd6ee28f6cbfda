// Package sqlite provides the SQLite-backed run journal.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// timeFormat is the stored timestamp layout.
const timeFormat = time.RFC3339Nano

// Ensure Journal implements the interface.
var _ driven.RunJournal = (*Journal)(nil)

// Journal records pipeline runs in a local SQLite database.
type Journal struct {
	db   *sql.DB
	path string
}

// NewJournal opens (or creates) the journal database under dataDir.
// If dataDir is empty, defaults to ~/.docdex/data.
func NewJournal(dataDir string) (*Journal, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docdex", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "journal.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	j := &Journal{db: db, path: dbPath}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// migrate applies the embedded SQL migrations in file order.
func (j *Journal) migrate() error {
	files, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return fmt.Errorf("listing migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		script, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", file, err)
		}
		if _, err := j.db.Exec(string(script)); err != nil {
			return fmt.Errorf("applying migration %s: %w", file, err)
		}
	}
	return nil
}

// Record inserts or updates a run by ID.
func (j *Journal) Record(ctx context.Context, run domain.SyncRun) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, dataset_tracking_id, chunk_count, batch_count, source_errors, status, started_at, finished_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			dataset_tracking_id = excluded.dataset_tracking_id,
			chunk_count = excluded.chunk_count,
			batch_count = excluded.batch_count,
			source_errors = excluded.source_errors,
			status = excluded.status,
			finished_at = excluded.finished_at,
			error = excluded.error
	`, run.ID, run.DatasetTrackingID, run.ChunkCount, run.BatchCount, run.SourceErrors,
		string(run.Status), run.StartedAt.UTC().Format(timeFormat),
		nullableTime(run.FinishedAt), nullString(run.Error))
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, dataset_tracking_id, chunk_count, batch_count, source_errors, status, started_at, finished_at, error
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun
	for rows.Next() {
		var run domain.SyncRun
		var status, startedAt string
		var finishedAt, runErr sql.NullString

		if err := rows.Scan(&run.ID, &run.DatasetTrackingID, &run.ChunkCount, &run.BatchCount,
			&run.SourceErrors, &status, &startedAt, &finishedAt, &runErr); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		run.Status = domain.RunStatus(status)
		if run.StartedAt, err = time.Parse(timeFormat, startedAt); err != nil {
			return nil, fmt.Errorf("parsing started_at: %w", err)
		}
		if finishedAt.Valid {
			if run.FinishedAt, err = time.Parse(timeFormat, finishedAt.String); err != nil {
				return nil, fmt.Errorf("parsing finished_at: %w", err)
			}
		}
		run.Error = runErr.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// Close releases the database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeFormat)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
