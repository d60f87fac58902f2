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

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no job exists for the given id.
var ErrNotFound = errors.New("job not found")

// Store persists job status and terminal results in SQLite. Safe for
// concurrent use by multiple in-flight jobs.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the job database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("ensure store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		meeting_id TEXT NOT NULL,
		status TEXT NOT NULL,
		result TEXT,
		fail_reason TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Create inserts a new job in processing state.
func (s *Store) Create(ctx context.Context, id, meetingID string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, meeting_id, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, meetingID, StatusProcessing, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert job %s: %w", id, err)
	}
	return nil
}

// Complete records the terminal result snapshot. Stage-level failures still
// complete; the error travels inside the result.
func (s *Store) Complete(ctx context.Context, id string, result Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result for %s: %w", id, err)
	}
	return s.finish(ctx, id, StatusCompleted, string(data), "")
}

// Fail marks a job failed. Reserved for infrastructure faults; the pipeline
// never produces this for expected stage failures.
func (s *Store) Fail(ctx context.Context, id, reason string) error {
	return s.finish(ctx, id, StatusFailed, "", reason)
}

func (s *Store) finish(ctx context.Context, id string, status Status, result, failReason string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, result = ?, fail_reason = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		status, nullable(result), failReason, now, id, StatusProcessing,
	)
	if err != nil {
		return fmt.Errorf("update job %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("job %s is not in processing state", id)
	}
	return nil
}

// Get returns one job by id.
func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, meeting_id, status, result, fail_reason, created_at, updated_at
		 FROM jobs WHERE id = ?`, id,
	)

	var job Job
	var result sql.NullString
	err := row.Scan(&job.ID, &job.MeetingID, &job.Status, &result,
		&job.FailReason, &job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan job %s: %w", id, err)
	}

	if result.Valid && result.String != "" {
		var r Result
		if err := json.Unmarshal([]byte(result.String), &r); err != nil {
			return nil, fmt.Errorf("decode result for %s: %w", id, err)
		}
		job.Result = &r
	}

	return &job, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
