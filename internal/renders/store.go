package renders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS render_jobs (
    id            TEXT PRIMARY KEY,
    output_path   TEXT NOT NULL,
    start_frame   INTEGER NOT NULL,
    end_frame     INTEGER NOT NULL,
    status        TEXT NOT NULL,
    error_message TEXT NOT NULL DEFAULT '',
    created_at    TEXT NOT NULL,
    updated_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_render_jobs_created_at ON render_jobs (created_at DESC);
`

// ErrNotFound is returned when a job id has no row.
var ErrNotFound = errors.New("render job not found")

// Store manages render history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the history database under dir, creating both as needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory %q: %w", dir, err)
	}
	dbPath := filepath.Join(dir, "renders.db")
	db, err := sql.Open("sqlite", dbPath)
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
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
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

// Begin inserts a running job for a newly started export.
func (s *Store) Begin(ctx context.Context, outputPath string, startFrame, endFrame int64) (*Job, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	id := uuid.NewString()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO render_jobs (id, output_path, start_frame, end_frame, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		outputPath,
		startFrame,
		endFrame,
		StatusRunning,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert render job: %w", err)
	}
	return s.Get(ctx, id)
}

// Finish records the terminal status of a job. errorMessage is empty unless
// the export failed.
func (s *Store) Finish(ctx context.Context, id string, status Status, errorMessage string) error {
	if !status.Valid() || status == StatusRunning {
		return fmt.Errorf("invalid terminal status %q", status)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE render_jobs SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		status,
		errorMessage,
		timestamp,
		id,
	)
	if err != nil {
		return fmt.Errorf("update render job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get fetches one job by id.
func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, output_path, start_frame, end_frame, status, error_message, created_at, updated_at
         FROM render_jobs WHERE id = ?`,
		id,
	)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get render job: %w", err)
	}
	return job, nil
}

// List returns the most recent jobs, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]*Job, error) {
	query := `SELECT id, output_path, start_frame, end_frame, status, error_message, created_at, updated_at
              FROM render_jobs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list render jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan render job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate render jobs: %w", err)
	}
	return jobs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*Job, error) {
	var job Job
	var status, createdAt, updatedAt string
	if err := row.Scan(&job.ID, &job.OutputPath, &job.StartFrame, &job.EndFrame, &status, &job.ErrorMessage, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	job.Status = Status(status)
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		job.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		job.UpdatedAt = ts
	}
	return &job, nil
}
