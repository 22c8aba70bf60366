package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/marketcal/internal/database"
)

// Job run statuses
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// JobRun is one recorded execution of a job
type JobRun struct {
	ID        string        `json:"id"`
	Job       string        `json:"job"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Status    string        `json:"status"`
	Error     string        `json:"error,omitempty"`
}

// JobHistory stores job runs in the cache database
type JobHistory struct {
	db *database.DB
}

// NewJobHistory creates a JobHistory. The database must be migrated.
func NewJobHistory(db *database.DB) *JobHistory {
	return &JobHistory{db: db}
}

// Record stores a job run
func (h *JobHistory) Record(ctx context.Context, run JobRun) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO job_runs (id, job, started_at, duration_ms, status, error) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Job, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(), run.Status, run.Error)
	if err != nil {
		return fmt.Errorf("failed to record run of %s: %w", run.Job, err)
	}
	return nil
}

// Recent returns the latest runs, newest first. An empty job matches all jobs.
func (h *JobHistory) Recent(ctx context.Context, job string, limit int) ([]JobRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, job, started_at, duration_ms, status, error
		FROM job_runs
		WHERE ? = '' OR job = ?
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, job, job, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query job runs: %w", err)
	}
	defer rows.Close()

	runs := make([]JobRun, 0)
	for rows.Next() {
		var run JobRun
		var startedMs, durationMs int64
		if err := rows.Scan(&run.ID, &run.Job, &startedMs, &durationMs, &run.Status, &run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan job run: %w", err)
		}
		run.StartedAt = time.UnixMilli(startedMs).UTC()
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
