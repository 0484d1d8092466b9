package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/voiceforge/voiceforge/internal/core"
	"github.com/voiceforge/voiceforge/internal/domain/model"
	apperrors "github.com/voiceforge/voiceforge/internal/errors"
)

const jobColumns = `
  id,
  user_id,
  name,
  status,
  source_ref,
  output_ref,
  last_error,
  created_at,
  updated_at,
  completed_at
`

// JobRepo provides database operations for clone jobs. After creation a
// job's row is written only by the worker that owns it (or the reaper), and
// every update is a single-row UPDATE guarded by the expected current status,
// so readers always observe a consistent record.
type JobRepo struct {
	DB     *sql.DB
	logger *slog.Logger
}

// NewJobRepo creates a new JobRepo instance with the given database connection.
func NewJobRepo(db *sql.DB, logger *slog.Logger) *JobRepo {
	return &JobRepo{DB: db, logger: logger}
}

// Create inserts a new pending job owned by the given user.
func (r *JobRepo) Create(ctx context.Context, userID string, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, errors.New("create job request is required")
	}
	if validateErr := req.Validate(); validateErr != nil {
		return nil, apperrors.Wrap(validateErr, apperrors.ErrCodeValidation, "invalid job request")
	}
	if !validUUID(userID) {
		return nil, apperrors.ValidationField("user_id", "user id is not valid")
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO clone_jobs (user_id, name, status, source_ref)
		VALUES ($1, $2, 'pending', $3)
		RETURNING `+jobColumns,
		userID, req.Name, req.SourceRef)

	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", apperrors.MapDBError(err))
	}
	return job, nil
}

// Get fetches one job scoped to its owner. A job that exists but belongs to a
// different user is reported as not found.
func (r *JobRepo) Get(ctx context.Context, userID, jobID string) (*model.Job, error) {
	if !validUUID(jobID) || !validUUID(userID) {
		return nil, apperrors.NotFound("job not found")
	}

	row := r.DB.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM clone_jobs WHERE id = $1 AND user_id = $2`,
		jobID, userID)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return job, nil
}

// List returns all jobs owned by the user, newest first.
func (r *JobRepo) List(ctx context.Context, userID string) ([]*model.Job, error) {
	if !validUUID(userID) {
		return []*model.Job{}, nil
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM clone_jobs WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", apperrors.MapDBError(err))
	}
	defer rows.Close()

	jobs := make([]*model.Job, 0)
	for rows.Next() {
		job, scanErr := scanJob(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan job: %w", scanErr)
		}
		jobs = append(jobs, job)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate jobs: %w", apperrors.MapDBError(rowsErr))
	}
	return jobs, nil
}

// Status returns the status projection of one owner-scoped job.
func (r *JobRepo) Status(ctx context.Context, userID, jobID string) (*model.JobStatusResponse, error) {
	if !validUUID(jobID) || !validUUID(userID) {
		return nil, apperrors.NotFound("job not found")
	}

	var resp model.JobStatusResponse
	err := r.DB.QueryRowContext(ctx,
		`SELECT status, completed_at, last_error FROM clone_jobs WHERE id = $1 AND user_id = $2`,
		jobID, userID).Scan(&resp.Status, &resp.CompletedAt, &resp.LastError)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &resp, nil
}

// Stats returns per-status counts of the user's jobs.
func (r *JobRepo) Stats(ctx context.Context, userID string) (*model.JobStats, error) {
	if !validUUID(userID) {
		return &model.JobStats{}, nil
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM clone_jobs WHERE user_id = $1 GROUP BY status`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", apperrors.MapDBError(err))
	}
	defer rows.Close()

	var stats model.JobStats
	for rows.Next() {
		var status model.JobStatus
		var count int
		if scanErr := rows.Scan(&status, &count); scanErr != nil {
			return nil, fmt.Errorf("scan job stats: %w", scanErr)
		}
		switch status {
		case model.JobStatusPending:
			stats.Pending = count
		case model.JobStatusProcessing:
			stats.Processing = count
		case model.JobStatusCompleted:
			stats.Completed = count
		case model.JobStatusFailed:
			stats.Failed = count
		}
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate job stats: %w", apperrors.MapDBError(rowsErr))
	}
	return &stats, nil
}

// MarkProcessing transitions pending→processing. The status guard makes the
// pickup idempotent: a second worker (or a reaped job) sees false.
func (r *JobRepo) MarkProcessing(ctx context.Context, jobID string) (bool, error) {
	return r.updateStatus(ctx, `
		UPDATE clone_jobs
		SET status = 'processing', updated_at = now()
		WHERE id = $1 AND status = 'pending'`,
		jobID)
}

// MarkCompleted transitions processing→completed, recording the output
// reference and completion time in one atomic row update.
func (r *JobRepo) MarkCompleted(ctx context.Context, jobID, outputRef string) (bool, error) {
	return r.updateStatus(ctx, `
		UPDATE clone_jobs
		SET status = 'completed', output_ref = $2, updated_at = now(), completed_at = now()
		WHERE id = $1 AND status = 'processing'`,
		jobID, outputRef)
}

// MarkFailed transitions a non-terminal job to failed. Terminal states are
// never overwritten.
func (r *JobRepo) MarkFailed(ctx context.Context, jobID, errMsg string) (bool, error) {
	return r.updateStatus(ctx, `
		UPDATE clone_jobs
		SET status = 'failed', last_error = $2, updated_at = now(), completed_at = now()
		WHERE id = $1 AND status IN ('pending', 'processing')`,
		jobID, errMsg)
}

// MarkFailedStale fails non-terminal jobs untouched for longer than the
// given age. Used by the reaper so a crashed worker or a lost queue entry
// never leaves a job non-terminal.
func (r *JobRepo) MarkFailedStale(ctx context.Context, params core.MarkFailedStaleParams) (int, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE clone_jobs
		SET status = 'failed', last_error = $2, updated_at = now(), completed_at = now()
		WHERE status IN ('pending', 'processing') AND updated_at < now() - make_interval(secs => $1)`,
		params.OlderThanSeconds, params.Reason)
	if err != nil {
		return 0, fmt.Errorf("reap stale jobs: %w", apperrors.MapDBError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reap stale jobs rows affected: %w", err)
	}
	if affected > 0 && r.logger != nil {
		r.logger.WarnContext(ctx, "reaped stale jobs", "count", affected)
	}
	return int(affected), nil
}

// RecoverPending returns the ids of all pending jobs, oldest first, and
// refreshes their updated_at so the reaper does not fail them while they
// wait for a worker. The in-memory queue does not survive a restart, so the
// job service re-enqueues these on startup.
func (r *JobRepo) RecoverPending(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		UPDATE clone_jobs
		SET updated_at = now()
		WHERE status = 'pending'
		RETURNING id, created_at`)
	if err != nil {
		return nil, fmt.Errorf("recover pending jobs: %w", apperrors.MapDBError(err))
	}
	defer rows.Close()

	type pending struct {
		id        string
		createdAt time.Time
	}
	var found []pending
	for rows.Next() {
		var p pending
		if scanErr := rows.Scan(&p.id, &p.createdAt); scanErr != nil {
			return nil, fmt.Errorf("scan pending job: %w", scanErr)
		}
		found = append(found, p)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate pending jobs: %w", apperrors.MapDBError(rowsErr))
	}

	sort.Slice(found, func(i, j int) bool { return found[i].createdAt.Before(found[j].createdAt) })
	ids := make([]string, len(found))
	for i, p := range found {
		ids[i] = p.id
	}
	return ids, nil
}

func (r *JobRepo) updateStatus(ctx context.Context, query, jobID string, args ...any) (bool, error) {
	if !validUUID(jobID) {
		return false, nil
	}

	res, err := r.DB.ExecContext(ctx, query, append([]any{jobID}, args...)...)
	if err != nil {
		return false, fmt.Errorf("update job status: %w", apperrors.MapDBError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update job status rows affected: %w", err)
	}
	return affected > 0, nil
}

func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func scanJob(row rowScanner) (*model.Job, error) {
	var j model.Job
	if err := row.Scan(
		&j.ID,
		&j.UserID,
		&j.Name,
		&j.Status,
		&j.SourceRef,
		&j.OutputRef,
		&j.LastError,
		&j.CreatedAt,
		&j.UpdatedAt,
		&j.CompletedAt,
	); err != nil {
		return nil, err
	}
	return &j, nil
}
