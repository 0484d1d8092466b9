package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/voiceforge/voiceforge/internal/core"
	"github.com/voiceforge/voiceforge/internal/domain/model"
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Jobs   core.JobRepository // Required: job repository
	Queue  core.JobQueue      // Required: work queue feeding the synthesis pool
	Logger *slog.Logger       // Optional: structured logger
}

// JobService owns the clone job lifecycle on the request path: it persists
// new jobs and hands them to the queue. The worker pool and reaper drive the
// rest of the state machine.
type JobService struct {
	jobs   core.JobRepository
	queue  core.JobQueue
	logger *slog.Logger
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) (*JobService, error) {
	if opts.Jobs == nil {
		return nil, errors.New("JobRepository is required")
	}
	if opts.Queue == nil {
		return nil, errors.New("JobQueue is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "job_service")
	}

	return &JobService{jobs: opts.Jobs, queue: opts.Queue, logger: logger}, nil
}

// Create persists a new pending job and enqueues it for synthesis. If the
// queue cannot accept the job it is marked failed right away so it never
// sits pending with nothing scheduled to pick it up.
func (s *JobService) Create(ctx context.Context, userID string, req *model.CreateJobRequest) (*model.CreateJobResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("create job: %w", errors.New("request body is required"))
	}

	job, err := s.jobs.Create(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	status := job.Status
	if enqueueErr := s.queue.Enqueue(job.ID); enqueueErr != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "enqueue failed, failing job",
				"job_id", job.ID, "error", enqueueErr)
		}
		if _, markErr := s.jobs.MarkFailed(ctx, job.ID, "synthesis queue full"); markErr != nil && s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to mark job failed after enqueue error",
				"job_id", job.ID, "error", markErr)
		}
		status = model.JobStatusFailed
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "clone job created",
			"job_id", job.ID, "user_id", userID, "status", status)
	}

	return &model.CreateJobResponse{
		ID:      job.ID,
		Status:  status,
		Message: "Voice cloning job created",
	}, nil
}

// Get returns a job owned by userID.
func (s *JobService) Get(ctx context.Context, userID, jobID string) (*model.Job, error) {
	return s.jobs.Get(ctx, userID, jobID)
}

// List returns all jobs owned by userID, newest first.
func (s *JobService) List(ctx context.Context, userID string) ([]*model.Job, error) {
	return s.jobs.List(ctx, userID)
}

// Status returns the status projection of a job owned by userID.
func (s *JobService) Status(ctx context.Context, userID, jobID string) (*model.JobStatusResponse, error) {
	return s.jobs.Status(ctx, userID, jobID)
}

// Stats returns per-status job counts for userID.
func (s *JobService) Stats(ctx context.Context, userID string) (*model.JobStats, error) {
	return s.jobs.Stats(ctx, userID)
}
