package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/voiceforge/voiceforge/internal/core"
)

// ErrQueueFull is returned by Enqueue when the queue buffer is at capacity.
var ErrQueueFull = errors.New("job queue is full")

// Queue is a bounded in-process job queue. Enqueue never blocks; callers
// decide what to do when the buffer is full.
type Queue struct {
	ch chan string
}

// NewQueue constructs a Queue with the given buffer size.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan string, size)}
}

// Enqueue offers a job id to the queue without blocking.
func (q *Queue) Enqueue(jobID string) error {
	select {
	case q.ch <- jobID:
		return nil
	default:
		return ErrQueueFull
	}
}

var _ core.JobQueue = (*Queue)(nil)

// WorkerPoolOptions groups dependencies for WorkerPool.
type WorkerPoolOptions struct {
	Jobs        core.JobRepository // Required: job repository
	Queue       *Queue             // Required: queue to drain
	Synthesizer Synthesizer        // Required: synthesis backend
	Count       int                // Optional: worker count, defaults to 1
	Logger      *slog.Logger       // Optional: structured logger
}

// WorkerPool drains the queue and drives each job through
// processing to completed or failed.
type WorkerPool struct {
	jobs        core.JobRepository
	queue       *Queue
	synthesizer Synthesizer
	count       int
	logger      *slog.Logger
}

// NewWorkerPool constructs a new WorkerPool.
func NewWorkerPool(opts WorkerPoolOptions) (*WorkerPool, error) {
	if opts.Jobs == nil {
		return nil, errors.New("JobRepository is required")
	}
	if opts.Queue == nil {
		return nil, errors.New("Queue is required")
	}
	if opts.Synthesizer == nil {
		return nil, errors.New("Synthesizer is required")
	}

	count := opts.Count
	if count < 1 {
		count = 1
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &WorkerPool{
		jobs:        opts.Jobs,
		queue:       opts.Queue,
		synthesizer: opts.Synthesizer,
		count:       count,
		logger:      logger.With("component", "worker_pool"),
	}, nil
}

// RecoverPending re-enqueues jobs persisted as pending whose queue entries
// did not survive the previous process. Jobs that no longer fit the queue are
// marked failed so they do not sit in pending with no way to run.
func (p *WorkerPool) RecoverPending(ctx context.Context) error {
	ids, err := p.jobs.RecoverPending(ctx)
	if err != nil {
		return fmt.Errorf("recover pending jobs: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	requeued := 0
	for _, jobID := range ids {
		if enqueueErr := p.queue.Enqueue(jobID); enqueueErr != nil {
			p.logger.ErrorContext(ctx, "requeue job failed",
				"job_id", jobID, "error", enqueueErr)
			p.fail(ctx, jobID, "synthesis queue full")
			continue
		}
		requeued++
	}

	p.logger.InfoContext(ctx, "requeued pending jobs", "count", requeued, "found", len(ids))
	return nil
}

// Run blocks draining the queue until ctx is canceled. Jobs in flight when
// the context is canceled are left in processing for the reaper to fail.
func (p *WorkerPool) Run(ctx context.Context) error {
	p.logger.InfoContext(ctx, "worker pool starting", "workers", p.count)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.count; i++ {
		worker := i
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case jobID := <-p.queue.ch:
					p.process(ctx, worker, jobID)
				}
			}
		})
	}

	err := g.Wait()
	p.logger.Info("worker pool stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (p *WorkerPool) process(ctx context.Context, worker int, jobID string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.ErrorContext(ctx, "panic during synthesis",
				"worker", worker, "job_id", jobID, "panic", r)
			p.fail(ctx, jobID, fmt.Sprintf("panic: %v", r))
		}
	}()

	claimed, err := p.jobs.MarkProcessing(ctx, jobID)
	if err != nil {
		p.logger.ErrorContext(ctx, "claim job failed", "job_id", jobID, "error", err)
		return
	}
	if !claimed {
		// Already claimed, reaped, or deleted. Nothing to do.
		p.logger.WarnContext(ctx, "job not claimable, skipping", "job_id", jobID)
		return
	}

	p.logger.InfoContext(ctx, "synthesis started", "worker", worker, "job_id", jobID)

	outputRef, err := p.synthesizer.Synthesize(ctx, jobID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Shutdown mid-job: leave it processing for the reaper.
			return
		}
		p.logger.ErrorContext(ctx, "synthesis failed", "job_id", jobID, "error", err)
		p.fail(ctx, jobID, err.Error())
		return
	}

	done, err := p.jobs.MarkCompleted(ctx, jobID, outputRef)
	if err != nil {
		p.logger.ErrorContext(ctx, "complete job failed", "job_id", jobID, "error", err)
		return
	}
	if !done {
		p.logger.WarnContext(ctx, "job no longer processing at completion", "job_id", jobID)
		return
	}

	p.logger.InfoContext(ctx, "synthesis completed", "worker", worker, "job_id", jobID, "output_ref", outputRef)
}

func (p *WorkerPool) fail(ctx context.Context, jobID, reason string) {
	// Use a fresh context so shutdown does not drop the failure record.
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	if _, err := p.jobs.MarkFailed(ctx, jobID, reason); err != nil {
		p.logger.ErrorContext(ctx, "mark job failed errored", "job_id", jobID, "error", err)
	}
}
