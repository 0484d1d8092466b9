package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/voiceforge/voiceforge/internal/core"
)

// ReaperOptions groups dependencies for Reaper.
type ReaperOptions struct {
	Jobs       core.JobRepository // Required: job repository
	Interval   time.Duration      // Optional: sweep interval, defaults to 1m
	StaleAfter time.Duration      // Optional: processing age before reaping, defaults to 10m
	Logger     *slog.Logger       // Optional: structured logger
}

// Reaper fails jobs stuck in processing longer than StaleAfter, recovering
// work orphaned by a crashed or restarted worker.
type Reaper struct {
	jobs       core.JobRepository
	interval   time.Duration
	staleAfter time.Duration
	logger     *slog.Logger
}

// NewReaper constructs a new Reaper.
func NewReaper(opts ReaperOptions) (*Reaper, error) {
	if opts.Jobs == nil {
		return nil, errors.New("JobRepository is required")
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	staleAfter := opts.StaleAfter
	if staleAfter <= 0 {
		staleAfter = 10 * time.Minute
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reaper{
		jobs:       opts.Jobs,
		interval:   interval,
		staleAfter: staleAfter,
		logger:     logger.With("component", "reaper"),
	}, nil
}

// Run sweeps once immediately, then on every interval tick until ctx is
// canceled. The startup sweep clears jobs orphaned by the previous process.
func (r *Reaper) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "reaper starting",
		"interval", r.interval, "stale_after", r.staleAfter)

	r.sweep(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reaper stopped")
			return nil
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	reaped, err := r.jobs.MarkFailedStale(ctx, core.MarkFailedStaleParams{
		OlderThanSeconds: int(r.staleAfter.Seconds()),
		Reason:           "synthesis timed out",
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "stale job sweep failed", "error", err)
		return
	}
	if reaped > 0 {
		r.logger.WarnContext(ctx, "failed stale processing jobs", "count", reaped)
	}
}
