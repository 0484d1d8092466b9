// Command jobsvc runs the voiceforge clone job service: the job API, the
// synthesis worker pool, and the stale job reaper.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"github.com/voiceforge/voiceforge/internal/bootstrap"
	"github.com/voiceforge/voiceforge/internal/data"
	httpx "github.com/voiceforge/voiceforge/internal/http"
	"github.com/voiceforge/voiceforge/internal/service"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	db, err := bootstrap.ConnectDB(cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	}

	jobs := data.NewJobRepo(db, logger)
	queue := service.NewQueue(cfg.Worker.QueueSize)

	jobSvc, err := service.NewJobService(service.JobServiceOptions{
		Jobs:   jobs,
		Queue:  queue,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	pool, err := service.NewWorkerPool(service.WorkerPoolOptions{
		Jobs:        jobs,
		Queue:       queue,
		Synthesizer: &service.StubSynthesizer{Delay: cfg.Worker.SynthesisDelay},
		Count:       cfg.Worker.Count,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	// The queue is in-memory; pick the persisted pending jobs back up.
	if err = pool.RecoverPending(ctx); err != nil {
		return err
	}

	reaper, err := service.NewReaper(service.ReaperOptions{
		Jobs:       jobs,
		Interval:   cfg.Reaper.Interval,
		StaleAfter: cfg.Reaper.StaleAfter,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	router := httpx.NewJobRouter(httpx.JobRouterServices{Jobs: jobSvc, Logger: logger})
	server := bootstrap.StartServer(logger, router, cfg.HTTP.JobsAddr)

	stop, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, runCtx := errgroup.WithContext(stop)
	g.Go(func() error { return pool.Run(runCtx) })
	g.Go(func() error { return reaper.Run(runCtx) })

	<-runCtx.Done()

	shutdownErr := bootstrap.ShutdownServer(ctx, server, logger)
	if err := g.Wait(); err != nil {
		return err
	}
	return shutdownErr
}
