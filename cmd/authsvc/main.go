// Command authsvc runs the voiceforge authentication service: registration,
// login, and token validation.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/voiceforge/voiceforge/internal/bootstrap"
	"github.com/voiceforge/voiceforge/internal/data"
	httpx "github.com/voiceforge/voiceforge/internal/http"
	"github.com/voiceforge/voiceforge/internal/service"
	"github.com/voiceforge/voiceforge/internal/token"
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

	tokens, err := token.NewService(token.ServiceOptions{
		Secret: []byte(cfg.Auth.TokenSecret),
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		return err
	}

	authSvc, err := service.NewAuthService(service.AuthServiceOptions{
		Users:      data.NewUserRepo(db),
		Tokens:     tokens,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	router := httpx.NewAuthRouter(httpx.AuthRouterServices{Auth: authSvc, Logger: logger})
	server := bootstrap.StartServer(logger, router, cfg.HTTP.AuthAddr)

	stop, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	return bootstrap.ShutdownServer(ctx, server, logger)
}
