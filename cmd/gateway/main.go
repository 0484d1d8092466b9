// Command gateway runs the voiceforge API gateway: the single public entry
// point that validates tokens and forwards requests to the backing services.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/voiceforge/voiceforge/internal/bootstrap"
	"github.com/voiceforge/voiceforge/internal/core"
	"github.com/voiceforge/voiceforge/internal/gateway"
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

	authClient, err := gateway.NewAuthClient(gateway.AuthClientOptions{
		BaseURL: cfg.Gateway.AuthServiceURL,
		Timeout: cfg.Gateway.ValidateTimeout,
	})
	if err != nil {
		return err
	}

	var verifier core.TokenVerifier = authClient
	redisClient, err := bootstrap.ConnectRedis(cfg.Gateway.Cache, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
		verifier = gateway.NewCachingVerifier(gateway.CachingVerifierOptions{
			Inner:  authClient,
			Redis:  redisClient,
			TTL:    cfg.Gateway.Cache.TTL,
			Logger: logger,
		})
	}

	gw, err := gateway.New(gateway.Options{
		AuthServiceURL: cfg.Gateway.AuthServiceURL,
		JobServiceURL:  cfg.Gateway.JobServiceURL,
		Verifier:       verifier,
		ForwardTimeout: cfg.Gateway.ForwardTimeout,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	server := bootstrap.StartServer(logger, gw.Handler(), cfg.HTTP.GatewayAddr)

	stop, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	return bootstrap.ShutdownServer(ctx, server, logger)
}
