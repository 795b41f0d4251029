package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aramesh-server/services/therapy-api/internal/infrastructure/logger"
	"aramesh-server/services/therapy-api/internal/infrastructure/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := BuildApplication(ctx)
	if err != nil {
		log := logger.GetLogger()
		log.Fatal().Err(err).Msg("failed to assemble application")
	}

	shutdownTelemetry, err := observability.Setup(ctx, app.cfg, app.log)
	if err != nil {
		app.log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			app.log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	if err := app.Start(ctx); err != nil {
		app.log.Fatal().Err(err).Msg("application stopped with error")
	}

	app.log.Info().Msg("application exited cleanly")
}
