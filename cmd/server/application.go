package main

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"aramesh-server/services/therapy-api/internal/config"
	"aramesh-server/services/therapy-api/internal/infrastructure/crontab"
	"aramesh-server/services/therapy-api/internal/infrastructure/metrics"
	"aramesh-server/services/therapy-api/internal/interfaces/httpserver"
)

// Application owns the long-running components of the service.
type Application struct {
	httpServer *httpserver.HttpServer
	scheduler  *crontab.Scheduler
	metrics    *metrics.Metrics
	cfg        *config.Config
	log        zerolog.Logger
}

func NewApplication(
	httpServer *httpserver.HttpServer,
	scheduler *crontab.Scheduler,
	m *metrics.Metrics,
	cfg *config.Config,
	log zerolog.Logger,
) *Application {
	return &Application{
		httpServer: httpServer,
		scheduler:  scheduler,
		metrics:    m,
		cfg:        cfg,
		log:        log,
	}
}

// Start runs the HTTP listener, metrics endpoint and background jobs until
// the context is cancelled.
func (a *Application) Start(ctx context.Context) error {
	metricsSrv := a.metrics.Serve(a.cfg.MetricsPort, a.log)
	defer func() {
		_ = metricsSrv.Close()
	}()

	if err := a.scheduler.Start(); err != nil {
		return err
	}
	defer a.scheduler.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.httpServer.Run(ctx)
	})
	return g.Wait()
}
