package server

import (
	"context"
	"time"

	"RiskFill/internal/handler/api"
	"RiskFill/internal/usecase"
	"RiskFill/pkg/config"
	xhttp "RiskFill/pkg/http"
	applogger "RiskFill/pkg/logger"
	"RiskFill/pkg/util"
)

// App encapsulates the application lifecycle for both run modes.
type App struct {
	cfg      *config.Config
	log      *applogger.Logger
	backfill *usecase.BackfillUseCase
	handler  xhttp.Handler
	now      func() time.Time
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, backfill *usecase.BackfillUseCase, handler *api.RiskEchoHandler) *App {
	return &App{cfg: cfg, log: l, backfill: backfill, handler: handler, now: time.Now}
}

// Logger returns the application logger.
func (a *App) Logger() *applogger.Logger { return a.log }

// DefaultWindow returns the configured trailing window ending today (UTC).
func (a *App) DefaultWindow() (time.Time, time.Time) {
	return util.TrailingWindow(a.now(), a.cfg.Backfill.WindowDays)
}

// RunBackfill builds and writes the history for [start, end].
func (a *App) RunBackfill(ctx context.Context, start, end time.Time) error {
	a.log.Info("fetching real historical data",
		applogger.String("start", util.FormatDate(start)),
		applogger.String("end", util.FormatDate(end)),
		applogger.Int("series", len(a.cfg.Fred.Series)),
	)

	res, err := a.backfill.Run(ctx, start, end)
	if err != nil {
		a.log.Error("backfill failed", applogger.Error(err))
		return err
	}

	a.log.Info("saved history",
		applogger.String("run_id", res.RunID),
		applogger.String("output", a.cfg.Backfill.Output),
		applogger.String("format", a.cfg.Backfill.Format),
		applogger.Int("days", len(res.Records)),
	)
	return nil
}

// Serve runs the HTTP API until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	}

	srv := xhttp.NewServer(a.log, a.handler, opts...)
	if err := srv.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	<-ctx.Done()
	a.log.Info("shutdown signal received")

	// ctx is already done; give shutdown its own budget
	if err := srv.Stop(context.Background()); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}
