package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dharshaa/air-advisor/internal/infra/config"
	"github.com/dharshaa/air-advisor/internal/scheduler"
)

// App encapsulates the HTTP server and background scheduler lifecycle.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	refresher *scheduler.Scheduler
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, refresher *scheduler.Scheduler) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, refresher: refresher}
}

// Run starts the scheduler and HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	if a.refresher != nil {
		if err := a.refresher.Start(); err != nil {
			return err
		}
		defer a.refresher.Stop()
	}

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
