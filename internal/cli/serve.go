package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/turtle/internal/config"
	httpAdapter "github.com/aretw0/turtle/pkg/adapters/http"
	"github.com/aretw0/turtle/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the 'serve' command.
type ServeOptions struct {
	Options

	// Addr overrides http.addr from the configuration.
	Addr string
}

// Serve runs the HTTP adapter until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger := serverLogger(cfg, opts.Debug)

	addr := opts.Addr
	if addr == "" {
		addr = cfg.HTTP.Addr
	}

	handler, cleanup, err := newHTTPHandler(ctx, cfg, logger)
	defer cleanup()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: shutdownTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting turtle server", "addr", addr, "bounds", cfg.Grid)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down", "cause", context.Cause(ctx))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("turtle server stopped gracefully")
		return nil
	}
}

// newHTTPHandler wires metrics, the SSE stream and audit logging around one engine.
func newHTTPHandler(ctx context.Context, cfg *config.Config, logger *slog.Logger) (http.Handler, func(), error) {
	metrics := observability.NewMetrics()
	streams := httpAdapter.NewStreamManager(logger)

	hooks := metrics.Hooks(cfg.Grid).
		Merge(streams.Hooks()).
		Merge(observability.AuditHooks(logger))

	engine, cleanup, err := createEngine(ctx, cfg, logger, networkLoader(), nil, hooks)
	if err != nil {
		return nil, cleanup, err
	}

	return httpAdapter.NewHandler(engine,
		httpAdapter.WithStreams(streams),
		httpAdapter.WithMetrics(metrics.Handler()),
		httpAdapter.WithLogger(logger),
	), cleanup, nil
}
