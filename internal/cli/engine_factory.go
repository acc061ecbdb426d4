package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/turtle"
	"github.com/aretw0/turtle/internal/config"
	"github.com/aretw0/turtle/pkg/adapters/file"
	"github.com/aretw0/turtle/pkg/adapters/redis"
	"github.com/aretw0/turtle/pkg/domain"
	"github.com/aretw0/turtle/pkg/ports"
)

// createEngine initializes a Turtle engine with standard CLI conventions:
// batch files are read through loader and, when configured, every report is
// also pushed to Redis after the primary sink.
// The returned cleanup func is never nil.
func createEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger, loader ports.BatchLoader, sink ports.OutputSink, hooks domain.LifecycleHooks) (*turtle.Engine, func(), error) {
	cleanup := func() {}

	var sinks ports.MultiSink
	if sink != nil {
		sinks = append(sinks, sink)
	}

	if cfg.Redis.Addr != "" {
		rs := redis.New(cfg.Redis.Addr,
			redis.WithKey(cfg.Redis.Key),
			redis.WithChannel(cfg.Redis.Channel),
			redis.WithMaxLen(cfg.Redis.MaxLen),
		)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, cleanup, fmt.Errorf("redis sink unavailable: %w", err)
		}
		logger.Debug("redis sink enabled", "addr", cfg.Redis.Addr, "key", cfg.Redis.Key)
		sinks = append(sinks, rs)
		cleanup = func() { _ = rs.Close() }
	}

	opts := []turtle.Option{
		turtle.WithBounds(cfg.Grid),
		turtle.WithBatchSuffix(cfg.BatchSuffix),
		turtle.WithBatchLoader(loader),
		turtle.WithLogger(logger),
		turtle.WithLifecycleHooks(hooks),
	}
	if len(sinks) > 0 {
		opts = append(opts, turtle.WithSink(sinks))
	}

	engine, err := turtle.New(opts...)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, cleanup, nil
}

// localLoader serves command-line use: any path the user can name.
func localLoader() ports.BatchLoader {
	return file.NewLoader("")
}

// networkLoader serves remote callers: only files below the working directory.
func networkLoader() ports.BatchLoader {
	return file.NewConfinedLoader("")
}
