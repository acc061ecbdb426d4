package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/turtle/pkg/adapters/mcp"
	"github.com/aretw0/turtle/pkg/observability"
)

// MCPOptions configures the 'mcp' command.
type MCPOptions struct {
	Options

	// SSEAddr serves over SSE instead of stdio when set.
	SSEAddr string
}

// ServeMCP exposes the engine as MCP tools. Logs always go to Stderr so the
// stdio transport keeps Stdout for JSON-RPC.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger := serverLogger(cfg, opts.Debug)
	log.SetOutput(os.Stderr)

	engine, cleanup, err := createEngine(ctx, cfg, logger, networkLoader(), nil, observability.AuditHooks(logger))
	defer cleanup()
	if err != nil {
		return err
	}

	srv := mcp.NewServer(engine, logger)
	if opts.SSEAddr != "" {
		if err := srv.ServeSSE(ctx, opts.SSEAddr); err != nil {
			return fmt.Errorf("mcp server failed: %w", err)
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	}

	logger.Info("starting turtle MCP server (stdio)")
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("mcp server failed: %w", err)
	}
	return nil
}
