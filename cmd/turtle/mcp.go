package main

import (
	"context"

	"github.com/aretw0/turtle/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the engine as an MCP Server so AI agents can drive the robot through
the execute, place, move, left, right, report and position tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: set --sse to an address to serve Server-Sent Events over HTTP instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sseAddr, _ := cmd.Flags().GetString("sse")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.ServeMCP(ctx, cli.MCPOptions{
			Options: commonOptions(cmd),
			SSEAddr: sseAddr,
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("sse", "", "Serve over SSE on this address (e.g. :8081) instead of stdio")
}
