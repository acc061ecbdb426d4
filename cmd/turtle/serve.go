package main

import (
	"context"

	"github.com/aretw0/turtle/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves one robot over HTTP:

  POST /commands   text/plain lines or {"commands": [...]}
  GET  /position   current position as JSON
  GET  /report     the REPORT line (204 before placement)
  GET  /events     transitions as Server-Sent Events
  GET  /metrics    Prometheus metrics
  GET  /healthz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Serve(ctx, cli.ServeOptions{
			Options: commonOptions(cmd),
			Addr:    addr,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default from http.addr, :8080)")
}
