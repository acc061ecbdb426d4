package main

import (
	"context"

	"github.com/aretw0/turtle/internal/cli"
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <line>...",
	Short: "Execute each argument as one command line",
	Example: `  turtle exec "PLACE 0,0,NORTH" MOVE REPORT
  turtle exec route.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Exec(ctx, cli.ExecOptions{
			Options: commonOptions(cmd),
			Lines:   args,
			Strict:  strict,
			Stdout:  cmd.OutOrStdout(),
			Stderr:  cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().Bool("strict", false, "Stop at the first parse or output error")
}
