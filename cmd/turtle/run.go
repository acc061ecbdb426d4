package main

import (
	"context"

	"github.com/aretw0/turtle/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [file...]",
	Short: "Run commands interactively, from a pipe, or from files",
	Long: `Starts a session reading one command per line.

With no files, commands come from standard input: an interactive prompt with
completion on a terminal, plain line reading when piped. With files, their
lines are replayed in order; --follow keeps reading a single file as it grows.
Type exit or quit to end an interactive session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		headless, _ := cmd.Flags().GetBool("headless")
		follow, _ := cmd.Flags().GetBool("follow")
		grid, _ := cmd.Flags().GetBool("grid")
		strict, _ := cmd.Flags().GetBool("strict")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Run(ctx, cli.RunOptions{
			Options:  commonOptions(cmd),
			Files:    args,
			JSON:     jsonMode,
			Headless: headless,
			Follow:   follow,
			Grid:     grid,
			Strict:   strict,
			Stdin:    cmd.InOrStdin(),
			Stdout:   cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Bool("headless", false, "Print reports only: no prompt, banner, grid or error messages")
	runCmd.Flags().BoolP("follow", "f", false, "Keep reading the file as lines are appended")
	runCmd.Flags().BoolP("grid", "g", false, "Draw the grid after every report")
	runCmd.Flags().Bool("strict", false, "Stop at the first parse or output error")

	// 'turtle' alone behaves like 'turtle run'.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
