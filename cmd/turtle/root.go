package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turtle/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turtle",
	Short: "Turtle drives a toy robot around a bounded grid",
	Long: `Turtle reads PLACE X,Y,F, MOVE, LEFT, RIGHT and REPORT commands and moves a
robot on a table top, ignoring any command that would make it fall off.

A line ending in .txt is treated as a file of commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringSlice("env-file", []string{".env"}, "Files with TURTLE_* variables to load (missing files are skipped)")
}

func commonOptions(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	return cli.Options{
		ConfigPath: configPath,
		EnvFiles:   envFiles,
		Debug:      debug,
	}
}
