// Command juicebottler runs the juice plant producer-consumer simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	logLevel string
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "juicebottler",
	Short: "Simulate juice plants bottling oranges",
	Long: "juicebottler runs a bounded producer-consumer simulation: plants produce\n" +
		"oranges into a single-slot mailbox and worker pools process them into bottles.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid log level %q, using 'info'\n", logLevel)
			level = slog.LevelInfo
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Set log level (debug, info, warn, error)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
