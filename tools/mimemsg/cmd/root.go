// Package cmd implements the mimemsg command line tool for building, checking
// and inspecting MIME messages.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:               "mimemsg",
		Short:             "Tools for building and round-tripping MIME messages",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}

	verbose bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debugging output to stderr")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(roundtripCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(stripCmd)
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

// Execute runs the mimemsg command and exits with a non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
