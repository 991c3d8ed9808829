package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Operator tools for the portfolio site",
		Long: `portfolioctl exports the bundled portfolio data, produces the bcrypt hash
for ADMIN_PASSWORD_HASH and applies scope store migrations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newHashPasswordCmd())
	rootCmd.AddCommand(newMigrateCmd())
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
