package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/BradenHooton/portfolio/internal/config"
	"github.com/BradenHooton/portfolio/internal/storage"
)

func newMigrateCmd() *cobra.Command {
	var driver string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply scope store migrations for the sqlite or postgres backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if driver != "" {
				cfg.Store.Driver = strings.ToLower(driver)
			}
			if cfg.Store.Driver == "memory" {
				return fmt.Errorf("the memory store has no schema; pass --driver sqlite or --driver postgres")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			// Opening a backend applies its migrations.
			backend, err := storage.Open(ctx, cfg, newLogger())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s store is up to date\n", cfg.Store.Driver)
			return backend.Close()
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "store driver to migrate (default STORE_DRIVER)")
	return cmd
}
