package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/BradenHooton/portfolio/internal/content"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the bundled portfolio data as JSON or TypeScript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := renderExport(format, time.Now())
			if err != nil {
				return err
			}

			if out == "" {
				_, err = io.WriteString(cmd.OutOrStdout(), data)
				return err
			}

			if err := os.WriteFile(out, []byte(data), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or ts")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func renderExport(format string, now time.Time) (string, error) {
	catalog, err := content.Load()
	if err != nil {
		return "", err
	}

	switch strings.ToLower(format) {
	case "json":
		data, err := catalog.JSON()
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case "ts", "typescript":
		return catalog.TypeScript(now)
	default:
		return "", fmt.Errorf("unknown format %q (want json or ts)", format)
	}
}
