package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/fdg312/fitness-tracker/internal/reports"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportPeriod int
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render an analytics report to a local file",
	Long: `Export renders the same report the API stores under /api/reports,
but writes it to --output (or stdout) instead of the report store.

FORMATS: csv, yaml, pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(exportFormat)
		ctx, cancel := commandContext(cmd)
		defer cancel()

		snap, err := reports.NewGenerator(analyticsService()).Collect(ctx, ownerID, exportPeriod)
		if err != nil {
			return err
		}
		data, err := reports.Render(format, snap)
		if err != nil {
			return err
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err := os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		color.Green("✓ Exported %s report to %s (%d bytes)", format, exportOutput, len(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", reports.FormatCSV, "csv, yaml or pdf")
	exportCmd.Flags().IntVarP(&exportPeriod, "period", "p", 30, "period in days")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
