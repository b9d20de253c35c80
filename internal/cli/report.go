package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andy/labourcost/internal/report"
	"github.com/andy/labourcost/internal/service"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export labour cost reports as CSV or PDF",
	Long: `Export recorded labour cost for a week or a payroll run.

Examples:
  labourcost report week --week 2026-10-19
  labourcost report run <run-id> --format pdf --out run.pdf`,
}

var reportWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Export every recorded timesheet of a week",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		weekStr, _ := cmd.Flags().GetString("week")
		week, err := parseDate(weekStr)
		if err != nil {
			return fmt.Errorf("invalid week: %w", err)
		}

		summary, err := appInstance.ReportService.WeekSummary(ctx, week)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return exportSummary(cmd, summary, "week-"+weekLabel(week))
	},
}

var reportRunCmd = &cobra.Command{
	Use:   "run [run-id]",
	Short: "Export the timesheets of one payroll run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		summary, err := appInstance.ReportService.RunSummary(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return exportSummary(cmd, summary, "run-"+summary.RunID)
	},
}

func exportSummary(cmd *cobra.Command, summary *service.LabourSummary, baseName string) error {
	cfg := appInstance.Config

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Report.DefaultFormat
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = filepath.Join(cfg.Report.OutputDir, baseName+"."+format)
	}

	if len(summary.Lines) == 0 {
		fmt.Println("No recorded timesheets to export")
		return nil
	}

	switch format {
	case "csv":
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		if err := report.WriteCSV(f, summary); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	case "pdf":
		if err := report.WritePDF(out, cfg.Report.Title, summary); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (use csv or pdf)", format)
	}

	fmt.Printf("✓ %d line(s), total %s, written to %s\n", len(summary.Lines), summary.Total.StringFixed(2), out)
	return nil
}

func init() {
	reportCmd.AddCommand(reportWeekCmd)
	reportCmd.AddCommand(reportRunCmd)

	reportWeekCmd.Flags().String("week", "today", "Any date in the week (YYYY-MM-DD, today, yesterday)")
	for _, c := range []*cobra.Command{reportWeekCmd, reportRunCmd} {
		c.Flags().String("format", "", "csv or pdf (default from config)")
		c.Flags().String("out", "", "Output file (default in the configured report directory)")
	}
}
