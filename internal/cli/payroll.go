package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/andy/labourcost/internal/domain"
	"github.com/andy/labourcost/internal/report"
	"github.com/spf13/cobra"
)

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Run and inspect weekly payroll runs",
	Long: `Calculate a whole week for many employees at once.

The input CSV has the columns employee_id, hours, minutes, sick_days.
Nothing is stored unless every row calculates.`,
}

var payrollRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Calculate and store a week for every employee in a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		weekStr, _ := cmd.Flags().GetString("week")
		inputPath, _ := cmd.Flags().GetString("input")

		week, err := parseDate(weekStr)
		if err != nil {
			return fmt.Errorf("invalid week: %w", err)
		}

		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()

		inputs, err := report.ReadTimesheetCSV(f)
		if err != nil {
			return err
		}

		run, _, err := appInstance.PayrollService.RunWeek(ctx, week, inputs)
		if err != nil {
			return fmt.Errorf("payroll run failed: %w", err)
		}

		fmt.Printf("✓ Payroll run %s saved\n", run.ID)
		fmt.Printf("  Week:      %s\n", run.WeekStart.Format(domain.DateLayout))
		fmt.Printf("  Employees: %d\n", run.EmployeeCount)
		fmt.Printf("  Total:     %s\n", run.Total.StringFixed(2))
		return nil
	},
}

var payrollListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payroll runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		runs, err := appInstance.ReportService.ListRuns(ctx)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No payroll runs found")
			return nil
		}

		fmt.Printf("%-36s  %-12s %9s %12s  %-16s\n", "ID", "Week", "Employees", "Total", "Created")
		fmt.Println("-----------------------------------------------------------------------------------------------")
		for _, r := range runs {
			fmt.Printf("%-36s  %-12s %9d %12s  %-16s\n",
				r.ID,
				r.WeekStart.Format(domain.DateLayout),
				r.EmployeeCount,
				r.Total.StringFixed(2),
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
			)
		}
		return nil
	},
}

var payrollShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show the timesheets of a payroll run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		summary, err := appInstance.ReportService.RunSummary(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (week commencing %s)\n\n", summary.Title, summary.WeekStart.Format(domain.DateLayout))
		fmt.Printf("%-28s %6s %8s %5s %12s\n", "Employee", "Hours", "Minutes", "Sick", "Labour Cost")
		fmt.Println("-------------------------------------------------------------------")
		for _, line := range summary.Lines {
			t := line.Timesheet
			fmt.Printf("%-28s %6d %8d %5d %12s\n",
				truncate(line.Employee, 28),
				t.Hours,
				t.Minutes,
				t.SickDays,
				t.LabourCost.StringFixed(2),
			)
		}
		fmt.Printf("\n%-50s %12s\n", "Total", summary.Total.StringFixed(2))
		return nil
	},
}

func init() {
	payrollCmd.AddCommand(payrollRunCmd)
	payrollCmd.AddCommand(payrollListCmd)
	payrollCmd.AddCommand(payrollShowCmd)

	payrollRunCmd.Flags().String("week", "today", "Any date in the week (YYYY-MM-DD, today, yesterday)")
	payrollRunCmd.Flags().String("input", "", "CSV file of employee_id, hours, minutes, sick_days (required)")
	payrollRunCmd.MarkFlagRequired("input")
}
