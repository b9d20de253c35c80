package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/andy/labourcost/internal/domain"
	"github.com/andy/labourcost/internal/service"
	"github.com/spf13/cobra"
)

var salaryCmd = &cobra.Command{
	Use:   "salary [id|name]",
	Short: "Calculate an employee's labour cost for a week",
	Long: `Calculate the weekly labour cost for one employee.

Examples:
  labourcost salary "Eric Wimp" --hours 40 --sick-days 2
  labourcost salary 3 --week 2026-10-19 --hours 37 --minutes 30 --record`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		employee, err := resolveEmployee(ctx, appInstance.EmployeeRepo, args[0])
		if err != nil {
			return err
		}

		input, err := weekInputFromFlags(cmd)
		if err != nil {
			return err
		}
		input.EmployeeID = employee.ID

		record, _ := cmd.Flags().GetBool("record")
		breakdown, _ := cmd.Flags().GetBool("breakdown")

		cost, err := appInstance.PayrollService.Calculate(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to calculate salary: %w", err)
		}

		if record {
			timesheet, err := appInstance.PayrollService.Record(ctx, input)
			if err != nil {
				return fmt.Errorf("failed to record week: %w", err)
			}
			fmt.Printf("✓ Week recorded (timesheet ID: %d)\n", timesheet.ID)
		}

		fmt.Printf("%s, week commencing %s\n", employee.FullName(), cost.WeekStart.Format(domain.DateLayout))
		if breakdown {
			printBreakdown(cost)
		}
		fmt.Printf("Labour cost: %s\n", cost.Total.StringFixed(2))
		return nil
	},
}

func weekInputFromFlags(cmd *cobra.Command) (service.WeekInput, error) {
	weekStr, _ := cmd.Flags().GetString("week")
	hours, _ := cmd.Flags().GetInt("hours")
	minutes, _ := cmd.Flags().GetInt("minutes")
	sickDays, _ := cmd.Flags().GetInt("sick-days")

	week, err := parseDate(weekStr)
	if err != nil {
		return service.WeekInput{}, fmt.Errorf("invalid week: %w", err)
	}

	return service.WeekInput{
		WeekStart: domain.StartOfWeek(week),
		Hours:     hours,
		Minutes:   minutes,
		SickDays:  sickDays,
	}, nil
}

func printBreakdown(cost *domain.LabourCost) {
	rows := []struct {
		label string
		value string
	}{
		{"Weekly pay", cost.WeeklyPay.StringFixed(2)},
		{"Sick pay", cost.SickPay.StringFixed(2)},
		{"Deductions", cost.Deductions.Neg().StringFixed(2)},
		{"Total weekly pay", cost.TotalWeeklyPay.StringFixed(2)},
		{"Employer NI", cost.NationalInsurance.StringFixed(2)},
		{"Holiday accrual", cost.HolidayAccrual.StringFixed(2)},
	}
	for _, r := range rows {
		fmt.Printf("  %-18s %10s\n", r.label, r.value)
	}
}

func addWeekFlags(cmd *cobra.Command) {
	cmd.Flags().String("week", "today", "Any date in the week (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().Int("hours", 0, "Whole hours worked")
	cmd.Flags().Int("minutes", 0, "Additional minutes worked")
	cmd.Flags().Int("sick-days", 0, "Days off sick")
}

func init() {
	addWeekFlags(salaryCmd)
	salaryCmd.Flags().Bool("record", false, "Store the result as a timesheet")
	salaryCmd.Flags().Bool("breakdown", false, "Show every step of the calculation")
}

// weekLabel formats the Monday of t's week
func weekLabel(t time.Time) string {
	return domain.StartOfWeek(t).Format(domain.DateLayout)
}
