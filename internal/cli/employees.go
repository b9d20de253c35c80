package cli

import (
	"context"
	"fmt"

	"github.com/andy/labourcost/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "Manage employees",
	Long:  `List, add, and show employees, and switch on their deductions.`,
}

var employeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		employees, err := appInstance.EmployeeRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}

		if len(employees) == 0 {
			fmt.Println("No employees found")
			return nil
		}

		fmt.Printf("%-5s %-28s %-8s %12s %-6s %-12s %-20s\n", "ID", "Name", "Pay", "Rate", "Sick", "Started", "Deductions")
		fmt.Println("--------------------------------------------------------------------------------------------")

		for _, e := range employees {
			fmt.Printf("%-5d %-28s %-8s %12s %-6s %-12s %-20s\n",
				e.ID,
				truncate(e.FullName(), 28),
				e.PayFrequency(),
				e.RateOfPay().StringFixed(2),
				e.SickPayScheme(),
				e.EmploymentStartDate().Format(domain.DateLayout),
				e.Deduction(),
			)
		}

		fmt.Printf("\nTotal: %d employee(s)\n", len(employees))
		return nil
	},
}

var employeesAddCmd = &cobra.Command{
	Use:   "add [forename] [surname]",
	Short: "Add a new employee",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		startStr, _ := cmd.Flags().GetString("start")
		freqStr, _ := cmd.Flags().GetString("frequency")
		rateStr, _ := cmd.Flags().GetString("rate")
		schemeStr, _ := cmd.Flags().GetString("sick-pay")
		deductStr, _ := cmd.Flags().GetString("deductions")

		start, err := parseDate(startStr)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		freq, err := domain.ParsePayFrequency(freqStr)
		if err != nil {
			return err
		}
		rate, err := decimal.NewFromString(rateStr)
		if err != nil {
			return fmt.Errorf("invalid rate %q: %w", rateStr, err)
		}
		scheme, err := domain.ParseSickPayScheme(schemeStr)
		if err != nil {
			return err
		}
		deduction, err := domain.ParseDeduction(deductStr)
		if err != nil {
			return err
		}

		employee, err := domain.NewEmployee(args[0], args[1], start, freq, rate, scheme)
		if err != nil {
			return fmt.Errorf("invalid employee: %w", err)
		}
		employee.AddDeduction(deduction)

		if err := appInstance.EmployeeRepo.Create(ctx, employee); err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		fmt.Printf("✓ Employee created: %s (ID: %d)\n", employee.FullName(), employee.ID)
		fmt.Printf("  Basic weekly pay: %s\n", employee.BasicPayRate().StringFixed(2))
		return nil
	},
}

var employeesShowCmd = &cobra.Command{
	Use:   "show [id|name]",
	Short: "Show an employee and their recorded weeks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		employee, err := resolveEmployee(ctx, appInstance.EmployeeRepo, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (ID: %d)\n", employee.FullName(), employee.ID)
		fmt.Printf("  Started:      %s\n", employee.EmploymentStartDate().Format(domain.DateLayout))
		fmt.Printf("  Pay:          %s %s\n", employee.RateOfPay().StringFixed(2), employee.PayFrequency())
		fmt.Printf("  Basic rate:   %s\n", employee.BasicPayRate().StringFixed(2))
		fmt.Printf("  Sick pay:     %s\n", employee.SickPayScheme())
		fmt.Printf("  Deductions:   %s\n", employee.Deduction())

		timesheets, err := appInstance.TimesheetRepo.ListByEmployee(ctx, employee.ID)
		if err != nil {
			return fmt.Errorf("failed to list timesheets: %w", err)
		}
		if len(timesheets) == 0 {
			fmt.Println("\nNo recorded weeks")
			return nil
		}

		fmt.Printf("\n%-12s %6s %8s %5s %12s\n", "Week", "Hours", "Minutes", "Sick", "Labour Cost")
		fmt.Println("---------------------------------------------------")
		for _, t := range timesheets {
			fmt.Printf("%-12s %6d %8d %5d %12s\n",
				t.WeekStart.Format(domain.DateLayout),
				t.Hours,
				t.Minutes,
				t.SickDays,
				t.LabourCost.StringFixed(2),
			)
		}
		return nil
	},
}

var employeesDeductCmd = &cobra.Command{
	Use:   "deduct [id|name] [pension|bike_scheme]",
	Short: "Switch on a deduction for an employee",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		employee, err := resolveEmployee(ctx, appInstance.EmployeeRepo, args[0])
		if err != nil {
			return err
		}
		deduction, err := domain.ParseDeduction(args[1])
		if err != nil {
			return err
		}

		employee, err = appInstance.PayrollService.AddDeduction(ctx, employee.ID, deduction)
		if err != nil {
			return fmt.Errorf("failed to add deduction: %w", err)
		}

		fmt.Printf("✓ %s deductions: %s\n", employee.FullName(), employee.Deduction())
		return nil
	},
}

func init() {
	employeesCmd.AddCommand(employeesListCmd)
	employeesCmd.AddCommand(employeesAddCmd)
	employeesCmd.AddCommand(employeesShowCmd)
	employeesCmd.AddCommand(employeesDeductCmd)

	employeesAddCmd.Flags().String("start", "today", "Employment start date (YYYY-MM-DD)")
	employeesAddCmd.Flags().String("frequency", "", "Pay frequency: annual, weekly or hourly (required)")
	employeesAddCmd.MarkFlagRequired("frequency")
	employeesAddCmd.Flags().String("rate", "", "Rate of pay for the frequency (required)")
	employeesAddCmd.MarkFlagRequired("rate")
	employeesAddCmd.Flags().String("sick-pay", string(domain.SickPaySSP), "Sick pay scheme: ssp or cosp")
	employeesAddCmd.Flags().String("deductions", "", "Comma separated deductions: pension, bike_scheme")
}
