package cli

import (
	"fmt"
	"time"

	"github.com/andy/labourcost/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// demoCase is a sample employee and the week they worked
type demoCase struct {
	employee *domain.Employee
	hours    int
	minutes  int
	sickDays int
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// demoEmployees builds the sample payroll: one employee per pay frequency
// and sick pay scheme combination worth showing
func demoEmployees() ([]demoCase, error) {
	specs := []struct {
		forename, surname string
		start             time.Time
		freq              domain.PayFrequency
		rate              int64
		scheme            domain.SickPayScheme
		deduction         domain.Deduction
		hours, sickDays   int
	}{
		{"Eric", "Wimp", date(2020, 1, 1), domain.PayFrequencyAnnual, 26000, domain.SickPayCOSP, domain.DeductionPension | domain.DeductionBikeScheme, 40, 7},
		{"Peter", "Parker", date(2025, 1, 1), domain.PayFrequencyAnnual, 25397, domain.SickPaySSP, domain.DeductionNone, 24, 2},
		{"Clark", "Kent", date(2025, 6, 1), domain.PayFrequencyWeekly, 480, domain.SickPaySSP, domain.DeductionNone, 40, 0},
		{"Bruce", "Wayne", date(2020, 1, 1), domain.PayFrequencyHourly, 9, domain.SickPayCOSP, domain.DeductionNone, 24, 2},
		{"Wade", "Wilson", date(2024, 1, 1), domain.PayFrequencyHourly, 8, domain.SickPaySSP, domain.DeductionNone, 40, 0},
	}

	cases := make([]demoCase, 0, len(specs))
	for _, s := range specs {
		e, err := domain.NewEmployee(s.forename, s.surname, s.start, s.freq, decimal.NewFromInt(s.rate), s.scheme)
		if err != nil {
			return nil, err
		}
		e.AddDeduction(s.deduction)
		cases = append(cases, demoCase{employee: e, hours: s.hours, sickDays: s.sickDays})
	}
	return cases, nil
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Calculate a week for five sample employees without touching the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		weekStr, _ := cmd.Flags().GetString("week")
		breakdown, _ := cmd.Flags().GetBool("breakdown")

		week, err := parseDate(weekStr)
		if err != nil {
			return fmt.Errorf("invalid week: %w", err)
		}
		week = domain.StartOfWeek(week)

		cases, err := demoEmployees()
		if err != nil {
			return err
		}

		fmt.Printf("Week commencing %s\n\n", week.Format(domain.DateLayout))
		total := decimal.Zero
		for _, c := range cases {
			cost, err := c.employee.CalculateLabourCost(week, c.hours, c.minutes, c.sickDays)
			if err != nil {
				return fmt.Errorf("%s: %w", c.employee.FullName(), err)
			}
			total = total.Add(cost.Total)

			fmt.Printf("%-16s %-7s %-5s %3dh %2d sick  %10s\n",
				c.employee.FullName(),
				c.employee.PayFrequency(),
				c.employee.SickPayScheme(),
				c.hours,
				c.sickDays,
				cost.Total.StringFixed(2),
			)
			if breakdown {
				printBreakdown(cost)
				fmt.Println()
			}
		}
		fmt.Printf("\n%-42s %10s\n", "Total", total.StringFixed(2))
		return nil
	},
}

func init() {
	demoCmd.Flags().String("week", "today", "Any date in the week (YYYY-MM-DD, today, yesterday)")
	demoCmd.Flags().Bool("breakdown", false, "Show every step of each calculation")
}
