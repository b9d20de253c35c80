package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func assertMoney(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("expected %s, got %s", want, got.StringFixed(2))
	}
}

// Annual COSP employee with less than five years service falls back to SSP
func TestCalculateSalaryAnnualCOSPLessThan5Years(t *testing.T) {
	e := newTestEmployee(t, time.Now().AddDate(0, -3, 0), PayFrequencyAnnual, "20000", SickPayCOSP)

	got, err := e.CalculateSalary(time.Now(), 35, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertMoney(t, got, "402.28")
}

func TestCalculateSalaryAnnualCOSP6Years(t *testing.T) {
	for _, sickDays := range []int{0, 1, 5} {
		e := newTestEmployee(t, time.Now().AddDate(-6, 0, 0), PayFrequencyAnnual, "20000", SickPayCOSP)

		got, err := e.CalculateSalary(time.Now(), 35, 0, sickDays)
		if err != nil {
			t.Fatalf("sick days %d: unexpected error: %v", sickDays, err)
		}
		assertMoney(t, got, "479.56")
	}
}

func TestCalculateSalaryAnnualCOSPDeductions(t *testing.T) {
	tests := []struct {
		deductions []Deduction
		want       string
	}{
		{[]Deduction{DeductionBikeScheme}, "382.90"},
		{[]Deduction{DeductionBikeScheme, DeductionPension}, "372.98"},
	}

	for _, tt := range tests {
		e := newTestEmployee(t, time.Now().AddDate(-6, 0, 0), PayFrequencyAnnual, "20000", SickPayCOSP)
		for _, d := range tt.deductions {
			e.AddDeduction(d)
		}

		got, err := e.CalculateSalary(time.Now(), 35, 0, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertMoney(t, got, tt.want)
	}
}

func TestCalculateSalaryHourly(t *testing.T) {
	tests := []struct {
		sickDays int
		want     string
	}{
		{1, "569.58"},
		{7, "700.76"},
		{8, "700.76"},
	}

	for _, tt := range tests {
		e := newTestEmployee(t, time.Now().AddDate(-1, 0, 0), PayFrequencyHourly, "17.50", SickPaySSP)

		got, err := e.CalculateSalary(time.Now(), 25, 0, tt.sickDays)
		if err != nil {
			t.Fatalf("sick days %d: unexpected error: %v", tt.sickDays, err)
		}
		assertMoney(t, got, tt.want)
	}
}

func TestCalculateSalaryHourlyMinutes(t *testing.T) {
	e := newTestEmployee(t, time.Now(), PayFrequencyHourly, "12", SickPaySSP)

	lc, err := e.CalculateLabourCost(time.Now(), 10, 30, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertMoney(t, lc.WeeklyPay, "126")
	// 126 is above the NI threshold: (126 - 96) * 0.15 = 4.5
	assertMoney(t, lc.NationalInsurance, "4.5")
	// (126 + 4.5) * 1.1207 = 146.25135
	assertMoney(t, lc.Total, "146.25")
}

func TestCalculateSalaryInvalidArguments(t *testing.T) {
	tests := []struct {
		hours, minutes, sickDays int
		param                    string
	}{
		{-1, 1, 1, "hours"},
		{1, -1, 1, "minutes"},
		{1, 1, -1, "sickDays"},
		{-1, -1, -1, "hours"},
		{0, -1, -1, "minutes"},
	}

	e := newTestEmployee(t, time.Now().AddDate(-1, 0, 0), PayFrequencyHourly, "17.50", SickPaySSP)
	for _, tt := range tests {
		_, err := e.CalculateSalary(time.Now(), tt.hours, tt.minutes, tt.sickDays)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("(%d, %d, %d): expected ErrInvalidArgument, got %v", tt.hours, tt.minutes, tt.sickDays, err)
		}
		var argErr *ArgumentError
		if !errors.As(err, &argErr) || argErr.Param != tt.param {
			t.Fatalf("(%d, %d, %d): expected error naming %s, got %v", tt.hours, tt.minutes, tt.sickDays, tt.param, err)
		}
	}
}

func TestCalculateSalaryBelowNIThreshold(t *testing.T) {
	e := newTestEmployee(t, time.Now(), PayFrequencyWeekly, "80", SickPaySSP)

	lc, err := e.CalculateLabourCost(time.Now(), 0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !lc.NationalInsurance.IsZero() {
		t.Fatalf("expected no NI below threshold, got %s", lc.NationalInsurance)
	}
	// 80 * 1.1207 = 89.656
	assertMoney(t, lc.Total, "89.66")
}

func TestCalculateSalaryWeeklyFullWeekSick(t *testing.T) {
	e := newTestEmployee(t, time.Now(), PayFrequencyWeekly, "480", SickPaySSP)

	lc, err := e.CalculateLabourCost(time.Now(), 40, 0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !lc.WeeklyPay.IsZero() {
		t.Fatalf("expected no weekly pay after 5 sick days, got %s", lc.WeeklyPay)
	}
	// 118.75 / 7 * 5
	assertMoney(t, lc.SickPay.Round(4), "84.8214")
}

func TestCalculateSalaryNeverIncreasesWithSickDays(t *testing.T) {
	e := newTestEmployee(t, time.Now(), PayFrequencyAnnual, "20000", SickPaySSP)
	week := time.Now()

	prevTotal, err := e.CalculateSalary(week, 35, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for d := 1; d <= WorkingDaysPerWeek; d++ {
		total, err := e.CalculateSalary(week, 35, 0, d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total.GreaterThan(prevTotal) {
			t.Fatalf("salary increased from %s to %s at %d sick days", prevTotal, total, d)
		}
		prevTotal = total
	}

	prevBase := e.calculateWeeklyPay(35, 0, 0)
	for d := 1; d <= SSPMaxDays+1; d++ {
		base := e.calculateWeeklyPay(35, 0, d)
		if base.GreaterThan(prevBase) {
			t.Fatalf("base pay increased at %d sick days", d)
		}
		prevBase = base
	}
}

func TestCOSPTenureUsesCalendarDates(t *testing.T) {
	week := time.Date(2026, 10, 19, 0, 1, 0, 0, time.UTC)
	fiveYears := time.Date(2021, 10, 19, 23, 59, 0, 0, time.UTC)

	// exactly five years is not enough
	e := newTestEmployee(t, fiveYears, PayFrequencyWeekly, "500", SickPayCOSP)
	if e.qualifiesForCOSP(DateOf(week)) {
		t.Fatalf("employee starting exactly five years before should not qualify")
	}

	e = newTestEmployee(t, fiveYears.AddDate(0, 0, -1), PayFrequencyWeekly, "500", SickPayCOSP)
	lc, err := e.CalculateLabourCost(week, 0, 0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertMoney(t, lc.SickPay, "500")
}

func TestCOSPExcludesHourly(t *testing.T) {
	e := newTestEmployee(t, time.Now().AddDate(-10, 0, 0), PayFrequencyHourly, "9", SickPayCOSP)

	lc, err := e.CalculateLabourCost(time.Now(), 24, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// SSP for 2 days rather than COSP
	assertMoney(t, lc.SickPay.Round(4), "33.9286")
	assertMoney(t, lc.Total, "305.97")
}
