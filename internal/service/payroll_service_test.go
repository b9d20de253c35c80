package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/andy/labourcost/internal/domain"
	"github.com/shopspring/decimal"
)

var testWeek = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

type fixture struct {
	employees  *mockEmployeeRepo
	timesheets *mockTimesheetRepo
	runs       *mockRunRepo
	payroll    PayrollService
	reports    ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	timesheets := &mockTimesheetRepo{}
	f := &fixture{
		employees:  &mockEmployeeRepo{employees: map[int64]*domain.Employee{}},
		timesheets: timesheets,
		runs:       &mockRunRepo{runs: map[string]*domain.PayrollRun{}, timesheets: timesheets},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.payroll = NewPayrollService(f.employees, f.timesheets, f.runs, logger)
	f.reports = NewReportService(f.employees, f.timesheets, f.runs)
	return f
}

func (f *fixture) addEmployee(t *testing.T, forename, surname string, start time.Time, freq domain.PayFrequency, rate string, scheme domain.SickPayScheme) *domain.Employee {
	t.Helper()
	e, err := domain.NewEmployee(forename, surname, start, freq, decimal.RequireFromString(rate), scheme)
	if err != nil {
		t.Fatalf("new employee: %v", err)
	}
	if err := f.employees.Create(context.Background(), e); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return e
}

func TestCalculate(t *testing.T) {
	f := newFixture(t)
	e := f.addEmployee(t, "Bruce", "Wayne", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), domain.PayFrequencyHourly, "9", domain.SickPayCOSP)

	// a Thursday is normalised to its Monday
	cost, err := f.payroll.Calculate(context.Background(), WeekInput{
		EmployeeID: e.ID, WeekStart: testWeek.AddDate(0, 0, 3), Hours: 24, SickDays: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cost.WeekStart.Equal(testWeek) {
		t.Fatalf("expected week start %v, got %v", testWeek, cost.WeekStart)
	}
	if cost.Total.StringFixed(2) != "305.97" {
		t.Fatalf("expected 305.97, got %s", cost.Total.StringFixed(2))
	}
}

func TestCalculateUnknownEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.payroll.Calculate(context.Background(), WeekInput{EmployeeID: 42, WeekStart: testWeek})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestRecord(t *testing.T) {
	f := newFixture(t)
	e := f.addEmployee(t, "Clark", "Kent", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), domain.PayFrequencyWeekly, "480", domain.SickPaySSP)

	ts, err := f.payroll.Record(context.Background(), WeekInput{EmployeeID: e.ID, WeekStart: testWeek, Hours: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.timesheets.created) != 1 {
		t.Fatalf("expected timesheet to be stored")
	}
	if ts.RunID != nil {
		t.Fatalf("standalone timesheet should not belong to a run")
	}
	if ts.LabourCost.StringFixed(2) != "602.49" {
		t.Fatalf("expected 602.49, got %s", ts.LabourCost.StringFixed(2))
	}
}

func TestRecordRejectsNegativeInput(t *testing.T) {
	f := newFixture(t)
	e := f.addEmployee(t, "Clark", "Kent", testWeek, domain.PayFrequencyWeekly, "480", domain.SickPaySSP)

	_, err := f.payroll.Record(context.Background(), WeekInput{EmployeeID: e.ID, WeekStart: testWeek, Minutes: -5})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if len(f.timesheets.created) != 0 {
		t.Fatalf("nothing should be stored for invalid input")
	}
}

func TestRunWeek(t *testing.T) {
	f := newFixture(t)
	eric := f.addEmployee(t, "Eric", "Wimp", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), domain.PayFrequencyAnnual, "26000", domain.SickPayCOSP)
	wade := f.addEmployee(t, "Wade", "Wilson", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), domain.PayFrequencyHourly, "8", domain.SickPaySSP)
	if _, err := f.payroll.AddDeduction(context.Background(), eric.ID, domain.DeductionPension|domain.DeductionBikeScheme); err != nil {
		t.Fatalf("add deduction: %v", err)
	}

	run, timesheets, err := f.payroll.RunWeek(context.Background(), testWeek.AddDate(0, 0, 2), []WeekInput{
		{EmployeeID: eric.ID, Hours: 40, SickDays: 7},
		{EmployeeID: wade.ID, Hours: 40},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.EmployeeCount != 2 || len(timesheets) != 2 {
		t.Fatalf("expected 2 timesheets, got %d", run.EmployeeCount)
	}
	if !run.WeekStart.Equal(testWeek) {
		t.Fatalf("expected run week %v, got %v", testWeek, run.WeekStart)
	}
	// 518.72 + 396.28
	if run.Total.StringFixed(2) != "915.00" {
		t.Fatalf("expected total 915.00, got %s", run.Total.StringFixed(2))
	}
	for _, ts := range timesheets {
		if ts.RunID == nil || *ts.RunID != run.ID {
			t.Fatalf("timesheet not linked to run")
		}
	}

	summary, err := f.reports.RunSummary(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("run summary: %v", err)
	}
	if len(summary.Lines) != 2 || summary.Lines[0].Employee != "Eric Wimp" {
		t.Fatalf("unexpected summary lines %+v", summary.Lines)
	}
	if !summary.Total.Equal(run.Total) {
		t.Fatalf("summary total %s differs from run total %s", summary.Total, run.Total)
	}
}

func TestRunWeekWritesNothingOnFailure(t *testing.T) {
	f := newFixture(t)
	e := f.addEmployee(t, "Wade", "Wilson", testWeek, domain.PayFrequencyHourly, "8", domain.SickPaySSP)

	tests := []struct {
		inputs []WeekInput
		want   error
	}{
		{nil, ErrEmptyRun},
		{[]WeekInput{{EmployeeID: e.ID, Hours: 1}, {EmployeeID: 99}}, ErrEmployeeNotFound},
		{[]WeekInput{{EmployeeID: e.ID, Hours: 1}, {EmployeeID: e.ID, Hours: 2}}, ErrDuplicateInput},
		{[]WeekInput{{EmployeeID: e.ID, SickDays: -1}}, domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		_, _, err := f.payroll.RunWeek(context.Background(), testWeek, tt.inputs)
		if !errors.Is(err, tt.want) {
			t.Fatalf("expected %v, got %v", tt.want, err)
		}
	}
	if len(f.runs.runs) != 0 || len(f.timesheets.created) != 0 {
		t.Fatalf("failed runs must not write anything")
	}
}

func TestRunWeekStorageFailure(t *testing.T) {
	f := newFixture(t)
	e := f.addEmployee(t, "Wade", "Wilson", testWeek, domain.PayFrequencyHourly, "8", domain.SickPaySSP)
	f.runs.fail = true

	if _, _, err := f.payroll.RunWeek(context.Background(), testWeek, []WeekInput{{EmployeeID: e.ID, Hours: 1}}); err == nil {
		t.Fatalf("expected storage error")
	}
}

func TestAddDeduction(t *testing.T) {
	f := newFixture(t)
	e := f.addEmployee(t, "Peter", "Parker", testWeek, domain.PayFrequencyAnnual, "25397", domain.SickPaySSP)

	if _, err := f.payroll.AddDeduction(context.Background(), e.ID, domain.DeductionPension); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.employees.updated == nil || !f.employees.updated.Deduction().Has(domain.DeductionPension) {
		t.Fatalf("expected deductions to be saved")
	}

	// adding it again does not write
	f.employees.updated = nil
	if _, err := f.payroll.AddDeduction(context.Background(), e.ID, domain.DeductionPension); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.employees.updated != nil {
		t.Fatalf("repeat deduction should not be saved again")
	}
}

func TestWeekSummary(t *testing.T) {
	f := newFixture(t)
	e := f.addEmployee(t, "Clark", "Kent", testWeek, domain.PayFrequencyWeekly, "480", domain.SickPaySSP)

	for _, day := range []int{0, 4} {
		if _, err := f.payroll.Record(context.Background(), WeekInput{EmployeeID: e.ID, WeekStart: testWeek.AddDate(0, 0, day)}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	summary, err := f.reports.WeekSummary(context.Background(), testWeek.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(summary.Lines))
	}
	if summary.Total.StringFixed(2) != "1204.98" {
		t.Fatalf("expected 1204.98, got %s", summary.Total.StringFixed(2))
	}
}

func TestRunSummaryUnknownRun(t *testing.T) {
	f := newFixture(t)
	if _, err := f.reports.RunSummary(context.Background(), "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}
