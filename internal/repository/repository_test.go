package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/labourcost/internal/db"
	"github.com/andy/labourcost/internal/domain"
	"github.com/shopspring/decimal"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"), "test-key")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := database.RunMigrations(); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return database
}

func createEmployee(t *testing.T, repo *EmployeeRepo, forename, surname string) *domain.Employee {
	t.Helper()
	e, err := domain.NewEmployee(forename, surname, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		domain.PayFrequencyAnnual, decimal.NewFromInt(26000), domain.SickPayCOSP)
	if err != nil {
		t.Fatalf("new employee: %v", err)
	}
	if err := repo.Create(context.Background(), e); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return e
}

func TestEmployeeRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepo(openTestDB(t))

	e := createEmployee(t, repo, "Eric", "Wimp")
	if e.ID == 0 {
		t.Fatalf("expected ID to be assigned")
	}

	e.AddDeduction(domain.DeductionPension)
	e.AddDeduction(domain.DeductionBikeScheme)
	if err := repo.UpdateDeductions(ctx, e); err != nil {
		t.Fatalf("update deductions: %v", err)
	}

	loaded, err := repo.GetByName(ctx, "eric wimp")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if loaded.ID != e.ID {
		t.Fatalf("expected ID %d, got %d", e.ID, loaded.ID)
	}
	if !loaded.BasicPayRate().Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected basic pay 500, got %s", loaded.BasicPayRate())
	}
	if loaded.Deduction() != domain.DeductionPension|domain.DeductionBikeScheme {
		t.Fatalf("unexpected deductions %v", loaded.Deduction())
	}
	if !loaded.EmploymentStartDate().Equal(e.EmploymentStartDate()) {
		t.Fatalf("start date changed: %v", loaded.EmploymentStartDate())
	}

	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	createEmployee(t, repo, "Clark", "Kent")
	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].Surname() != "Kent" {
		t.Fatalf("expected 2 employees ordered by surname, got %d", len(all))
	}
}

func TestPayrollRunAndTimesheetRepos(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	employees := NewEmployeeRepo(database)
	timesheets := NewTimesheetRepo(database)
	runs := NewPayrollRunRepo(database)

	e := createEmployee(t, employees, "Eric", "Wimp")
	week := time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)

	cost, err := e.CalculateLabourCost(week, 40, 0, 0)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	run := domain.NewPayrollRun(week)
	ts := domain.NewTimesheet(e.ID, 40, 0, 0, cost)
	run.Add(ts)
	if err := runs.CreateWithTimesheets(ctx, run, []*domain.Timesheet{ts}); err != nil {
		t.Fatalf("create run: %v", err)
	}

	loadedRun, err := runs.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !loadedRun.Total.Equal(cost.Total) || loadedRun.EmployeeCount != 1 {
		t.Fatalf("unexpected run %+v", loadedRun)
	}

	byRun, err := timesheets.ListByRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("list by run: %v", err)
	}
	if len(byRun) != 1 || byRun[0].RunID == nil || *byRun[0].RunID != run.ID {
		t.Fatalf("expected timesheet linked to run")
	}

	// a standalone timesheet in the same week
	extra := domain.NewTimesheet(e.ID, 10, 0, 1, cost)
	if err := timesheets.Create(ctx, extra); err != nil {
		t.Fatalf("create timesheet: %v", err)
	}

	byWeek, err := timesheets.ListByWeek(ctx, week)
	if err != nil {
		t.Fatalf("list by week: %v", err)
	}
	if len(byWeek) != 2 {
		t.Fatalf("expected 2 timesheets in week, got %d", len(byWeek))
	}
	if got := byWeek[0].WeekStart.Format(domain.DateLayout); got != "2026-10-19" {
		t.Fatalf("expected week to start on Monday, got %s", got)
	}

	if err := timesheets.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	remaining, err := runs.List(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no runs after reset, got %d", len(remaining))
	}
}
