package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/labourcost/internal/config"
	"github.com/andy/labourcost/internal/domain"
	"github.com/andy/labourcost/internal/service"
	"github.com/shopspring/decimal"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "data", "test.db")
	cfg.Report.OutputDir = filepath.Join(dir, "reports")
	cfg.Log.Level = "error"

	a, err := NewWithPassword(cfg, "test-password")
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestAppRunWeekEndToEnd(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	week := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	peter, err := domain.NewEmployee("Peter", "Parker", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		domain.PayFrequencyAnnual, decimal.NewFromInt(25397), domain.SickPaySSP)
	if err != nil {
		t.Fatalf("new employee: %v", err)
	}
	if err := a.EmployeeRepo.Create(ctx, peter); err != nil {
		t.Fatalf("create employee: %v", err)
	}

	run, _, err := a.PayrollService.RunWeek(ctx, week, []service.WeekInput{
		{EmployeeID: peter.ID, Hours: 24, SickDays: 2},
	})
	if err != nil {
		t.Fatalf("run week: %v", err)
	}
	if run.Total.StringFixed(2) != "405.26" {
		t.Fatalf("expected 405.26, got %s", run.Total.StringFixed(2))
	}

	summary, err := a.ReportService.WeekSummary(ctx, week)
	if err != nil {
		t.Fatalf("week summary: %v", err)
	}
	if len(summary.Lines) != 1 || summary.Lines[0].Employee != "Peter Parker" {
		t.Fatalf("unexpected summary %+v", summary.Lines)
	}
	if !summary.Total.Equal(run.Total) {
		t.Fatalf("expected total %s, got %s", run.Total, summary.Total)
	}
}

func TestAppReopenWithSamePassword(t *testing.T) {
	a := newTestApp(t)
	cfg := a.Config
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewWithPassword(cfg, "test-password")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.EmployeeRepo.List(context.Background()); err != nil {
		t.Fatalf("list after reopen: %v", err)
	}
}
