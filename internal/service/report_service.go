package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andy/labourcost/internal/domain"
	"github.com/andy/labourcost/internal/repository"
	"github.com/shopspring/decimal"
)

// SummaryLine is one employee's recorded week
type SummaryLine struct {
	Timesheet *domain.Timesheet
	Employee  string
}

// LabourSummary totals the recorded labour cost of a week or run
type LabourSummary struct {
	Title     string
	WeekStart time.Time
	RunID     string // empty for week summaries
	Lines     []SummaryLine
	Total     decimal.Decimal
}

// ReportService aggregates recorded timesheets
type ReportService interface {
	WeekSummary(ctx context.Context, weekStart time.Time) (*LabourSummary, error)
	RunSummary(ctx context.Context, runID string) (*LabourSummary, error)
	ListRuns(ctx context.Context) ([]*domain.PayrollRun, error)
}

type reportService struct {
	employeeRepo  repository.EmployeeRepository
	timesheetRepo repository.TimesheetRepository
	runRepo       repository.PayrollRunRepository
}

// NewReportService creates a new report service
func NewReportService(
	employeeRepo repository.EmployeeRepository,
	timesheetRepo repository.TimesheetRepository,
	runRepo repository.PayrollRunRepository,
) ReportService {
	return &reportService{
		employeeRepo:  employeeRepo,
		timesheetRepo: timesheetRepo,
		runRepo:       runRepo,
	}
}

func (s *reportService) WeekSummary(ctx context.Context, weekStart time.Time) (*LabourSummary, error) {
	weekStart = domain.StartOfWeek(weekStart)

	timesheets, err := s.timesheetRepo.ListByWeek(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	summary := &LabourSummary{
		Title:     fmt.Sprintf("Week commencing %s", weekStart.Format(domain.DateLayout)),
		WeekStart: weekStart,
	}
	if err := s.fill(ctx, summary, timesheets); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *reportService) RunSummary(ctx context.Context, runID string) (*LabourSummary, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	timesheets, err := s.timesheetRepo.ListByRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	summary := &LabourSummary{
		Title:     fmt.Sprintf("Payroll run %s", run.ID),
		WeekStart: run.WeekStart,
		RunID:     run.ID,
	}
	if err := s.fill(ctx, summary, timesheets); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *reportService) ListRuns(ctx context.Context) ([]*domain.PayrollRun, error) {
	return s.runRepo.List(ctx)
}

func (s *reportService) fill(ctx context.Context, summary *LabourSummary, timesheets []*domain.Timesheet) error {
	names := make(map[int64]string)
	summary.Total = decimal.Zero
	summary.Lines = make([]SummaryLine, 0, len(timesheets))

	for _, t := range timesheets {
		name, ok := names[t.EmployeeID]
		if !ok {
			employee, err := s.employeeRepo.GetByID(ctx, t.EmployeeID)
			switch {
			case err == nil && employee != nil:
				name = employee.FullName()
			case err == nil || errors.Is(err, repository.ErrNotFound):
				name = fmt.Sprintf("Employee #%d", t.EmployeeID)
			default:
				return err
			}
			names[t.EmployeeID] = name
		}

		summary.Lines = append(summary.Lines, SummaryLine{Timesheet: t, Employee: name})
		summary.Total = summary.Total.Add(t.LabourCost)
	}
	return nil
}
