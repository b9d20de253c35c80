package repository

import (
	"context"
	"time"

	"github.com/andy/labourcost/internal/domain"
)

// EmployeeRepository manages employee persistence
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByName(ctx context.Context, fullName string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	UpdateDeductions(ctx context.Context, employee *domain.Employee) error
}

// TimesheetRepository manages recorded weeks
type TimesheetRepository interface {
	Create(ctx context.Context, timesheet *domain.Timesheet) error
	ListByWeek(ctx context.Context, weekStart time.Time) ([]*domain.Timesheet, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]*domain.Timesheet, error)
	ListByRun(ctx context.Context, runID string) ([]*domain.Timesheet, error)
	DeleteAll(ctx context.Context) error
}

// PayrollRunRepository manages batch runs. CreateWithTimesheets writes the run
// and all of its timesheets atomically.
type PayrollRunRepository interface {
	CreateWithTimesheets(ctx context.Context, run *domain.PayrollRun, timesheets []*domain.Timesheet) error
	GetByID(ctx context.Context, id string) (*domain.PayrollRun, error)
	List(ctx context.Context) ([]*domain.PayrollRun, error)
}
