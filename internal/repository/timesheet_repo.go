package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andy/labourcost/internal/db"
	"github.com/andy/labourcost/internal/domain"
)

// TimesheetRepo is a SQLite implementation of TimesheetRepository
type TimesheetRepo struct {
	db *db.DB
}

// NewTimesheetRepo creates a new TimesheetRepo
func NewTimesheetRepo(database *db.DB) *TimesheetRepo {
	return &TimesheetRepo{db: database}
}

const timesheetColumns = `id, employee_id, run_id, week_start, hours, minutes, sick_days, labour_cost, created_at`

const insertTimesheet = `
	INSERT INTO timesheets (employee_id, run_id, week_start, hours, minutes, sick_days, labour_cost, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTimesheetRow(ctx context.Context, ex execer, t *domain.Timesheet) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid timesheet: %w", err)
	}

	var runID any
	if t.RunID != nil {
		runID = *t.RunID
	}

	result, err := ex.ExecContext(ctx, insertTimesheet,
		t.EmployeeID,
		runID,
		formatDate(t.WeekStart),
		t.Hours,
		t.Minutes,
		t.SickDays,
		t.LabourCost.StringFixed(2),
		t.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create timesheet: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get timesheet ID: %w", err)
	}
	t.ID = id
	return nil
}

// Create inserts a timesheet recorded outside a payroll run
func (r *TimesheetRepo) Create(ctx context.Context, timesheet *domain.Timesheet) error {
	return insertTimesheetRow(ctx, r.db, timesheet)
}

// ListByWeek returns all timesheets for the week starting on weekStart
func (r *TimesheetRepo) ListByWeek(ctx context.Context, weekStart time.Time) ([]*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE week_start = ? ORDER BY employee_id, id`
	return r.list(ctx, query, formatDate(domain.StartOfWeek(weekStart)))
}

// ListByEmployee returns an employee's timesheets, most recent week first
func (r *TimesheetRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE employee_id = ? ORDER BY week_start DESC, id DESC`
	return r.list(ctx, query, employeeID)
}

// ListByRun returns the timesheets written by one payroll run
func (r *TimesheetRepo) ListByRun(ctx context.Context, runID string) ([]*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE run_id = ? ORDER BY employee_id`
	return r.list(ctx, query, runID)
}

// DeleteAll removes every timesheet and payroll run
func (r *TimesheetRepo) DeleteAll(ctx context.Context) error {
	// Order matters due to foreign keys
	for _, table := range []string{"timesheets", "payroll_runs"} {
		if _, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (r *TimesheetRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Timesheet, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	timesheets := make([]*domain.Timesheet, 0)
	for rows.Next() {
		t := &domain.Timesheet{}
		var runID sql.NullString
		var weekStart, cost, createdAt string

		err := rows.Scan(
			&t.ID,
			&t.EmployeeID,
			&runID,
			&weekStart,
			&t.Hours,
			&t.Minutes,
			&t.SickDays,
			&cost,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}

		if runID.Valid {
			id := runID.String
			t.RunID = &id
		}
		if t.WeekStart, err = parseDate(weekStart); err != nil {
			return nil, fmt.Errorf("failed to parse week_start: %w", err)
		}
		if t.LabourCost, err = parseMoney(cost); err != nil {
			return nil, fmt.Errorf("failed to parse labour_cost: %w", err)
		}
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		timesheets = append(timesheets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timesheets: %w", err)
	}

	return timesheets, nil
}
