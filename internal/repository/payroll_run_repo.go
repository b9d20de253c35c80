package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andy/labourcost/internal/db"
	"github.com/andy/labourcost/internal/domain"
)

// PayrollRunRepo is a SQLite implementation of PayrollRunRepository
type PayrollRunRepo struct {
	db *db.DB
}

// NewPayrollRunRepo creates a new PayrollRunRepo
func NewPayrollRunRepo(database *db.DB) *PayrollRunRepo {
	return &PayrollRunRepo{db: database}
}

// CreateWithTimesheets inserts the run and its timesheets in one transaction
func (r *PayrollRunRepo) CreateWithTimesheets(ctx context.Context, run *domain.PayrollRun, timesheets []*domain.Timesheet) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid payroll run: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO payroll_runs (id, week_start, employee_count, total, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		run.ID,
		formatDate(run.WeekStart),
		run.EmployeeCount,
		run.Total.StringFixed(2),
		run.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create payroll run: %w", err)
	}

	for _, t := range timesheets {
		if err := insertTimesheetRow(ctx, tx, t); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payroll run: %w", err)
	}
	return nil
}

// GetByID retrieves a payroll run by ID
func (r *PayrollRunRepo) GetByID(ctx context.Context, id string) (*domain.PayrollRun, error) {
	query := `SELECT id, week_start, employee_count, total, created_at FROM payroll_runs WHERE id = ?`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("payroll run %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return run, nil
}

// List retrieves all payroll runs, newest week first
func (r *PayrollRunRepo) List(ctx context.Context) ([]*domain.PayrollRun, error) {
	query := `SELECT id, week_start, employee_count, total, created_at FROM payroll_runs
		ORDER BY week_start DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.PayrollRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payroll runs: %w", err)
	}

	return runs, nil
}

func scanRun(row rowScanner) (*domain.PayrollRun, error) {
	run := &domain.PayrollRun{}
	var weekStart, total, createdAt string

	if err := row.Scan(&run.ID, &weekStart, &run.EmployeeCount, &total, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if run.WeekStart, err = parseDate(weekStart); err != nil {
		return nil, fmt.Errorf("failed to parse week_start: %w", err)
	}
	if run.Total, err = parseMoney(total); err != nil {
		return nil, fmt.Errorf("failed to parse total: %w", err)
	}
	if run.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return run, nil
}
