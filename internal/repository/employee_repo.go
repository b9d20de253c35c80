package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/andy/labourcost/internal/db"
	"github.com/andy/labourcost/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

// EmployeeRepo is a SQLite implementation of EmployeeRepository
type EmployeeRepo struct {
	db *db.DB
}

// NewEmployeeRepo creates a new EmployeeRepo
func NewEmployeeRepo(database *db.DB) *EmployeeRepo {
	return &EmployeeRepo{db: database}
}

const employeeColumns = `id, forename, surname, employment_start_date, pay_frequency,
	rate_of_pay, sick_pay_scheme, deductions, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEmployee rebuilds the employee through the domain factory so a row can
// never bypass its validation
func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var (
		id                            int64
		forename, surname             string
		startDate, freq, rate, scheme string
		deductions                    int
		createdAt                     string
	)

	if err := row.Scan(&id, &forename, &surname, &startDate, &freq, &rate, &scheme, &deductions, &createdAt); err != nil {
		return nil, err
	}

	start, err := parseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse employment_start_date: %w", err)
	}
	rateOfPay, err := parseMoney(rate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate_of_pay: %w", err)
	}

	employee, err := domain.NewEmployee(forename, surname, start, domain.PayFrequency(freq), rateOfPay, domain.SickPayScheme(scheme))
	if err != nil {
		return nil, fmt.Errorf("invalid employee %d: %w", id, err)
	}
	employee.AddDeduction(domain.Deduction(deductions))
	employee.ID = id

	if employee.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return employee, nil
}

// Create inserts a new employee into the database
func (r *EmployeeRepo) Create(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (forename, surname, employment_start_date, pay_frequency,
			rate_of_pay, sick_pay_scheme, deductions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		employee.Forename(),
		employee.Surname(),
		formatDate(employee.EmploymentStartDate()),
		string(employee.PayFrequency()),
		employee.RateOfPay().String(),
		string(employee.SickPayScheme()),
		int(employee.Deduction()),
		employee.CreatedAt.Format(timeLayout),
		formatTime(),
	)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get employee ID: %w", err)
	}

	employee.ID = id
	return nil
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`

	employee, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee %d %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

// GetByName retrieves an employee by "forename surname", ignoring case
func (r *EmployeeRepo) GetByName(ctx context.Context, fullName string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE lower(forename || ' ' || surname) = lower(?)`

	employee, err := scanEmployee(r.db.QueryRowContext(ctx, query, strings.TrimSpace(fullName)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee %q %w", fullName, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

// List retrieves all employees ordered by surname
func (r *EmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY surname, forename`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// UpdateDeductions stores the employee's current deduction flags
func (r *EmployeeRepo) UpdateDeductions(ctx context.Context, employee *domain.Employee) error {
	query := `UPDATE employees SET deductions = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, int(employee.Deduction()), formatTime(), employee.ID)
	if err != nil {
		return fmt.Errorf("failed to update deductions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("employee %d %w", employee.ID, ErrNotFound)
	}

	return nil
}
