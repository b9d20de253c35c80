package service

import (
	"context"
	"errors"
	"time"

	"github.com/andy/labourcost/internal/domain"
	"github.com/andy/labourcost/internal/repository"
)

type mockEmployeeRepo struct {
	employees map[int64]*domain.Employee
	updated   *domain.Employee
}

func (m *mockEmployeeRepo) Create(ctx context.Context, employee *domain.Employee) error {
	employee.ID = int64(len(m.employees) + 1)
	m.employees[employee.ID] = employee
	return nil
}
func (m *mockEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, repository.ErrNotFound
}
func (m *mockEmployeeRepo) GetByName(ctx context.Context, fullName string) (*domain.Employee, error) {
	for _, e := range m.employees {
		if e.FullName() == fullName {
			return e, nil
		}
	}
	return nil, repository.ErrNotFound
}
func (m *mockEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	out := make([]*domain.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		out = append(out, e)
	}
	return out, nil
}
func (m *mockEmployeeRepo) UpdateDeductions(ctx context.Context, employee *domain.Employee) error {
	m.updated = employee
	return nil
}

type mockTimesheetRepo struct {
	created []*domain.Timesheet
}

func (m *mockTimesheetRepo) Create(ctx context.Context, t *domain.Timesheet) error {
	t.ID = int64(len(m.created) + 1)
	m.created = append(m.created, t)
	return nil
}
func (m *mockTimesheetRepo) ListByWeek(ctx context.Context, weekStart time.Time) ([]*domain.Timesheet, error) {
	out := make([]*domain.Timesheet, 0)
	for _, t := range m.created {
		if t.WeekStart.Equal(domain.StartOfWeek(weekStart)) {
			out = append(out, t)
		}
	}
	return out, nil
}
func (m *mockTimesheetRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]*domain.Timesheet, error) {
	return nil, nil
}
func (m *mockTimesheetRepo) ListByRun(ctx context.Context, runID string) ([]*domain.Timesheet, error) {
	out := make([]*domain.Timesheet, 0)
	for _, t := range m.created {
		if t.RunID != nil && *t.RunID == runID {
			out = append(out, t)
		}
	}
	return out, nil
}
func (m *mockTimesheetRepo) DeleteAll(ctx context.Context) error {
	m.created = nil
	return nil
}

type mockRunRepo struct {
	runs       map[string]*domain.PayrollRun
	timesheets *mockTimesheetRepo
	fail       bool
}

func (m *mockRunRepo) CreateWithTimesheets(ctx context.Context, run *domain.PayrollRun, timesheets []*domain.Timesheet) error {
	if m.fail {
		return errors.New("disk full")
	}
	m.runs[run.ID] = run
	for _, t := range timesheets {
		if err := m.timesheets.Create(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
func (m *mockRunRepo) GetByID(ctx context.Context, id string) (*domain.PayrollRun, error) {
	if r, ok := m.runs[id]; ok {
		return r, nil
	}
	return nil, repository.ErrNotFound
}
func (m *mockRunRepo) List(ctx context.Context) ([]*domain.PayrollRun, error) {
	out := make([]*domain.PayrollRun, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, r)
	}
	return out, nil
}
