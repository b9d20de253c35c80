package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/andy/labourcost/internal/domain"
	"github.com/andy/labourcost/internal/repository"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrRunNotFound      = errors.New("payroll run not found")
	ErrEmptyRun         = errors.New("payroll run has no timesheets")
	ErrDuplicateInput   = errors.New("employee appears more than once in run")
)

// WeekInput is the time worked and sick days for one employee's week
type WeekInput struct {
	EmployeeID int64
	WeekStart  time.Time
	Hours      int
	Minutes    int
	SickDays   int
}

// PayrollService calculates and records weekly labour cost
type PayrollService interface {
	// Calculate returns the labour cost breakdown without storing anything
	Calculate(ctx context.Context, input WeekInput) (*domain.LabourCost, error)

	// Record calculates the labour cost and stores it as a timesheet
	Record(ctx context.Context, input WeekInput) (*domain.Timesheet, error)

	// RunWeek calculates every input for the week and stores them as one run.
	// Nothing is written unless every input calculates.
	RunWeek(ctx context.Context, weekStart time.Time, inputs []WeekInput) (*domain.PayrollRun, []*domain.Timesheet, error)

	// AddDeduction activates a deduction for a stored employee
	AddDeduction(ctx context.Context, employeeID int64, d domain.Deduction) (*domain.Employee, error)
}

type payrollService struct {
	employeeRepo  repository.EmployeeRepository
	timesheetRepo repository.TimesheetRepository
	runRepo       repository.PayrollRunRepository
	logger        *slog.Logger
}

// NewPayrollService creates a new payroll service
func NewPayrollService(
	employeeRepo repository.EmployeeRepository,
	timesheetRepo repository.TimesheetRepository,
	runRepo repository.PayrollRunRepository,
	logger *slog.Logger,
) PayrollService {
	if logger == nil {
		logger = slog.Default()
	}
	return &payrollService{
		employeeRepo:  employeeRepo,
		timesheetRepo: timesheetRepo,
		runRepo:       runRepo,
		logger:        logger,
	}
}

func (s *payrollService) getEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrEmployeeNotFound, id)
		}
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: %d", ErrEmployeeNotFound, id)
	}
	return employee, nil
}

func (s *payrollService) Calculate(ctx context.Context, input WeekInput) (*domain.LabourCost, error) {
	employee, err := s.getEmployee(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}

	return employee.CalculateLabourCost(domain.StartOfWeek(input.WeekStart), input.Hours, input.Minutes, input.SickDays)
}

func (s *payrollService) Record(ctx context.Context, input WeekInput) (*domain.Timesheet, error) {
	cost, err := s.Calculate(ctx, input)
	if err != nil {
		return nil, err
	}

	timesheet := domain.NewTimesheet(input.EmployeeID, input.Hours, input.Minutes, input.SickDays, cost)
	if err := s.timesheetRepo.Create(ctx, timesheet); err != nil {
		return nil, err
	}

	s.logger.Info("timesheet recorded",
		"employeeId", input.EmployeeID,
		"weekStart", timesheet.WeekStart.Format(domain.DateLayout),
		"labourCost", timesheet.LabourCost.StringFixed(2),
	)
	return timesheet, nil
}

func (s *payrollService) RunWeek(
	ctx context.Context,
	weekStart time.Time,
	inputs []WeekInput,
) (*domain.PayrollRun, []*domain.Timesheet, error) {
	if len(inputs) == 0 {
		return nil, nil, ErrEmptyRun
	}

	run := domain.NewPayrollRun(weekStart)
	seen := make(map[int64]bool, len(inputs))
	timesheets := make([]*domain.Timesheet, 0, len(inputs))

	for _, input := range inputs {
		if seen[input.EmployeeID] {
			return nil, nil, fmt.Errorf("%w: employee %d", ErrDuplicateInput, input.EmployeeID)
		}
		seen[input.EmployeeID] = true

		input.WeekStart = run.WeekStart
		cost, err := s.Calculate(ctx, input)
		if err != nil {
			return nil, nil, fmt.Errorf("employee %d: %w", input.EmployeeID, err)
		}

		timesheet := domain.NewTimesheet(input.EmployeeID, input.Hours, input.Minutes, input.SickDays, cost)
		run.Add(timesheet)
		timesheets = append(timesheets, timesheet)

		s.logger.Debug("labour cost calculated",
			"runId", run.ID,
			"employeeId", input.EmployeeID,
			"labourCost", cost.Total.StringFixed(2),
		)
	}

	if err := s.runRepo.CreateWithTimesheets(ctx, run, timesheets); err != nil {
		return nil, nil, fmt.Errorf("failed to save payroll run: %w", err)
	}

	s.logger.Info("payroll run saved",
		"runId", run.ID,
		"weekStart", run.WeekStart.Format(domain.DateLayout),
		"employees", run.EmployeeCount,
		"total", run.Total.StringFixed(2),
	)
	return run, timesheets, nil
}

func (s *payrollService) AddDeduction(ctx context.Context, employeeID int64, d domain.Deduction) (*domain.Employee, error) {
	employee, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	before := employee.Deduction()
	employee.AddDeduction(d)
	if employee.Deduction() == before {
		return employee, nil
	}

	if err := s.employeeRepo.UpdateDeductions(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("deduction added", "employeeId", employeeID, "deductions", employee.Deduction().String())
	return employee, nil
}
