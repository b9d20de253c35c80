package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollRun groups the timesheets calculated together for one week
type PayrollRun struct {
	ID            string
	WeekStart     time.Time
	EmployeeCount int
	Total         decimal.Decimal
	CreatedAt     time.Time
}

// NewPayrollRun creates an empty run for the week containing weekStart
func NewPayrollRun(weekStart time.Time) *PayrollRun {
	return &PayrollRun{
		ID:        uuid.NewString(),
		WeekStart: StartOfWeek(weekStart),
		Total:     decimal.Zero,
		CreatedAt: time.Now(),
	}
}

// Add attaches a timesheet to the run and adds its cost to the total
func (r *PayrollRun) Add(t *Timesheet) {
	id := r.ID
	t.RunID = &id
	t.WeekStart = r.WeekStart
	r.EmployeeCount++
	r.Total = r.Total.Add(t.LabourCost)
}

// Validate returns an error if the run is invalid
func (r *PayrollRun) Validate() error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return errors.New("run ID must be a UUID")
	}
	if r.WeekStart.IsZero() {
		return errors.New("week start is required")
	}
	if r.EmployeeCount == 0 {
		return errors.New("run has no timesheets")
	}
	return nil
}
