package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Timesheet is one recorded week for one employee
type Timesheet struct {
	ID         int64
	EmployeeID int64
	RunID      *string // nil when recorded outside a payroll run
	WeekStart  time.Time
	Hours      int
	Minutes    int
	SickDays   int
	LabourCost decimal.Decimal
	CreatedAt  time.Time
}

// NewTimesheet creates a timesheet from a calculated labour cost
func NewTimesheet(employeeID int64, hours, minutes, sickDays int, cost *LabourCost) *Timesheet {
	return &Timesheet{
		EmployeeID: employeeID,
		WeekStart:  StartOfWeek(cost.WeekStart),
		Hours:      hours,
		Minutes:    minutes,
		SickDays:   sickDays,
		LabourCost: cost.Total,
		CreatedAt:  time.Now(),
	}
}

// Validate returns an error if the timesheet is invalid
func (t *Timesheet) Validate() error {
	if t.EmployeeID <= 0 {
		return errors.New("employee ID is required")
	}
	if t.WeekStart.IsZero() {
		return errors.New("week start is required")
	}
	if t.Hours < 0 {
		return invalidArgument("hours", "must be 0 or greater")
	}
	if t.Minutes < 0 {
		return invalidArgument("minutes", "must be 0 or greater")
	}
	if t.SickDays < 0 {
		return invalidArgument("sickDays", "must be 0 or greater")
	}
	return nil
}
