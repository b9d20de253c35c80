package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Employee holds the pay configuration of one person. Pay attributes are fixed
// at creation; only deductions can change afterwards, and only by growing.
// AddDeduction is not synchronised: concurrent callers must serialise it.
type Employee struct {
	ID        int64
	CreatedAt time.Time

	forename            string
	surname             string
	employmentStartDate time.Time
	payFrequency        PayFrequency
	rateOfPay           decimal.Decimal
	sickPayScheme       SickPayScheme
	deduction           Deduction

	// weekly equivalent of rateOfPay, frozen at creation
	basicPayRate decimal.Decimal
}

// NewEmployee validates the inputs and returns a new employee with its basic
// pay rate derived from the pay frequency.
func NewEmployee(
	forename, surname string,
	employmentStartDate time.Time,
	payFrequency PayFrequency,
	rateOfPay decimal.Decimal,
	sickPayScheme SickPayScheme,
) (*Employee, error) {
	if strings.TrimSpace(forename) == "" {
		return nil, invalidArgument("forename", "can't be empty or whitespace")
	}
	if strings.TrimSpace(surname) == "" {
		return nil, invalidArgument("surname", "can't be empty or whitespace")
	}
	if rateOfPay.IsNegative() {
		return nil, invalidArgument("rateOfPay", "must be 0 or greater")
	}

	var basic decimal.Decimal
	switch payFrequency {
	case PayFrequencyAnnual:
		basic = rateOfPay.Div(decimal.NewFromInt(WeeksPerYear))
	case PayFrequencyWeekly, PayFrequencyHourly:
		basic = rateOfPay
	default:
		return nil, fmt.Errorf("%w: pay frequency has not been specified", ErrInvalidOperation)
	}

	return &Employee{
		CreatedAt:           time.Now(),
		forename:            forename,
		surname:             surname,
		employmentStartDate: DateOf(employmentStartDate),
		payFrequency:        payFrequency,
		rateOfPay:           rateOfPay,
		sickPayScheme:       sickPayScheme,
		basicPayRate:        basic,
	}, nil
}

func (e *Employee) Forename() string { return e.forename }
func (e *Employee) Surname() string { return e.surname }
func (e *Employee) EmploymentStartDate() time.Time { return e.employmentStartDate }
func (e *Employee) PayFrequency() PayFrequency { return e.payFrequency }
func (e *Employee) RateOfPay() decimal.Decimal { return e.rateOfPay }
func (e *Employee) SickPayScheme() SickPayScheme { return e.sickPayScheme }
func (e *Employee) Deduction() Deduction { return e.deduction }
func (e *Employee) BasicPayRate() decimal.Decimal { return e.basicPayRate }

// FullName returns the forename and surname separated by a single space
func (e *Employee) FullName() string {
	return fmt.Sprintf("%s %s", e.forename, e.surname)
}

// AddDeduction activates a deduction. Adding one that is already active has no effect.
func (e *Employee) AddDeduction(d Deduction) {
	e.deduction |= d
}
