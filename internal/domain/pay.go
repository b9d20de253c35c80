package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type PayFrequency string

const (
	PayFrequencyAnnual PayFrequency = "annual"
	PayFrequencyWeekly PayFrequency = "weekly"
	PayFrequencyHourly PayFrequency = "hourly"
)

// IsValid returns true for the three known pay frequencies
func (f PayFrequency) IsValid() bool {
	switch f {
	case PayFrequencyAnnual, PayFrequencyWeekly, PayFrequencyHourly:
		return true
	}
	return false
}

// ParsePayFrequency accepts annual, weekly or hourly in any case
func ParsePayFrequency(s string) (PayFrequency, error) {
	f := PayFrequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: unknown pay frequency %q", ErrInvalidOperation, s)
	}
	return f, nil
}

type SickPayScheme string

const (
	// SickPaySSP is statutory sick pay, a flat weekly rate capped at 7 days
	SickPaySSP SickPayScheme = "ssp"
	// SickPayCOSP is company occupational sick pay, paid once tenure qualifies
	SickPayCOSP SickPayScheme = "cosp"
)

// ParseSickPayScheme accepts ssp or cosp in any case
func ParseSickPayScheme(s string) (SickPayScheme, error) {
	scheme := SickPayScheme(strings.ToLower(strings.TrimSpace(s)))
	switch scheme {
	case SickPaySSP, SickPayCOSP:
		return scheme, nil
	}
	return "", fmt.Errorf("%w: unknown sick pay scheme %q", ErrInvalidArgument, s)
}

// Statutory rates used by the salary pipeline
var (
	StatutorySickPayRate        = decimal.RequireFromString("118.75")
	NationalInsuranceThreshold  = decimal.NewFromInt(96)
	NationalInsurancePercentage = decimal.RequireFromString("0.15")
	HolidayAccrualRate          = decimal.RequireFromString("0.1207")
	PensionDeductionRate        = decimal.RequireFromString("0.02")
	BikeSchemeDeduction         = decimal.NewFromInt(75)
)

const (
	COSPQualifyingYears = 5
	WorkingDaysPerWeek  = 5
	SSPMaxDays          = 7
	WeeksPerYear        = 52
)
