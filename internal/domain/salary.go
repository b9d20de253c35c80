package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LabourCost is the breakdown of one weekly salary calculation
type LabourCost struct {
	WeekStart         time.Time
	WeeklyPay         decimal.Decimal
	SickPay           decimal.Decimal
	Deductions        decimal.Decimal
	TotalWeeklyPay    decimal.Decimal
	NationalInsurance decimal.Decimal
	HolidayAccrual    decimal.Decimal
	Total             decimal.Decimal // rounded to 2dp
}

// CalculateSalary returns the employee's labour cost for the week, including
// employer national insurance and holiday accrual, rounded to 2 decimal places.
func (e *Employee) CalculateSalary(weekStart time.Time, hours, minutes, sickDays int) (decimal.Decimal, error) {
	lc, err := e.CalculateLabourCost(weekStart, hours, minutes, sickDays)
	if err != nil {
		return decimal.Zero, err
	}
	return lc.Total, nil
}

// CalculateLabourCost runs the salary pipeline and keeps every intermediate figure
func (e *Employee) CalculateLabourCost(weekStart time.Time, hours, minutes, sickDays int) (*LabourCost, error) {
	if hours < 0 {
		return nil, invalidArgument("hours", "must be 0 or greater")
	}
	if minutes < 0 {
		return nil, invalidArgument("minutes", "must be 0 or greater")
	}
	if sickDays < 0 {
		return nil, invalidArgument("sickDays", "must be 0 or greater")
	}

	weeklyPay := e.calculateWeeklyPay(hours, minutes, sickDays)
	sickPay, err := e.calculateSickPay(DateOf(weekStart), sickDays)
	if err != nil {
		return nil, err
	}
	deductions := e.calculateDeductions(weeklyPay, sickPay)

	total := weeklyPay.Add(sickPay).Sub(deductions)
	ni := calculateNIContribution(total)
	holiday := calculateHolidayAccrual(total, ni)

	return &LabourCost{
		WeekStart:         DateOf(weekStart),
		WeeklyPay:         weeklyPay,
		SickPay:           sickPay,
		Deductions:        deductions,
		TotalWeeklyPay:    total,
		NationalInsurance: ni,
		HolidayAccrual:    holiday,
		Total:             total.Add(ni).Add(holiday).RoundBank(2),
	}, nil
}

func (e *Employee) dailyRate() decimal.Decimal {
	return e.basicPayRate.Div(decimal.NewFromInt(WorkingDaysPerWeek))
}

func (e *Employee) calculateWeeklyPay(hours, minutes, sickDays int) decimal.Decimal {
	var weeklyPay decimal.Decimal

	if e.payFrequency == PayFrequencyAnnual || e.payFrequency == PayFrequencyWeekly {
		switch {
		case sickDays <= 0:
			weeklyPay = e.basicPayRate
		case sickDays < WorkingDaysPerWeek:
			weeklyPay = e.basicPayRate.Sub(e.dailyRate().Mul(decimal.NewFromInt(int64(sickDays))))
		default:
			weeklyPay = decimal.Zero
		}
	} else {
		worked := e.basicPayRate.Mul(decimal.NewFromInt(int64(hours)))
		partHour := e.basicPayRate.Mul(decimal.NewFromInt(int64(minutes))).Div(decimal.NewFromInt(60))
		weeklyPay = worked.Add(partHour)
	}

	if weeklyPay.IsNegative() {
		return decimal.Zero
	}
	return weeklyPay
}

// qualifiesForCOSP is true for salaried COSP employees who started more than
// five years before the week
func (e *Employee) qualifiesForCOSP(weekStart time.Time) bool {
	return e.sickPayScheme == SickPayCOSP &&
		e.payFrequency != PayFrequencyHourly &&
		e.employmentStartDate.Before(addYears(weekStart, -COSPQualifyingYears))
}

func (e *Employee) calculateSickPay(weekStart time.Time, sickDays int) (decimal.Decimal, error) {
	if sickDays < 0 {
		return decimal.Zero, invalidArgument("sickDays", "can't be less than 0")
	}

	if e.qualifiesForCOSP(weekStart) {
		switch {
		case sickDays > 0 && sickDays < WorkingDaysPerWeek:
			return e.dailyRate().Mul(decimal.NewFromInt(int64(sickDays))), nil
		case sickDays >= WorkingDaysPerWeek:
			return e.basicPayRate, nil
		default:
			return decimal.Zero, nil
		}
	}

	// SSP accrues per day up to the 7 day cap
	switch {
	case sickDays == 0:
		return decimal.Zero, nil
	case sickDays <= SSPMaxDays:
		perDay := StatutorySickPayRate.Div(decimal.NewFromInt(SSPMaxDays))
		return perDay.Mul(decimal.NewFromInt(int64(sickDays))), nil
	default:
		return StatutorySickPayRate, nil
	}
}

func (e *Employee) calculateDeductions(weeklyPay, sickPay decimal.Decimal) decimal.Decimal {
	total := decimal.Zero

	if e.deduction.Has(DeductionPension) {
		total = total.Add(weeklyPay.Add(sickPay).Mul(PensionDeductionRate))
	}
	if e.deduction.Has(DeductionBikeScheme) {
		total = total.Add(BikeSchemeDeduction)
	}

	return total
}

func calculateNIContribution(totalWeeklyPay decimal.Decimal) decimal.Decimal {
	ni := totalWeeklyPay.Sub(NationalInsuranceThreshold).Mul(NationalInsurancePercentage)
	if ni.IsPositive() {
		return ni
	}
	return decimal.Zero
}

func calculateHolidayAccrual(totalWeeklyPay, nationalInsurance decimal.Decimal) decimal.Decimal {
	return totalWeeklyPay.Add(nationalInsurance).Mul(HolidayAccrualRate)
}
