package domain

import "time"

// DateLayout is the calendar date format used for storage and input
const DateLayout = "2006-01-02"

// DateOf strips the time of day, keeping the calendar date as seen in t's location
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the Monday of the week containing t
func StartOfWeek(t time.Time) time.Time {
	d := DateOf(t)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// addYears moves a date by whole years, clamping Feb 29 to Feb 28 instead of
// rolling into March.
func addYears(d time.Time, years int) time.Time {
	y := d.Year() + years
	day := d.Day()
	if last := daysIn(d.Month(), y); day > last {
		day = last
	}
	return time.Date(y, d.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
