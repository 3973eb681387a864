package core

import "time"

// AddDays returns d shifted by n calendar days.
func AddDays(d Date, n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// SafeDateForDay builds year-month-day, reporting false when the day does not
// exist in that month (Feb 30, Apr 31, ...).
func SafeDateForDay(year int, month time.Month, day int) (Date, bool) {
	if day < 1 || day > DaysIn(year, month) {
		return Date{}, false
	}
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}, true
}

// NormalizeMonth folds an arbitrary month number into 1..12, carrying the
// overflow into the year.
func NormalizeMonth(year, month int) (int, time.Month) {
	m := month - 1
	year += m / 12
	m %= 12
	if m < 0 {
		m += 12
		year--
	}
	return year, time.Month(m + 1)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
