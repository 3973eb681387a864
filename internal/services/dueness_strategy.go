// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for recurring item dueness checking.
// Each frequency (weekly, monthly, quarterly) has its own strategy that decides
// whether an occurrence falls inside a closed date window.

package services

import (
	"fmt"
	"time"

	"cashflow/internal/core"
)

// DuenessChecker is the strategy interface for checking if a recurring item is due.
// Each implementation encapsulates the algorithm for a specific frequency.
type DuenessChecker interface {
	// IsDue reports whether at least one occurrence of the schedule falls in
	// [windowStart, windowEnd]. Start/end date bounds are checked by the caller.
	IsDue(s core.Schedule, windowStart, windowEnd core.Date) bool
}

// WeeklyChecker implements DuenessChecker for weekly items.
type WeeklyChecker struct{}

// IsDue scans the window for a day sharing the start date's weekday.
func (WeeklyChecker) IsDue(s core.Schedule, windowStart, windowEnd core.Date) bool {
	want := s.StartDate.Weekday()
	for d := windowStart; !d.After(windowEnd); d = core.AddDays(d, 1) {
		if d.Weekday() == want {
			return true
		}
	}
	return false
}

// MonthlyChecker implements DuenessChecker for monthly items.
type MonthlyChecker struct{}

// IsDue checks the payment day in the window start's month and its neighbours.
func (MonthlyChecker) IsDue(s core.Schedule, windowStart, windowEnd core.Date) bool {
	months := monthsAround(windowStart.Year(), windowStart.Month(), -1, 1)
	return anyWithin(candidateDates(s.PaymentDay, months), windowStart, windowEnd)
}

// QuarterlyChecker implements DuenessChecker for quarterly items.
type QuarterlyChecker struct{}

// IsDue checks the payment day in every month of the quarter containing the
// window start and of the quarters on either side.
func (QuarterlyChecker) IsDue(s core.Schedule, windowStart, windowEnd core.Date) bool {
	first := QuarterAnchor(windowStart.Month())
	months := monthsAround(windowStart.Year(), first, -3, 5)
	return anyWithin(candidateDates(s.PaymentDay, months), windowStart, windowEnd)
}

// QuarterAnchor returns the first month (1, 4, 7 or 10) of the quarter holding month.
func QuarterAnchor(month int) int {
	return ((month-1)/3)*3 + 1
}

type yearMonth struct {
	year  int
	month time.Month
}

// monthsAround lists the months from base+from to base+to inclusive.
func monthsAround(year, month, from, to int) []yearMonth {
	out := make([]yearMonth, 0, to-from+1)
	for off := from; off <= to; off++ {
		y, m := core.NormalizeMonth(year, month+off)
		out = append(out, yearMonth{year: y, month: m})
	}
	return out
}

// candidateDates returns paymentDay in each month, skipping months where that
// day does not exist.
func candidateDates(paymentDay int, months []yearMonth) []core.Date {
	out := make([]core.Date, 0, len(months))
	for _, ym := range months {
		if d, ok := core.SafeDateForDay(ym.year, ym.month, paymentDay); ok {
			out = append(out, d)
		}
	}
	return out
}

func anyWithin(dates []core.Date, start, end core.Date) bool {
	for _, d := range dates {
		if d.Between(start, end) {
			return true
		}
	}
	return false
}

// duenessStrategies maps frequencies to their checkers. It is fixed at
// init and only read afterwards.
// One-time items have no entry: they are matched by date directly.
var duenessStrategies = map[core.Frequency]DuenessChecker{
	core.Weekly:    WeeklyChecker{},
	core.Monthly:   MonthlyChecker{},
	core.Quarterly: QuarterlyChecker{},
}

// GetDuenessChecker returns the appropriate dueness checker for a frequency.
// Returns an error if the frequency is not supported.
func GetDuenessChecker(frequency core.Frequency) (DuenessChecker, error) {
	checker, ok := duenessStrategies[frequency]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidFrequency, frequency)
	}
	return checker, nil
}

// IsDue reports whether a recurring item has an occurrence in the inclusive
// window. Items outside their start/end range are never due, and a frequency
// with no registered checker is never due.
func IsDue(item core.ScheduleItem, windowStart, windowEnd core.Date) bool {
	s := item.Schedule()
	if s.StartDate.After(windowEnd) {
		return false
	}
	if s.EndDate != nil && s.EndDate.Before(windowStart) {
		return false
	}
	checker, err := GetDuenessChecker(s.Frequency)
	if err != nil {
		return false
	}
	return checker.IsDue(s, windowStart, windowEnd)
}
