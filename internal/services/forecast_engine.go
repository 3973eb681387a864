package services

import "cashflow/internal/core"

// DaysPerWeek is the length of one forecast bucket.
const DaysPerWeek = 7

// GenerateForecast folds the snapshot week by week into a running balance.
//
// Each week covers [cursor, cursor+6]. A due expense adds its full amount to
// outflows; a due revenue item adds amount*probability to inflows. An item
// contributes at most once per week, and detail lists follow snapshot order.
// The function is pure: it performs no I/O and never mutates the snapshot.
func GenerateForecast(snap core.Snapshot, startDate core.Date, numWeeks int, initialBalance float64) core.ForecastReport {
	if numWeeks < 0 {
		numWeeks = 0
	}
	report := core.ForecastReport{
		StartDate:      startDate,
		NumWeeks:       numWeeks,
		Entries:        make([]core.WeekEntry, 0, numWeeks),
		LowestBalance:  initialBalance,
		HighestBalance: initialBalance,
		EndingBalance:  initialBalance,
	}

	balance := initialBalance
	cursor := startDate
	for week := 0; week < numWeeks; week++ {
		weekEnd := core.AddDays(cursor, DaysPerWeek-1)
		entry := core.WeekEntry{
			Date:            cursor,
			StartingBalance: balance,
			InflowDetails:   []core.InflowDetail{},
			OutflowDetails:  []core.OutflowDetail{},
		}

		for _, e := range snap.Expenses {
			if !occursIn(e, cursor, weekEnd) {
				continue
			}
			entry.Outflows += e.Amount
			entry.OutflowDetails = append(entry.OutflowDetails, core.OutflowDetail{
				Amount:    e.Amount,
				Name:      e.Name,
				ExpenseID: e.ID,
			})
		}

		for _, r := range snap.Revenue {
			if !occursIn(r, cursor, weekEnd) {
				continue
			}
			expected := r.Amount * r.Probability
			entry.Inflows += expected
			entry.InflowDetails = append(entry.InflowDetails, core.InflowDetail{
				Amount:   expected,
				Source:   r.Source,
				SourceID: r.ID,
			})
		}

		entry.EndingBalance = entry.StartingBalance + entry.Inflows - entry.Outflows
		if entry.EndingBalance < report.LowestBalance {
			report.LowestBalance = entry.EndingBalance
		}
		if entry.EndingBalance > report.HighestBalance {
			report.HighestBalance = entry.EndingBalance
		}
		report.Entries = append(report.Entries, entry)

		balance = entry.EndingBalance
		cursor = core.AddDays(weekEnd, 1)
	}

	report.EndingBalance = balance
	return report
}

// occursIn decides whether item lands in [start, end]. Non-recurring and
// one-time items are a single point in time; everything else goes through
// the dueness strategies.
func occursIn(item core.ScheduleItem, start, end core.Date) bool {
	s := item.Schedule()
	if !s.IsRecurring || s.Frequency == core.OneTime {
		return s.StartDate.Between(start, end)
	}
	return IsDue(item, start, end)
}
