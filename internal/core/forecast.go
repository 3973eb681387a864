package core

type (
	// InflowDetail is one revenue item's expected contribution to a week.
	InflowDetail struct {
		Amount   float64 `json:"amount"`
		Source   string  `json:"source"`
		SourceID string  `json:"source_id"`
	}

	// OutflowDetail is one expense item's contribution to a week.
	OutflowDetail struct {
		Amount    float64 `json:"amount"`
		Name      string  `json:"name"`
		ExpenseID string  `json:"expense_id"`
	}

	WeekEntry struct {
		Date            Date            `json:"date"`
		StartingBalance float64         `json:"startingBalance"`
		Inflows         float64         `json:"inflows"`
		Outflows        float64         `json:"outflows"`
		EndingBalance   float64         `json:"endingBalance"`
		InflowDetails   []InflowDetail  `json:"inflowDetails"`
		OutflowDetails  []OutflowDetail `json:"outflowDetails"`
	}

	ForecastReport struct {
		StartDate      Date        `json:"startDate"`
		NumWeeks       int         `json:"numWeeks"`
		Entries        []WeekEntry `json:"entries"`
		LowestBalance  float64     `json:"lowestBalance"`
		HighestBalance float64     `json:"highestBalance"`
		EndingBalance  float64     `json:"endingBalance"`
	}
)

// WeekEnd returns the last day covered by the entry.
func (w WeekEntry) WeekEnd() Date {
	return AddDays(w.Date, 6)
}

// FirstWeekBelow returns the index of the first week whose ending balance is
// under threshold, or -1.
func (r ForecastReport) FirstWeekBelow(threshold float64) int {
	for i, e := range r.Entries {
		if e.EndingBalance < threshold {
			return i
		}
	}
	return -1
}
