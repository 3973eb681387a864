package notify

import (
	"fmt"
	"strings"

	"cashflow/internal/core"
)

func Subject(a core.LowBalanceAlert) string {
	return fmt.Sprintf("Cash flow alert: balance below %s", core.FormatAmount(a.Threshold, a.Currency))
}

// Body renders the alert as plain text with one line per forecast week.
func Body(a core.LowBalanceAlert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The forecast from %s drops to %s, under the threshold of %s.\n",
		a.Report.StartDate, core.FormatAmount(a.LowestBalance, a.Currency), core.FormatAmount(a.Threshold, a.Currency))
	fmt.Fprintf(&b, "First week below threshold: %s.\n\n", a.FirstWeek)

	for _, e := range a.Report.Entries {
		marker := " "
		if e.EndingBalance < a.Threshold {
			marker = "!"
		}
		fmt.Fprintf(&b, "%s %s  in %s  out %s  end %s\n", marker, e.Date,
			core.FormatAmount(e.Inflows, a.Currency),
			core.FormatAmount(e.Outflows, a.Currency),
			core.FormatAmount(e.EndingBalance, a.Currency))
	}
	return b.String()
}
