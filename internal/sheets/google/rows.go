package google

import (
	"fmt"
	"strconv"
	"strings"

	"cashflow/internal/core"
)

const lastColumn = "G"

var header = []any{"Week", "Week End", "Starting", "Inflows", "Outflows", "Ending", "Currency"}

// reportRows lays a report out as a header plus one row per week.
func reportRows(r core.ForecastReport, currency string) [][]any {
	rows := make([][]any, 0, len(r.Entries)+1)
	rows = append(rows, header)
	for _, e := range r.Entries {
		rows = append(rows, []any{
			e.Date.String(),
			e.WeekEnd().String(),
			core.RoundCents(e.StartingBalance),
			core.RoundCents(e.Inflows),
			core.RoundCents(e.Outflows),
			core.RoundCents(e.EndingBalance),
			currency,
		})
	}
	return rows
}

// rowsEqual compares sheet values with freshly built rows by their string
// rendering, since the API returns numbers formatted as text.
func rowsEqual(current [][]any, rows [][]any) bool {
	if len(current) != len(rows) {
		return false
	}
	for i := range rows {
		a, b := toStrings(current[i]), toStrings(rows[i])
		for len(a) < len(b) {
			a = append(a, "")
		}
		if len(a) != len(b) {
			return false
		}
		for j := range b {
			if !cellEqual(a[j], b[j]) {
				return false
			}
		}
	}
	return true
}

func cellEqual(a, b string) bool {
	if a == b {
		return true
	}
	fa, errA := strconv.ParseFloat(strings.ReplaceAll(a, ",", ""), 64)
	fb, errB := strconv.ParseFloat(b, 64)
	return errA == nil && errB == nil && fa == fb
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
