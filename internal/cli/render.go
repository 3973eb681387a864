package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cashflow/internal/core"
)

var (
	ColorBorder = lipgloss.Color("#575653")
	ColorText   = lipgloss.Color("#FFFCF0")
	ColorAccent = lipgloss.Color("#3AA99F")
	ColorGreen  = lipgloss.Color("#879A39")
	ColorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().Foreground(ColorText)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorBorder)
	lowStyle   = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	goodStyle  = lipgloss.NewStyle().Foreground(ColorGreen)
)

// Table is a bordered text table. The first column is left-aligned, the
// rest right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Highlight picks a style for a cell; nil keeps the default.
	Highlight func(row, col int) *lipgloss.Style
}

// RenderTitle renders a title in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// RenderTable renders t with box-drawing borders.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < numCols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			b.WriteString(headerStyle.Render(pad(t.Headers[i], widths[i], i == 0)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}
	for r, row := range t.Rows {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			style := &valueStyle
			if t.Highlight != nil {
				if s := t.Highlight(r, i); s != nil {
					style = s
				}
			}
			b.WriteString(style.Render(pad(cell, widths[i], i == 0)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}
	rule("╰", "┴", "╯")
	return b.String()
}

func pad(s string, width int, left bool) string {
	gap := width - lipgloss.Width(s)
	if gap < 0 {
		gap = 0
	}
	if left {
		return " " + s + strings.Repeat(" ", gap) + " "
	}
	return " " + strings.Repeat(" ", gap) + s + " "
}

// ForecastRows turns a report into table rows; amounts go through
// core.FormatAmount.
func ForecastRows(report core.ForecastReport, currency string) [][]string {
	rows := make([][]string, 0, len(report.Entries))
	for i, e := range report.Entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Date.String(),
			core.FormatAmount(e.StartingBalance, currency),
			core.FormatAmount(e.Inflows, currency),
			core.FormatAmount(e.Outflows, currency),
			core.FormatAmount(e.EndingBalance, currency),
		})
	}
	return rows
}

// RenderForecast renders the weekly table and a summary line. Weeks ending
// below threshold are highlighted.
func RenderForecast(report core.ForecastReport, currency string, threshold float64) string {
	var b strings.Builder
	b.WriteString(RenderTitle(fmt.Sprintf("CASH FLOW FORECAST  %s  +%d weeks", report.StartDate, report.NumWeeks)))
	b.WriteString("\n")
	b.WriteString(RenderTable(Table{
		Headers: []string{"Week", "Starts", "Starting", "Inflows", "Outflows", "Ending"},
		Rows:    ForecastRows(report, currency),
		Highlight: func(row, col int) *lipgloss.Style {
			if col != 5 {
				return nil
			}
			if report.Entries[row].EndingBalance < threshold {
				return &lowStyle
			}
			return &goodStyle
		},
	}))

	lowest := core.FormatAmount(report.LowestBalance, currency)
	if report.LowestBalance < threshold {
		lowest = lowStyle.Render(lowest)
	}
	fmt.Fprintf(&b, "Lowest %s  Highest %s  Ending %s\n",
		lowest,
		core.FormatAmount(report.HighestBalance, currency),
		core.FormatAmount(report.EndingBalance, currency))
	return b.String()
}
