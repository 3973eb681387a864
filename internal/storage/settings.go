package storage

import (
	"strconv"

	"cashflow/internal/core"
)

// settingsFromRows overlays stored key/value pairs on the defaults. Unknown
// keys are ignored and unparseable numbers keep their default.
func settingsFromRows(rows []SettingRow) core.Settings {
	s := core.DefaultSettings()
	for _, row := range rows {
		switch row.Key {
		case core.SettingCurrency:
			s.Currency = row.Value
		case core.SettingDateFormat:
			s.DateFormat = row.Value
		case core.SettingTheme:
			s.Theme = row.Value
		case core.SettingLowBalanceThreshold:
			if v, err := strconv.ParseFloat(row.Value, 64); err == nil {
				s.LowBalanceThreshold = v
			}
		case core.SettingDefaultForecastWeeks:
			if v, err := strconv.Atoi(row.Value); err == nil && v > 0 {
				s.DefaultForecastWeeks = v
			}
		}
	}
	return s
}

func settingsToRows(s core.Settings) []SettingRow {
	return []SettingRow{
		{Key: core.SettingCurrency, Value: s.Currency},
		{Key: core.SettingDateFormat, Value: s.DateFormat},
		{Key: core.SettingTheme, Value: s.Theme},
		{Key: core.SettingLowBalanceThreshold, Value: strconv.FormatFloat(s.LowBalanceThreshold, 'f', -1, 64)},
		{Key: core.SettingDefaultForecastWeeks, Value: strconv.Itoa(s.DefaultForecastWeeks)},
	}
}
