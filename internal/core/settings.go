package core

// Settings are the user-level preferences stored next to the items.
type Settings struct {
	Currency             string  `json:"currency"`
	DateFormat           string  `json:"dateFormat"`
	Theme                string  `json:"theme"`
	LowBalanceThreshold  float64 `json:"lowBalanceThreshold"`
	DefaultForecastWeeks int     `json:"defaultForecastWeeks"`
}

// Setting keys as persisted in the key/value settings table.
const (
	SettingCurrency             = "currency"
	SettingDateFormat           = "date_format"
	SettingTheme                = "theme"
	SettingLowBalanceThreshold  = "low_balance_threshold"
	SettingDefaultForecastWeeks = "default_forecast_weeks"
)

// DefaultForecastWeeks is used when neither the request nor settings give a horizon.
const DefaultForecastWeeks = 8

func DefaultSettings() Settings {
	return Settings{
		Currency:             "USD",
		DateFormat:           "MM/DD/YYYY",
		Theme:                "light",
		LowBalanceThreshold:  0,
		DefaultForecastWeeks: DefaultForecastWeeks,
	}
}

func (s Settings) Validate() error {
	if len(s.Currency) != 3 {
		return NewValidationError("currency", "currency must be a 3-letter code")
	}
	if s.DefaultForecastWeeks < 1 || s.DefaultForecastWeeks > MaxForecastWeeks {
		return NewValidationError("defaultForecastWeeks", "must be between 1 and %d", MaxForecastWeeks)
	}
	return nil
}

// MaxForecastWeeks caps a single forecast request.
const MaxForecastWeeks = 520

// LowBalanceAlert describes a forecast that dips under the configured threshold.
type LowBalanceAlert struct {
	Threshold     float64
	LowestBalance float64
	FirstWeek     Date
	Currency      string
	Report        ForecastReport
}
