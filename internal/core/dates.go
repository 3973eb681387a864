package core

import (
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseDate turns an ISO-8601 date or timestamp into a calendar Date.
//
// Timestamps with a trailing Z or a numeric offset are accepted; the offset is
// dropped and the wall-clock date is kept, so "2025-03-01T23:30:00-05:00" is
// 2025-03-01. Anything else fails with a *ValidationError wrapping ErrInvalidDate.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, &ValidationError{Message: "date is empty", Err: ErrInvalidDate}
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, &ValidationError{Message: "unparseable date " + quote(s), Err: ErrInvalidDate}
}

// ParseDateField is ParseDate with the offending field name attached.
func ParseDateField(field, s string) (Date, error) {
	d, err := ParseDate(s)
	if err != nil {
		if ve, ok := err.(*ValidationError); ok {
			ve.Field = field
		}
		return Date{}, err
	}
	return d, nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(field, s string) (*Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDateField(field, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DateOf truncates t to its wall-clock calendar day, ignoring its location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

func quote(s string) string {
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return `"` + s + `"`
}

// MarshalJSON emits the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON accepts any format ParseDate understands.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
