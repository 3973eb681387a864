package core

import (
	"errors"
	"strings"
	"time"
)

const (
	OneTime   Frequency = "one-time"
	Weekly    Frequency = "weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
)

type (
	Frequency string

	// Date is a calendar day. The wrapped time is always midnight UTC.
	Date struct {
		time.Time
	}

	// Schedule holds the fields that decide when an item occurs.
	Schedule struct {
		IsRecurring bool
		Frequency   Frequency
		StartDate   Date
		EndDate     *Date
		PaymentDay  int
	}

	Expense struct {
		ID          string
		Name        string
		Amount      float64
		Category    string
		IsRecurring bool
		Frequency   Frequency
		StartDate   Date
		EndDate     *Date
		PaymentDay  int
		Notes       string
	}

	Revenue struct {
		ID          string
		Source      string
		Amount      float64
		Probability float64
		IsRecurring bool
		Frequency   Frequency
		StartDate   Date
		EndDate     *Date
		PaymentDay  int
		Notes       string
	}

	// Snapshot is a point-in-time copy of every schedule item, in repository order.
	Snapshot struct {
		Expenses []Expense
		Revenue  []Revenue
	}
)

// ScheduleItem is anything with a recurrence schedule.
type ScheduleItem interface {
	Schedule() Schedule
}

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyName        = errors.New("empty name")
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case OneTime, Weekly, Monthly, Quarterly:
		return true
	}
	return false
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.Time.After(o.Time) }

// Equal reports whether d and o are the same day.
func (d Date) Equal(o Date) bool { return d.Time.Equal(o.Time) }

// Between reports whether start <= d <= end.
func (d Date) Between(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (e Expense) Schedule() Schedule {
	return Schedule{
		IsRecurring: e.IsRecurring,
		Frequency:   e.Frequency,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		PaymentDay:  e.PaymentDay,
	}
}

func (r Revenue) Schedule() Schedule {
	return Schedule{
		IsRecurring: r.IsRecurring,
		Frequency:   r.Frequency,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		PaymentDay:  r.PaymentDay,
	}
}

// Validate checks the recurrence fields. Unknown frequencies on recurring
// items are rejected here even though the evaluator treats them as never due.
func (s Schedule) Validate() error {
	if s.StartDate.IsZero() {
		return &ValidationError{Field: "startDate", Message: "start date is required", Err: ErrInvalidDate}
	}
	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return &ValidationError{Field: "endDate", Message: "end date must not be before start date", Err: ErrInvalidDate}
	}
	if !s.IsRecurring {
		return nil
	}
	switch s.Frequency {
	case Weekly, OneTime:
	case Monthly, Quarterly:
		if s.PaymentDay < 1 || s.PaymentDay > 31 {
			return &ValidationError{Field: "paymentDay", Message: "payment day must be between 1 and 31"}
		}
	default:
		return &ValidationError{Field: "frequency", Message: "unsupported frequency " + string(s.Frequency), Err: ErrInvalidFrequency}
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required", Err: ErrEmptyName}
	}
	if e.Amount < 0 {
		return &ValidationError{Field: "amount", Message: "amount must not be negative", Err: ErrInvalidAmount}
	}
	return e.Schedule().Validate()
}

func (r Revenue) Validate() error {
	if strings.TrimSpace(r.Source) == "" {
		return &ValidationError{Field: "source", Message: "source is required", Err: ErrEmptyName}
	}
	if r.Amount < 0 {
		return &ValidationError{Field: "amount", Message: "amount must not be negative", Err: ErrInvalidAmount}
	}
	if r.Probability < 0 || r.Probability > 1 {
		return &ValidationError{Field: "probability", Message: "probability must be between 0 and 1"}
	}
	return r.Schedule().Validate()
}
