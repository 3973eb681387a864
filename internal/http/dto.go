package http

import (
	"cashflow/internal/core"
	"cashflow/internal/services"
)

// ExpenseDTO is the wire form of core.Expense.
type ExpenseDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	IsRecurring bool    `json:"isRecurring"`
	Frequency   string  `json:"frequency"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	PaymentDay  int     `json:"paymentDay"`
	Notes       string  `json:"notes"`
}

// RevenueDTO is the wire form of core.Revenue.
type RevenueDTO struct {
	ID          string  `json:"id"`
	Source      string  `json:"source"`
	Amount      float64 `json:"amount"`
	Probability float64 `json:"probability"`
	IsRecurring bool    `json:"isRecurring"`
	Frequency   string  `json:"frequency"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	PaymentDay  int     `json:"paymentDay"`
	Notes       string  `json:"notes"`
}

// ExpenseRequest is the body of POST and PUT /api/expenses.
type ExpenseRequest struct {
	ID          string  `json:"id" validate:"omitempty,max=64"`
	Name        string  `json:"name" validate:"required,max=200"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Category    string  `json:"category" default:"other" validate:"max=100"`
	IsRecurring bool    `json:"isRecurring"`
	Frequency   string  `json:"frequency" default:"one-time" validate:"oneof=one-time weekly monthly quarterly"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate"`
	PaymentDay  int     `json:"paymentDay" validate:"gte=0,lte=31"`
	Notes       string  `json:"notes" validate:"max=1000"`
}

// RevenueRequest is the body of POST and PUT /api/revenue.
type RevenueRequest struct {
	ID          string   `json:"id" validate:"omitempty,max=64"`
	Source      string   `json:"source" validate:"required,max=200"`
	Amount      float64  `json:"amount" validate:"gte=0"`
	Probability *float64 `json:"probability" default:"1" validate:"gte=0,lte=1"`
	IsRecurring bool     `json:"isRecurring"`
	Frequency   string   `json:"frequency" default:"one-time" validate:"oneof=one-time weekly monthly quarterly"`
	StartDate   string   `json:"startDate" validate:"required"`
	EndDate     string   `json:"endDate"`
	PaymentDay  int      `json:"paymentDay" validate:"gte=0,lte=31"`
	Notes       string   `json:"notes" validate:"max=1000"`
}

// SettingsRequest is the body of PUT /api/settings.
type SettingsRequest struct {
	Currency             string  `json:"currency" default:"USD" validate:"len=3,alpha"`
	DateFormat           string  `json:"dateFormat" default:"MM/DD/YYYY" validate:"oneof=MM/DD/YYYY DD/MM/YYYY YYYY-MM-DD"`
	Theme                string  `json:"theme" default:"light" validate:"oneof=light dark"`
	LowBalanceThreshold  float64 `json:"lowBalanceThreshold"`
	DefaultForecastWeeks int     `json:"defaultForecastWeeks" default:"8" validate:"gte=1,lte=520"`
}

// ForecastRequestDTO is the body of POST /api/forecast/calculate.
type ForecastRequestDTO struct {
	StartDate      string  `json:"startDate" validate:"required"`
	NumWeeks       *int    `json:"numWeeks" validate:"omitempty,gte=0,lte=520"`
	InitialBalance float64 `json:"initialBalance"`
}

func toExpenseDTO(e core.Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:          e.ID,
		Name:        e.Name,
		Amount:      e.Amount,
		Category:    e.Category,
		IsRecurring: e.IsRecurring,
		Frequency:   string(e.Frequency),
		StartDate:   e.StartDate.String(),
		EndDate:     optionalDateString(e.EndDate),
		PaymentDay:  e.PaymentDay,
		Notes:       e.Notes,
	}
}

func toRevenueDTO(r core.Revenue) RevenueDTO {
	return RevenueDTO{
		ID:          r.ID,
		Source:      r.Source,
		Amount:      r.Amount,
		Probability: r.Probability,
		IsRecurring: r.IsRecurring,
		Frequency:   string(r.Frequency),
		StartDate:   r.StartDate.String(),
		EndDate:     optionalDateString(r.EndDate),
		PaymentDay:  r.PaymentDay,
		Notes:       r.Notes,
	}
}

func optionalDateString(d *core.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func (req ExpenseRequest) toCore() (core.Expense, error) {
	start, err := core.ParseDateField("startDate", req.StartDate)
	if err != nil {
		return core.Expense{}, err
	}
	end, err := core.ParseOptionalDate("endDate", req.EndDate)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		ID:          sanitizeInput(req.ID),
		Name:        sanitizeInput(req.Name),
		Amount:      req.Amount,
		Category:    sanitizeInput(req.Category),
		IsRecurring: req.IsRecurring,
		Frequency:   core.Frequency(req.Frequency),
		StartDate:   start,
		EndDate:     end,
		PaymentDay:  req.PaymentDay,
		Notes:       sanitizeInput(req.Notes),
	}, nil
}

func (req RevenueRequest) toCore() (core.Revenue, error) {
	start, err := core.ParseDateField("startDate", req.StartDate)
	if err != nil {
		return core.Revenue{}, err
	}
	end, err := core.ParseOptionalDate("endDate", req.EndDate)
	if err != nil {
		return core.Revenue{}, err
	}
	probability := 1.0
	if req.Probability != nil {
		probability = *req.Probability
	}
	return core.Revenue{
		ID:          sanitizeInput(req.ID),
		Source:      sanitizeInput(req.Source),
		Amount:      req.Amount,
		Probability: probability,
		IsRecurring: req.IsRecurring,
		Frequency:   core.Frequency(req.Frequency),
		StartDate:   start,
		EndDate:     end,
		PaymentDay:  req.PaymentDay,
		Notes:       sanitizeInput(req.Notes),
	}, nil
}

func (req SettingsRequest) toCore() core.Settings {
	return core.Settings{
		Currency:             req.Currency,
		DateFormat:           req.DateFormat,
		Theme:                req.Theme,
		LowBalanceThreshold:  req.LowBalanceThreshold,
		DefaultForecastWeeks: req.DefaultForecastWeeks,
	}
}

func (req ForecastRequestDTO) toService() (services.ForecastRequest, error) {
	start, err := core.ParseDateField("startDate", req.StartDate)
	if err != nil {
		return services.ForecastRequest{}, err
	}
	return services.ForecastRequest{
		StartDate:      start,
		NumWeeks:       req.NumWeeks,
		InitialBalance: req.InitialBalance,
	}, nil
}
