package amqp

import (
	"encoding/json"
	"time"
)

// Message types carried in the AMQP Type property.
const (
	TypeItemChanged       = "item.changed"
	TypeForecastRequested = "forecast.requested"
)

// Item kinds and actions for ItemChangedMessage.
const (
	KindExpense = "expense"
	KindRevenue = "revenue"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ItemChangedMessage announces that a schedule item was written.
// It carries only the identity; consumers reload state from the store.
type ItemChangedMessage struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// ForecastRequestedMessage asks a worker to compute and export a forecast.
type ForecastRequestedMessage struct {
	StartDate      string    `json:"startDate"`
	NumWeeks       int       `json:"numWeeks"`
	InitialBalance float64   `json:"initialBalance"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewItemChangedMessage(kind, id, action string) *ItemChangedMessage {
	return &ItemChangedMessage{
		Kind:      kind,
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func NewForecastRequestedMessage(startDate string, numWeeks int, initialBalance float64) *ForecastRequestedMessage {
	return &ForecastRequestedMessage{
		StartDate:      startDate,
		NumWeeks:       numWeeks,
		InitialBalance: initialBalance,
		Timestamp:      time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ItemChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ToJSON converts the message to JSON bytes
func (m *ForecastRequestedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ItemChangedMessageFromJSON(data []byte) (*ItemChangedMessage, error) {
	var msg ItemChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func ForecastRequestedMessageFromJSON(data []byte) (*ForecastRequestedMessage, error) {
	var msg ForecastRequestedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
