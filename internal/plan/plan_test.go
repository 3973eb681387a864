package plan

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"cashflow/internal/core"
)

const tomlPlan = `
start_date = 2025-01-06
weeks = 4
initial_balance = 1500.0
currency = "EUR"

[[expense]]
name = "Rent"
amount = 1200
category = "housing"
recurring = true
frequency = "monthly"
start_date = 2025-01-01
payment_day = 1

[[expense]]
id = "exp-car"
name = "Car service"
amount = 300
start_date = "2025-01-20T09:00:00Z"

[[revenue]]
source = "Salary"
amount = 2500
recurring = true
frequency = "monthly"
start_date = "2025-01-01"
payment_day = 25

[[revenue]]
source = "Refund"
amount = 80
probability = 0.5
start_date = "2025-01-10"
`

const yamlPlan = `
start_date: 2025-01-06
weeks: 2
expenses:
  - name: Gym
    amount: 30
    recurring: true
    frequency: weekly
    start_date: 2025-01-07
    end_date: 2025-03-31
revenue:
  - id: rev-side
    source: Side project
    amount: 400
    recurring: true
    frequency: quarterly
    start_date: 2025-02-01
    payment_day: 15
`

func TestDecodeTOML(t *testing.T) {
	p, err := Decode(strings.NewReader(tomlPlan), TOML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Weeks != 4 || p.InitialBalance != 1500 || p.Currency != "EUR" {
		t.Errorf("header = %+v", p)
	}
	start, err := p.ForecastStart(core.NewDate(2000, 1, 1))
	if err != nil || !start.Equal(core.NewDate(2025, 1, 6)) {
		t.Errorf("ForecastStart = %s, %v", start, err)
	}

	snap, err := p.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Expenses) != 2 || len(snap.Revenue) != 2 {
		t.Fatalf("snapshot sizes = %d/%d", len(snap.Expenses), len(snap.Revenue))
	}
	rent := snap.Expenses[0]
	if rent.ID != "exp-1" || rent.Frequency != core.Monthly || !rent.StartDate.Equal(core.NewDate(2025, 1, 1)) {
		t.Errorf("rent = %+v", rent)
	}
	car := snap.Expenses[1]
	if car.ID != "exp-car" || car.Frequency != core.OneTime || !car.StartDate.Equal(core.NewDate(2025, 1, 20)) {
		t.Errorf("car = %+v", car)
	}
	if snap.Revenue[0].Probability != 1 || snap.Revenue[1].Probability != 0.5 {
		t.Errorf("probabilities = %v, %v", snap.Revenue[0].Probability, snap.Revenue[1].Probability)
	}
	if snap.Revenue[1].ID != "rev-2" {
		t.Errorf("generated revenue ID = %q", snap.Revenue[1].ID)
	}
}

func TestDecodeYAML(t *testing.T) {
	p, err := Decode(strings.NewReader(yamlPlan), YAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	snap, err := p.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	gym := snap.Expenses[0]
	if gym.Frequency != core.Weekly || gym.EndDate == nil || !gym.EndDate.Equal(core.NewDate(2025, 3, 31)) {
		t.Errorf("gym = %+v", gym)
	}
	if snap.Revenue[0].ID != "rev-side" || snap.Revenue[0].PaymentDay != 15 {
		t.Errorf("revenue = %+v", snap.Revenue[0])
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	p, err := Decode(strings.NewReader(""), YAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if snap, err := p.Snapshot(); err != nil || len(snap.Expenses)+len(snap.Revenue) != 0 {
		t.Errorf("snapshot = %+v, %v", snap, err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"bad toml", TOML, "[[expense]\nname = 1"},
		{"unknown yaml field", YAML, "expenses:\n  - name: x\n    colour: red\n"},
		{"unknown format", Format("json"), "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input), tt.format); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSnapshotValidation(t *testing.T) {
	tests := []struct {
		name      string
		plan      Plan
		wantField string
	}{
		{
			name:      "bad start date",
			plan:      Plan{Expenses: []Expense{{Name: "x", Amount: 1, StartDate: "01/02/2025"}}},
			wantField: "start_date",
		},
		{
			name:      "missing payment day",
			plan:      Plan{Expenses: []Expense{{Name: "x", Amount: 1, Recurring: true, Frequency: "monthly", StartDate: "2025-01-01"}}},
			wantField: "paymentDay",
		},
		{
			name:      "unknown frequency",
			plan:      Plan{Revenue: []Revenue{{Source: "x", Amount: 1, Recurring: true, Frequency: "yearly", StartDate: "2025-01-01"}}},
			wantField: "frequency",
		},
		{
			name:      "probability out of range",
			plan:      Plan{Revenue: []Revenue{{Source: "x", Amount: 1, Probability: floatPtr(2), StartDate: "2025-01-01"}}},
			wantField: "probability",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.plan.Snapshot()
			var ve *core.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.wantField {
				t.Fatalf("err = %v, want validation error on %s", err, tt.wantField)
			}
		})
	}
}

func TestEncodeKeepsItems(t *testing.T) {
	end := core.NewDate(2025, 6, 30)
	snap := core.Snapshot{
		Expenses: []core.Expense{{ID: "exp-1", Name: "Rent", Amount: 1200, IsRecurring: true, Frequency: core.Monthly, StartDate: core.NewDate(2025, 1, 1), EndDate: &end, PaymentDay: 1}},
		Revenue:  []core.Revenue{{ID: "rev-1", Source: "Salary", Amount: 2500, Probability: 0.9, IsRecurring: true, Frequency: core.Weekly, StartDate: core.NewDate(2025, 1, 3)}},
	}

	for _, format := range []Format{TOML, YAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, FromSnapshot(snap), format); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			p, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode: %v\n%s", err, buf.String())
			}
			got, err := p.Snapshot()
			if err != nil {
				t.Fatalf("Snapshot: %v", err)
			}
			if got.Expenses[0].EndDate == nil || !got.Expenses[0].EndDate.Equal(end) || got.Expenses[0].PaymentDay != 1 {
				t.Errorf("expense = %+v", got.Expenses[0])
			}
			if got.Revenue[0].Probability != 0.9 || got.Revenue[0].Frequency != core.Weekly {
				t.Errorf("revenue = %+v", got.Revenue[0])
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := &Plan{Weeks: 3, Expenses: []Expense{{ID: "exp-a", Name: "Insurance", Amount: 90, StartDate: "2025-04-01"}}}

	for _, name := range []string{"plan.toml", "plan.yml"} {
		path := filepath.Join(dir, name)
		if err := Save(path, p); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("Load %s: %v", name, err)
		}
		if loaded.Weeks != 3 || len(loaded.Expenses) != 1 || loaded.Expenses[0].Name != "Insurance" {
			t.Errorf("%s loaded = %+v", name, loaded)
		}
	}

	if _, err := Load(filepath.Join(dir, "plan.json")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load json = %v, want ErrUnknownFormat", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func floatPtr(f float64) *float64 { return &f }
