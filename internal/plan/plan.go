// Package plan reads and writes schedule items as TOML or YAML files, for
// offline forecasts and for moving items between stores.
package plan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"cashflow/internal/core"
)

type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown plan format")

// Plan is the file form of a snapshot plus optional forecast defaults.
type Plan struct {
	StartDate      Date      `toml:"start_date,omitempty" yaml:"start_date,omitempty"`
	Weeks          int       `toml:"weeks,omitempty" yaml:"weeks,omitempty"`
	InitialBalance float64   `toml:"initial_balance,omitempty" yaml:"initial_balance,omitempty"`
	Currency       string    `toml:"currency,omitempty" yaml:"currency,omitempty"`
	Expenses       []Expense `toml:"expense" yaml:"expenses"`
	Revenue        []Revenue `toml:"revenue" yaml:"revenue"`
}

type Expense struct {
	ID         string  `toml:"id,omitempty" yaml:"id,omitempty"`
	Name       string  `toml:"name" yaml:"name"`
	Amount     float64 `toml:"amount" yaml:"amount"`
	Category   string  `toml:"category,omitempty" yaml:"category,omitempty"`
	Recurring  bool    `toml:"recurring" yaml:"recurring"`
	Frequency  string  `toml:"frequency,omitempty" yaml:"frequency,omitempty"`
	StartDate  Date    `toml:"start_date" yaml:"start_date"`
	EndDate    Date    `toml:"end_date,omitempty" yaml:"end_date,omitempty"`
	PaymentDay int     `toml:"payment_day,omitempty" yaml:"payment_day,omitempty"`
	Notes      string  `toml:"notes,omitempty" yaml:"notes,omitempty"`
}

type Revenue struct {
	ID          string   `toml:"id,omitempty" yaml:"id,omitempty"`
	Source      string   `toml:"source" yaml:"source"`
	Amount      float64  `toml:"amount" yaml:"amount"`
	Probability *float64 `toml:"probability,omitempty" yaml:"probability,omitempty"`
	Recurring   bool     `toml:"recurring" yaml:"recurring"`
	Frequency   string   `toml:"frequency,omitempty" yaml:"frequency,omitempty"`
	StartDate   Date     `toml:"start_date" yaml:"start_date"`
	EndDate     Date     `toml:"end_date,omitempty" yaml:"end_date,omitempty"`
	PaymentDay  int      `toml:"payment_day,omitempty" yaml:"payment_day,omitempty"`
	Notes       string   `toml:"notes,omitempty" yaml:"notes,omitempty"`
}

// Date is a date as written in a plan file. TOML files may use a native
// date or a quoted string.
type Date string

func (d *Date) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*d = Date(x)
	case time.Time:
		*d = Date(x.Format(core.DateLayout))
	default:
		return fmt.Errorf("unsupported date value %v (%T)", v, v)
	}
	return nil
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Load reads a plan file.
func Load(path string) (*Plan, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	return Decode(bytes.NewReader(data), format)
}

// Decode parses a plan in the given format.
func Decode(r io.Reader, format Format) (*Plan, error) {
	var p Plan
	switch format {
	case TOML:
		if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
			return nil, fmt.Errorf("parsing plan: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing plan: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &p, nil
}

// Encode writes p in the given format.
func Encode(w io.Writer, p *Plan, format Format) error {
	switch format {
	case TOML:
		return toml.NewEncoder(w).Encode(p)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes p to path, choosing the format from the extension.
func Save(path string, p *Plan) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating plan file: %w", err)
	}
	if err := Encode(f, p, format); err != nil {
		f.Close()
		return fmt.Errorf("writing plan: %w", err)
	}
	return f.Close()
}
