// This file holds request decoding helpers shared by the JSON handlers.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cashflow/internal/core"
)

// MaxBodyBytes bounds every JSON request body.
const MaxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads a single JSON object into dst. Unknown fields are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("unsupported content type %q", ct)
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errEmptyBody
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		default:
			return fmt.Errorf("malformed JSON: %w", err)
		}
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// ForecastQuery holds the query parameters of GET /api/forecast.
type ForecastQuery struct {
	StartDate      core.Date
	NumWeeks       *int
	InitialBalance float64
}

// ParseForecastQuery reads startDate, numWeeks and initialBalance. startDate
// defaults to today; a missing numWeeks is left nil.
func ParseForecastQuery(query url.Values, today core.Date) (ForecastQuery, error) {
	q := ForecastQuery{StartDate: today}

	if v := strings.TrimSpace(query.Get("startDate")); v != "" {
		d, err := core.ParseDateField("startDate", v)
		if err != nil {
			return ForecastQuery{}, err
		}
		q.StartDate = d
	}
	if v := strings.TrimSpace(query.Get("numWeeks")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ForecastQuery{}, core.NewValidationError("numWeeks", "numWeeks must be an integer")
		}
		q.NumWeeks = &n
	}
	if v := strings.TrimSpace(query.Get("initialBalance")); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return ForecastQuery{}, core.NewValidationError("initialBalance", "initialBalance must be a number")
		}
		q.InitialBalance = amount
	}
	return q, nil
}

// sanitizeInput removes control characters except tab, newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
