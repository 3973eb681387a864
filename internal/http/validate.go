package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"cashflow/internal/core"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report JSON field names instead of Go struct field names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldError is one failed rule on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RequestError is returned when a request body cannot be bound or fails validation.
type RequestError struct {
	Message string       `json:"error"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *RequestError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// ReadAndValidateRequest decodes the JSON body into req, applies `default`
// tags and runs the `validate` rules.
func ReadAndValidateRequest(w http.ResponseWriter, r *http.Request, req any) error {
	if err := decodeJSON(w, r, req); err != nil {
		return &RequestError{Message: err.Error()}
	}
	if err := defaults.Set(req); err != nil {
		return &RequestError{Message: fmt.Sprintf("apply defaults: %v", err)}
	}
	if err := validate.StructCtx(r.Context(), req); err != nil {
		return validatorDefaultRules(err)
	}
	return nil
}

func validatorDefaultRules(err error) *RequestError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]FieldError, 0, len(validationErrors))
		for _, e := range validationErrors {
			fields = append(fields, FieldError{
				Field:   e.Field(),
				Code:    "ERR_" + strings.ToUpper(e.Tag()),
				Message: getErrorMessage(e),
			})
		}
		return &RequestError{Message: "validation failed", Fields: fields}
	}
	return &RequestError{Message: err.Error()}
}

// fromValidationError turns a domain validation failure into the same shape
// the validator produces.
func fromValidationError(ve *core.ValidationError) *RequestError {
	code := "ERR_INVALID"
	switch {
	case errors.Is(ve, core.ErrInvalidDate):
		code = "ERR_DATE"
	case errors.Is(ve, core.ErrInvalidFrequency):
		code = "ERR_FREQUENCY"
	case errors.Is(ve, core.ErrInvalidAmount):
		code = "ERR_AMOUNT"
	case errors.Is(ve, core.ErrEmptyName):
		code = "ERR_REQUIRED"
	}
	if ve.Field == "" {
		return &RequestError{Message: ve.Message}
	}
	return &RequestError{
		Message: "validation failed",
		Fields:  []FieldError{{Field: ve.Field, Code: code, Message: ve.Message}},
	}
}

func getErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
