package utils

import (
	"regexp"
	"time"
)

// DateLayout is the wire format for all dates accepted by the API.
const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// FieldErrors collects per-field validation messages. Handlers return it
// in the response body so clients can attach messages to form fields.
type FieldErrors map[string]string

func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e FieldErrors) OK() bool {
	return len(e) == 0
}

func Require(e FieldErrors, field, value string) {
	if value == "" {
		e.Add(field, "This field is required.")
	}
}

func RequireEmail(e FieldErrors, field, value string) {
	if value == "" {
		e.Add(field, "This field is required.")
		return
	}
	if !emailPattern.MatchString(value) {
		e.Add(field, "Must be a valid email address.")
	}
}

func RequirePositive(e FieldErrors, field string, value float64) {
	if value <= 0 {
		e.Add(field, "Must be a positive number.")
	}
}

func RequireOneOf(e FieldErrors, field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e.Add(field, "Unsupported value.")
}

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// RequireDate parses a required YYYY-MM-DD value, recording an error on
// failure and returning the zero time.
func RequireDate(e FieldErrors, field, value string) time.Time {
	if value == "" {
		e.Add(field, "This field is required.")
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		e.Add(field, "Must be a date in YYYY-MM-DD format.")
		return time.Time{}
	}
	return t
}

// OptionalDate parses an optional YYYY-MM-DD value.
func OptionalDate(e FieldErrors, field, value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		e.Add(field, "Must be a date in YYYY-MM-DD format.")
		return nil
	}
	return &t
}
