package errors

import (
	"fmt"
	"strconv"
)

// ValidationError reports a single parameter that failed validation.
//
// Value is the offending input and Limit the bound it violated. Limit is NaN
// when the check has no numeric bound (e.g. a non-finite value).
type ValidationError struct {
	Code   Code    `json:"code"`
	Field  string  `json:"field"`
	Value  float64 `json:"value"`
	Limit  float64 `json:"limit"`
	Reason string  `json:"reason"`
}

// Invalid creates a ValidationError.
func Invalid(code Code, field string, value, limit float64, reason string) *ValidationError {
	return &ValidationError{
		Code:   code,
		Field:  field,
		Value:  value,
		Limit:  limit,
		Reason: reason,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message())
}

// ErrorCode returns the machine-readable code.
func (e *ValidationError) ErrorCode() Code { return e.Code }

// Message renders the error without its code, for display to users.
// Example: "separation = 0.2: column pitch below minimum (limit 0.5)"
func (e *ValidationError) Message() string {
	msg := fmt.Sprintf("%s = %s: %s", e.Field, formatFloat(e.Value), e.Reason)
	if e.Limit == e.Limit { // not NaN
		msg += fmt.Sprintf(" (limit %s)", formatFloat(e.Limit))
	}
	return msg
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
