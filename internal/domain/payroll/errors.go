package payroll

import "errors"

// ErrCancelled is returned when a prompt was withdrawn by the user. The
// calculation aborts with no partial payslip.
var ErrCancelled = errors.New("calculation cancelled")

// ValidationError reports malformed input that was caught before any
// pipeline ran.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
