// Package validation checks metadata descriptors and reports problems as
// lists of messages instead of failing.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Result is the outcome of checking one descriptor
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Valid returns a passing result
func Valid() Result {
	return Result{IsValid: true, Errors: []string{}}
}

// Invalid returns a failing result holding messages
func Invalid(messages ...string) Result {
	r := Valid()
	for _, m := range messages {
		r.Add(m)
	}
	return r
}

// Add records an error message
func (r *Result) Add(message string) {
	r.Errors = append(r.Errors, message)
	r.IsValid = false
}

// Addf records a formatted error message
func (r *Result) Addf(format string, args ...any) {
	r.Add(fmt.Sprintf(format, args...))
}

// Merge appends the errors of other
func (r *Result) Merge(other Result) {
	for _, m := range other.Errors {
		r.Add(m)
	}
	if !other.IsValid {
		r.IsValid = false
	}
}

// Count returns the number of errors
func (r Result) Count() int {
	return len(r.Errors)
}

// Err returns nil for a valid result and an *Error otherwise
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return &Error{Errors: append([]string(nil), r.Errors...)}
}

// Error adapts a failed Result to the error interface
type Error struct {
	Errors []string
}

// Error implements the error interface
func (e *Error) Error() string {
	switch len(e.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return fmt.Sprintf("validation failed: %s", e.Errors[0])
	default:
		return fmt.Sprintf("validation failed:\n%s", FormatErrors(e.Errors))
	}
}

// MarshalJSON implements json.Marshaler for custom JSON serialization
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Error  string   `json:"error"`
		Errors []string `json:"errors"`
	}{
		Error:  "validation_failed",
		Errors: e.Errors,
	})
}

// FormatErrors numbers the messages one per line: "1. first\n2. second"
func FormatErrors(errs []string) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = fmt.Sprintf("%d. %s", i+1, e)
	}
	return strings.Join(lines, "\n")
}
