package spec

import "fmt"

// ValidationError reports a request field outside its contract.
// Normalization never fails on missing optional fields, only on
// structurally invalid values.
type ValidationError struct {
	// Field is the offending request field, e.g. "kind" or "format".
	Field string
	// Value is the rejected value as supplied.
	Value any
	// Reason describes the violated constraint.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s (got %v)", e.Field, e.Reason, e.Value)
}

func invalidField(field string, value any, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
