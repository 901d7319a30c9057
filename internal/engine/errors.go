// ABOUTME: Typed validation errors for engine inputs.
// ABOUTME: Out-of-range values are rejected, never clamped.
package engine

import "fmt"

// ValidationError reports a caller-supplied value outside its legal
// range. Clamping would mask bad upstream data, so we reject instead.
type ValidationError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

func validateSlider(field string, v int) error {
	if v < 1 || v > 5 {
		return &ValidationError{Field: field, Value: v, Min: 1, Max: 5}
	}
	return nil
}
