package errors

import (
	"math"
	"strings"
)

// ValidateFinite rejects NaN and infinite values.
// The name identifies the offending field in the returned message.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number, got %v", name, v)
	}
	return nil
}

// ValidatePositive checks that v is finite and strictly greater than zero.
func ValidatePositive(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be > 0, got %g", name, v)
	}
	return nil
}

// ValidateNonNegative checks that v is finite and not below zero.
func ValidateNonNegative(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must be >= 0, got %g", name, v)
	}
	return nil
}

// ValidateChoice checks that value is one of the allowed choices.
// Matching is exact; callers normalise case beforehand.
func ValidateChoice(code Code, name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(code, "invalid %s: %q (must be one of: %s)", name, value, strings.Join(allowed, ", "))
}
