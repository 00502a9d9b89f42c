// Package domain holds the password strength classifier, the tip calculator
// and the business-level errors the outer layers map to transport responses.
//
// The calculators themselves never fail: invalid input degrades to a defined
// result (a weak tier, or no tip quote). Errors here exist for adapters that
// need to explain those results or report unrelated failures.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates input failed a business rule.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a component cannot serve requests.
	ErrUnavailable = errors.New("unavailable")

	// ErrNoQuote indicates the tip calculator produced no result.
	ErrNoQuote = errors.New("no tip quote")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError names the field that failed and why.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error carrying the rejected value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// UnavailableError reports a component that cannot serve requests.
type UnavailableError struct {
	Component string
	Reason    string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s unavailable: %s", e.Component, e.Reason)
	}

	return e.Component + " unavailable"
}

// Unwrap returns ErrUnavailable.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error.
func NewUnavailableError(component, reason string) error {
	return &UnavailableError{Component: component, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// NewNoQuoteError wraps the reason a tip request produced no quote.
// The result matches both ErrNoQuote and the cause.
func NewNoQuoteError(cause error) error {
	if cause == nil {
		return ErrNoQuote
	}

	return fmt.Errorf("%w: %w", ErrNoQuote, cause)
}

// IsNoQuote checks if an error reports a missing tip quote.
func IsNoQuote(err error) bool {
	return errors.Is(err, ErrNoQuote)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
