// Package domain contains the flashcard model, its pure operations and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/CLI output by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested subject or topic does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a state conflict such as a pending confirmation
	// or a screen transition the current screen does not allow.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates an incomplete or invalid form submission.
	ErrValidation = errors.New("validation failed")

	// ErrMalformed indicates interchange input that could not be parsed.
	ErrMalformed = errors.New("malformed input")
)

// ReasonConfirmationRequired is the conflict reason used when a destructive
// action needs an explicit yes/no answer that was not supplied.
const ReasonConfirmationRequired = "confirmation required"

// ReasonChangedConcurrently is the conflict reason used when the collection
// changed under an operation after it decided what to do.
const ReasonChangedConcurrently = "changed concurrently"

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

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError provides context for conflict errors.
type ConflictError struct {
	Entity  string
	Reason  string
	Details string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s conflict: %s (%s)", e.Entity, e.Reason, e.Details)
	}

	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error with context.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// NewConflictErrorWithDetails creates a conflict error with additional details.
func NewConflictErrorWithDetails(entity, reason, details string) error {
	return &ConflictError{Entity: entity, Reason: reason, Details: details}
}

// ValidationError provides context for validation errors.
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

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// MalformedError provides context for unparseable interchange input.
type MalformedError struct {
	Source string
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	msg := fmt.Sprintf("malformed %s: %s", e.Source, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *MalformedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrMalformed}
	}

	return []error{ErrMalformed, e.Cause}
}

// NewMalformedError creates a malformed input error.
func NewMalformedError(source, reason string, cause error) error {
	return &MalformedError{Source: source, Reason: reason, Cause: cause}
}

// NewConfirmationRequiredError reports that an action on entity id needs confirmation.
func NewConfirmationRequiredError(entity, id string) error {
	return &ConflictError{Entity: entity, Reason: ReasonConfirmationRequired, Details: id}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsMalformed checks if an error is a malformed input error.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}

// IsConfirmationRequired checks if an error asks for a missing confirmation.
func IsConfirmationRequired(err error) bool {
	var conflict *ConflictError

	return errors.As(err, &conflict) && conflict.Reason == ReasonConfirmationRequired
}
