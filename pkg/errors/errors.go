package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Errors surfaced by the contact-intake pipeline. Handlers map them to HTTP
// statuses with errors.Is / errors.As.
var (
	// ErrValidation indicates submitted fields broke one or more rules
	ErrValidation = errors.New("validation failed")

	// ErrRateLimited indicates the client key exhausted its window
	ErrRateLimited = errors.New("rate limited")

	// ErrNotifyFailed indicates outbound notification dispatch failed
	ErrNotifyFailed = errors.New("notification failed")

	// ErrMethodNotAllowed indicates the HTTP verb is not served by the route
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrInvalidInput indicates input that could not be decoded at all
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError carries the ordered list of violated rules.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError wraps violations. It returns nil when there are none.
func NewValidationError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// NotifyError wraps the transport failure behind a notification attempt.
// The cause is for logs only.
type NotifyError struct {
	Cause error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("%s: %v", ErrNotifyFailed, e.Cause)
}

func (e *NotifyError) Unwrap() []error {
	return []error{ErrNotifyFailed, e.Cause}
}

// NotifyFailure creates a notify error around cause
func NotifyFailure(cause error) error {
	return &NotifyError{Cause: cause}
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}
