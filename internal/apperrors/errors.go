package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the action clashes with existing state, such as a deal already owned on the table.
var ErrConflict = errors.New("conflict")

// ErrStaleVersion is returned by a store when a versioned update lost a race with another writer.
var ErrStaleVersion = errors.New("stale version")

// ErrInsufficientFunds indicates a cash or outstanding loan balance check failed.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrFrozen indicates the action is disallowed while the team's assets are frozen.
var ErrFrozen = errors.New("assets are frozen")

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// ErrStoreUnavailable separates infrastructure failures from caller mistakes.
var ErrStoreUnavailable = errors.New("store unavailable")

// AppError carries an HTTP-ish status code alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError. Store failures are wrapped so errors.Is matches ErrStoreUnavailable.
func NewAppError(code int, message string, err error) *AppError {
	if code >= 500 && err != nil && !errors.Is(err, ErrStoreUnavailable) {
		err = fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewConflictError wraps ErrConflict with a detail message.
func NewConflictError(message string) error {
	return fmt.Errorf("%w: %s", ErrConflict, message)
}
