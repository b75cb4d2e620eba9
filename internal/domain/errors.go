package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes the API distinguishes.
// Repository and handler code wrap these with %w and branch on them
// with errors.Is, the same way sql.ErrNoRows is handled.
var (
	ErrValidation    = errors.New("invalid input")
	ErrConflict      = errors.New("conflict")
	ErrAuthorization = errors.New("not allowed")
	ErrNotFound      = errors.New("not found")
	ErrPersistence   = errors.New("persistence failure")
)

func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NewConflictError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func NewAuthorizationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAuthorization, fmt.Sprintf(format, args...))
}

func NewNotFoundError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
