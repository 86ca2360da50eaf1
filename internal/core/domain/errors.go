package domain

import (
	"errors"
	"fmt"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("email already exists")
var ErrRoleNotFound = errors.New("role not found")
var ErrRoleExists = errors.New("role already exists")
var ErrUnauthorized = errors.New("unauthorized")
var ErrInvalidToken = errors.New("invalid token")
var ErrForbidden = errors.New("access forbidden")

// ErrInvalidCredentials is the parent of every login rejection.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnknownEmail and ErrWrongPassword are kept apart so clients can tell
// them apart, which discloses whether an account exists.
var (
	ErrUnknownEmail  = fmt.Errorf("%w: unknown email", ErrInvalidCredentials)
	ErrWrongPassword = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)
)

// ErrValidation matches every *ValidationError through errors.Is.
var ErrValidation = errors.New("validation failed")

var (
	ErrMissingFields    = NewValidationError("All fields are required")
	ErrRoleNameRequired = NewValidationError("Role name is required")
	ErrPasswordTooLong  = NewValidationError("Password is too long")
)

// ValidationError is a client input problem. Message is safe to return as-is.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
