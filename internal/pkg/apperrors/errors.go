package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrNotFound        = errors.New("resource not found")
	ErrDuplicateEntity = errors.New("resource already exists")

	// Reference errors
	ErrInvalidReference = errors.New("referenced resource does not exist")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidIdentity    = errors.New("no account matches this identifier")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// InvalidReferenceError reports which entity kind a foreign key failed to resolve.
type InvalidReferenceError struct {
	Kind string
}

// Error implements the error interface
func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s reference", e.Kind)
}

// Is makes the error match ErrInvalidReference in errors.Is chains
func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

// NewInvalidReferenceError creates an InvalidReferenceError for the given kind
func NewInvalidReferenceError(kind string) error {
	return &InvalidReferenceError{Kind: kind}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewDuplicateEntityError creates a conflict error with a message
func NewDuplicateEntityError(message string) error {
	return &CustomError{
		Err:     ErrDuplicateEntity,
		Message: message,
	}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}
