// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Request errors.
	ErrBadInput = errors.New("no message provided")

	// Artifact errors.
	ErrArtifactUnavailable = errors.New("model artifacts unavailable")
	ErrDimensionMismatch   = errors.New("vector dimension mismatch")
	ErrIndexEmpty          = errors.New("similarity index is empty")
	ErrMatchedSetMismatch  = errors.New("index and catalog are not a matched set")

	// Database errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
