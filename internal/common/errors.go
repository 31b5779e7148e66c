// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Analysis errors.
	ErrNoTransactions = errors.New("no transactions to analyze")
	ErrInvalidAmount  = errors.New("invalid transaction amount")

	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Ingest errors.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoAmountColumn    = errors.New("no amount column found")

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
