// Package apperror defines the application's error taxonomy.
//
// Services return these errors; the HTTP layer maps them to status codes
// with errors.Is. The three login failure kinds (no such account, wrong
// password, inactive account) are distinct sentinels so tests and logs can
// tell them apart, even though handlers collapse all of them to 401.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("duplicate account")
	ErrNotFound   = errors.New("not found")

	// Unauthorized family — all map to 401 at the HTTP boundary.
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrAccountInactive   = errors.New("account inactive")
	ErrInvalidToken      = errors.New("invalid or expired token")

	ErrUpstream    = errors.New("upstream failure")
	ErrPersistence = errors.New("persistence failure")
)

// AppError carries a sentinel (for errors.Is classification) plus the
// human-readable message the client is allowed to see.
type AppError struct {
	Err     error  // sentinel, drives the HTTP status
	Message string // safe to return to the client
	Field   string // optional: input field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message, Field: field}
}

func DuplicateAccount() *AppError {
	return &AppError{
		Err:     ErrDuplicate,
		Message: "Email already registered. Please login instead.",
		Field:   "email",
	}
}

func AccountNotFound() *AppError {
	return &AppError{Err: ErrAccountNotFound, Message: "Please signup first"}
}

func InvalidCredential() *AppError {
	return &AppError{Err: ErrInvalidCredential, Message: "Invalid password"}
}

func AccountInactive() *AppError {
	return &AppError{Err: ErrAccountInactive, Message: "Account is inactive. Please contact support."}
}

func InvalidToken() *AppError {
	return &AppError{Err: ErrInvalidToken, Message: "Could not validate credentials"}
}

func NotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message}
}

// Upstream wraps a provider failure. The cause is kept for logs via Unwrap
// chains but the client only ever sees the message.
func Upstream(message string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrUpstream, cause),
		Message: message,
	}
}

func Persistence(message string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrPersistence, cause),
		Message: message,
	}
}
