// Package apperror defines the application's error taxonomy.
//
// Services return these domain errors; the HTTP layer translates them to
// status codes with errors.Is/errors.As. Sentinels mark the category, the
// AppError wrapper carries the user-facing message and the offending field.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type AppError struct {
	Err     error  // category sentinel
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// UsernameTaken reports a registration conflict. The message names the
// contested username so the caller can render it; retrying with the same
// username is pointless.
func UsernameTaken(username string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("Username '%s' is already taken", username),
		Field:   "username",
	}
}

// InvalidCredentials reports a failed login. The message is identical
// for an unknown username and a wrong password so callers cannot
// enumerate accounts.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: "invalid username or password",
	}
}

// Unauthorized returns an AppError for a missing, malformed, or expired
// token. HTTP handlers map this to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}
