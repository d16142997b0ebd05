// Package server provides the HTTP REST API for the career platform.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/career-platform/internal/extraction"
)

// ErrEmailAlreadyExists indicates email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates the user was not found.
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates the current password is incorrect.
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrProfileNotFound indicates the user has no profile row.
type ErrProfileNotFound struct {
	UserID uuid.UUID
}

func (e *ErrProfileNotFound) Error() string {
	return fmt.Sprintf("profile not found: %s", e.UserID)
}

// ErrNoResumeOnFile indicates a parse was requested before any upload.
type ErrNoResumeOnFile struct{}

func (e *ErrNoResumeOnFile) Error() string {
	return "no resume on file; upload one first"
}

// ErrNoReviewSession indicates suggestions or apply were requested without a
// parsed resume pending review.
type ErrNoReviewSession struct{}

func (e *ErrNoReviewSession) Error() string {
	return "no parsed resume pending review"
}

// ErrForbidden indicates the authenticated role lacks the required
// permission level.
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "insufficient permissions"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		tooLarge    *extraction.FileTooLargeError
		unsupported *extraction.UnsupportedTypeError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrUserNotFound, *ErrProfileNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrNoResumeOnFile, *ErrNoReviewSession:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
