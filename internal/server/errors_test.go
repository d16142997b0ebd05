package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/career-platform/internal/extraction"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.c"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"forbidden", &ErrForbidden{}, http.StatusForbidden},
		{"user not found", &ErrUserNotFound{}, http.StatusNotFound},
		{"profile not found", &ErrProfileNotFound{}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "email", Message: "required"}, http.StatusBadRequest},
		{"no resume on file", &ErrNoResumeOnFile{}, http.StatusConflict},
		{"no review session", &ErrNoReviewSession{}, http.StatusConflict},
		{"file too large", &extraction.FileTooLargeError{Size: 11 << 20}, http.StatusRequestEntityTooLarge},
		{"unsupported type", &extraction.UnsupportedTypeError{Extension: ".exe"}, http.StatusUnsupportedMediaType},
		{"wrapped upload error", fmt.Errorf("upload: %w", &extraction.UnsupportedTypeError{Extension: ".txt"}), http.StatusUnsupportedMediaType},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
