package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct {
	userID uuid.UUID
	role   string
}

func (c *stubClaims) GetUserID() uuid.UUID { return c.userID }
func (c *stubClaims) GetRole() string      { return c.role }

type stubValidator struct {
	claims ClaimsGetter
	err    error
}

func (v *stubValidator) ValidateToken(string) (ClaimsGetter, error) {
	return v.claims, v.err
}

func TestAuthMiddleware_PassesIdentityThrough(t *testing.T) {
	userID := uuid.New()
	validator := &stubValidator{claims: &stubClaims{userID: userID, role: "recruiter"}}

	var gotID uuid.UUID
	var gotRole string
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r)
		require.NoError(t, err)
		gotID = id
		gotRole = GetRole(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/auth/profile/", nil)
	r.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "recruiter", gotRole)
}

func TestAuthMiddleware_RejectsBadHeaders(t *testing.T) {
	validator := &stubValidator{claims: &stubClaims{userID: uuid.New(), role: "job_seeker"}}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"bare token", "some-token"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/auth/profile/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_BearerPrefixCaseInsensitive(t *testing.T) {
	validator := &stubValidator{claims: &stubClaims{userID: uuid.New(), role: "job_seeker"}}
	called := false
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	r := httptest.NewRequest(http.MethodGet, "/auth/profile/", nil)
	r.Header.Set("Authorization", "bearer some-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestAuthMiddleware_RejectsInvalidToken(t *testing.T) {
	validator := &stubValidator{err: fmt.Errorf("signature mismatch")}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	r := httptest.NewRequest(http.MethodGet, "/auth/profile/", nil)
	r.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserID_MissingIdentity(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUserID(r)
	assert.Error(t, err)
	assert.Empty(t, GetRole(r))
}
