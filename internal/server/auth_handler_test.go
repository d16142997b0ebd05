package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/career-platform/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func TestRegister_Success(t *testing.T) {
	env := newTestEnv()

	w := postJSON(t, env.server.authHandler.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     "recruiter",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, types.RoleRecruiter, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	claims, err := env.server.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, types.RoleRecruiter, claims.Role)

	// Registration must leave a profile behind so reads never 404.
	profile, err := env.db.GetProfile(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, profile)
}

func TestRegister_NormalizesLegacyRole(t *testing.T) {
	env := newTestEnv()

	w := postJSON(t, env.server.authHandler.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     "jobseeker",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.RoleJobSeeker, resp.User.Role)
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	env := newTestEnv()

	w := postJSON(t, env.server.authHandler.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     "superuser",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
}

func TestRegisterService_RejectsUnknownRole(t *testing.T) {
	// The service guards the role on its own, independent of the handler's
	// request validation.
	env := newTestEnv()

	_, err := env.server.userService.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     "superuser",
	})

	var verr *ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv()
	req := types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     "job_seeker",
	}

	w := postJSON(t, env.server.authHandler.Register, "/auth/register", req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, env.server.authHandler.Register, "/auth/register", req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestLogin_RoundTrip(t *testing.T) {
	env := newTestEnv()

	w := postJSON(t, env.server.authHandler.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     "job_seeker",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, env.server.authHandler.Login, "/auth/login", types.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ada@example.com", resp.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv()

	w := postJSON(t, env.server.authHandler.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     "job_seeker",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, env.server.authHandler.Login, "/auth/login", types.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong horse",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv()

	w := postJSON(t, env.server.authHandler.Login, "/auth/login", types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdatePassword_Flow(t *testing.T) {
	env := newTestEnv()

	w := postJSON(t, env.server.authHandler.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     "job_seeker",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	userID := resp.User.ID

	update := func(current, next string) *httptest.ResponseRecorder {
		payload, err := json.Marshal(types.UpdatePasswordRequest{
			CurrentPassword: current,
			NewPassword:     next,
		})
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		env.server.authHandler.UpdatePassword(w, r, userID)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, update("wrong horse", "battery staple").Code)
	require.Equal(t, http.StatusOK, update("correct horse", "battery staple").Code)

	w = postJSON(t, env.server.authHandler.Login, "/auth/login", types.LoginRequest{
		Email:    "ada@example.com",
		Password: "battery staple",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
