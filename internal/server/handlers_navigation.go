package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/career-platform/internal/navigation"
	"github.com/jonathan/career-platform/internal/server/middleware"
)

// handleNavigation returns the menu configuration for the caller's role.
func (s *Server) handleNavigation(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetRole(r)
	s.jsonResponse(w, http.StatusOK, navigation.ByRole(role))
}

// handleAdminListUsers lists accounts; administrators only.
func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetRole(r)
	if !navigation.HasPermissionLevel(role, navigation.LevelAdministrator) {
		err := &ErrForbidden{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1000 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = n
	}

	dbUsers, err := s.db.ListUsers(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	users := make([]any, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, toAPIUser(&dbUsers[i]))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"users": users})
}
