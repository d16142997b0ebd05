package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/career-platform/internal/server/middleware"
	"github.com/jonathan/career-platform/internal/types"
)

// handleGetProfile returns the authenticated user's profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		err := &ErrProfileNotFound{UserID: userID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handlePatchProfile applies a client-supplied merge patch to the profile.
// This is the manual edit path; resume-driven updates go through apply.
func (s *Server) handlePatchProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var patch types.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if patch.IsEmpty() {
		s.errorResponse(w, http.StatusBadRequest, "patch contains no changes")
		return
	}

	updated, err := s.db.UpdateProfile(r.Context(), userID, &patch)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	if updated == nil {
		err := &ErrProfileNotFound{UserID: userID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}
