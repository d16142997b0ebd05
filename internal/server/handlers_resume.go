package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-platform/internal/extraction"
	"github.com/jonathan/career-platform/internal/reconcile"
	"github.com/jonathan/career-platform/internal/server/middleware"
	"github.com/jonathan/career-platform/internal/session"
	"github.com/jonathan/career-platform/internal/types"
	"golang.org/x/sync/errgroup"
)

// multipartOverhead is slack on top of the file cap for the multipart
// envelope itself.
const multipartOverhead = 1 << 20

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// handleResumeUpload accepts a resume file, stores it, and invalidates any
// pending review built from the previous file.
func (s *Server) handleResumeUpload(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, extraction.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(extraction.MaxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
		return
	}

	// Clients label the upload kind; anything other than a resume is refused
	// here rather than parsed later. Older clients omit the field.
	if kind := r.FormValue("type"); kind != "" && kind != "resume" {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("unsupported upload type: %q", kind))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if err := extraction.ValidateUpload(header.Filename, header.Size); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	// The declared size passed validation; the actual bytes must too.
	if int64(len(data)) > extraction.MaxUploadBytes {
		err := &extraction.FileTooLargeError{Size: int64(len(data))}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// A fresh upload obsoletes any in-flight parse of the previous file.
	s.cancelParse(userID)

	// Remember the previous blob so it can be reclaimed once the new one is
	// recorded.
	var oldKey string
	if profile, err := s.db.GetProfile(r.Context(), userID); err == nil && profile != nil {
		oldKey = profile.ResumeKey
	}

	ext := extraction.Ext(header.Filename)
	key := fmt.Sprintf("resumes/%s/%d%s", userID, time.Now().UnixMilli(), ext)

	var url string
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var saveErr error
		url, saveErr = s.storage.Save(gctx, key, data, contentTypes[ext])
		return saveErr
	})
	g.Go(func() error {
		// Any pending review refers to the old file; drop it.
		return s.sessions.Delete(gctx, userID)
	})
	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to store resume")
		return
	}

	if err := s.db.SetResume(r.Context(), userID, url, key); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to record resume")
		return
	}

	// Best-effort cleanup of the replaced blob; a failure only leaves an
	// orphan behind, never a broken profile.
	if oldKey != "" && oldKey != key {
		if err := s.storage.Delete(r.Context(), oldKey); err != nil {
			log.Printf("Failed to delete replaced resume %s: %v", oldKey, err)
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"url":     url,
	})
}

// handleResumeParse extracts the stored resume's text, runs the parser, and
// saves the result as the user's pending review.
func (s *Server) handleResumeParse(w http.ResponseWriter, r *http.Request) {
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
	if profile.ResumeKey == "" {
		err := &ErrNoResumeOnFile{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	ctx, done := s.beginParse(userID, r.Context())
	defer done()

	data, err := s.storage.Fetch(ctx, profile.ResumeKey)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to fetch resume file")
		return
	}

	text, err := extraction.Text(profile.ResumeKey, data)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	parsed, err := s.parser.Parse(ctx, text)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.errorResponse(w, http.StatusConflict, "parse superseded by a newer request")
			return
		}
		s.errorResponse(w, http.StatusBadGateway, "resume parsing failed")
		return
	}

	review := &session.Review{
		UserID:    userID,
		ResumeKey: profile.ResumeKey,
		Parsed:    *parsed,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Put(ctx, review); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save review")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"parsed": parsed})
}

// handleResumeSuggestions returns the review panel rows for the pending
// parsed resume.
func (s *Server) handleResumeSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	review, profile, err := s.loadReview(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	rc := reconcile.ForRole(types.NormalizeRole(middleware.GetRole(r)))
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"suggestions": rc.Suggestions(&review.Parsed, profile),
	})
}

// applyRequest selects which suggested fields to merge. A nil selection
// means "use the defaults".
type applyRequest struct {
	Selections map[reconcile.Field]bool `json:"selections"`
}

// handleResumeApply merges the selected fields into the profile. The review
// session is cleared only after the profile write succeeds, so a failed
// apply can be retried.
func (s *Server) handleResumeApply(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, profile, err := s.loadReview(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	rc := reconcile.ForRole(types.NormalizeRole(middleware.GetRole(r)))

	sel := reconcile.Selection(req.Selections)
	if sel == nil {
		sel = rc.DefaultSelection(&review.Parsed, profile)
	}

	patch := rc.BuildPatch(&review.Parsed, profile, sel)

	updated := profile
	if !patch.IsEmpty() {
		updated, err = s.db.UpdateProfile(r.Context(), userID, patch)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to update profile")
			return
		}
		if updated == nil {
			err := &ErrProfileNotFound{UserID: userID}
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}

	if err := s.sessions.Delete(r.Context(), userID); err != nil {
		// The profile write already succeeded; the stale review ages out via
		// TTL, so report success anyway.
		s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "profile": updated})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "profile": updated})
}

// loadReview fetches the pending review and the profile together.
func (s *Server) loadReview(ctx context.Context, userID uuid.UUID) (*session.Review, *types.Profile, error) {
	review, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load review: %w", err)
	}
	if review == nil {
		return nil, nil, &ErrNoReviewSession{}
	}

	profile, err := s.db.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, nil, &ErrProfileNotFound{UserID: userID}
	}
	return review, profile, nil
}

// beginParse registers a parse for the user, cancelling any previous one.
// The returned done func releases only this parse's registration, so a
// superseded parse cannot tear down its successor.
func (s *Server) beginParse(userID uuid.UUID, parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	op := &parseOp{cancel: cancel}

	s.parseMu.Lock()
	if prev, ok := s.parseOps[userID]; ok {
		prev.cancel()
	}
	s.parseOps[userID] = op
	s.parseMu.Unlock()

	done := func() {
		s.parseMu.Lock()
		defer s.parseMu.Unlock()
		cancel()
		if s.parseOps[userID] == op {
			delete(s.parseOps, userID)
		}
	}
	return ctx, done
}

func (s *Server) cancelParse(userID uuid.UUID) {
	s.parseMu.Lock()
	defer s.parseMu.Unlock()
	if op, ok := s.parseOps[userID]; ok {
		op.cancel()
		delete(s.parseOps, userID)
	}
}

func (s *Server) cancelAllParses() {
	s.parseMu.Lock()
	defer s.parseMu.Unlock()
	for userID, op := range s.parseOps {
		op.cancel()
		delete(s.parseOps, userID)
	}
}
