// Package session stores pending resume reviews: the parsed document a user
// has uploaded but not yet applied to their profile.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-platform/internal/types"
)

// Review is one pending resume review. It survives until the user applies
// their selections, uploads a replacement resume, or the TTL lapses.
type Review struct {
	UserID    uuid.UUID          `json:"user_id"`
	ResumeKey string             `json:"resume_key"`
	Parsed    types.ParsedResume `json:"parsed"`
	CreatedAt time.Time          `json:"created_at"`
}

// Store persists at most one pending review per user.
type Store interface {
	// Put saves the user's pending review, replacing any previous one.
	Put(ctx context.Context, review *Review) error
	// Get returns the user's pending review, or (nil, nil) when none exists.
	Get(ctx context.Context, userID uuid.UUID) (*Review, error)
	// Delete discards the user's pending review. Deleting an absent review
	// is not an error.
	Delete(ctx context.Context, userID uuid.UUID) error
}
