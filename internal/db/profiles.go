package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/career-platform/internal/types"
)

// Profiles live in a single row per user: the structured fields the client
// exchanges are one JSONB document, with the resume pointers alongside so
// uploads never rewrite the document.

func scanProfile(row pgx.Row) (*types.Profile, error) {
	var (
		userID    uuid.UUID
		data      []byte
		resumeURL string
		resumeKey string
		p         types.Profile
	)
	if err := row.Scan(&userID, &data, &resumeURL, &resumeKey, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode profile document: %w", err)
		}
	}
	p.UserID = userID
	p.ResumeURL = resumeURL
	p.ResumeKey = resumeKey
	return &p, nil
}

func profileDocument(p *types.Profile) ([]byte, error) {
	// UserID, resume pointers, and timestamps live in their own columns.
	doc := *p
	doc.UserID = uuid.Nil
	doc.ResumeURL = ""
	doc.ResumeKey = ""
	data, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile document: %w", err)
	}
	return data, nil
}

// GetProfile retrieves a user's profile, or (nil, nil) when absent.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		`SELECT user_id, data, COALESCE(resume_url, ''), COALESCE(resume_key, ''), created_at, updated_at
		 FROM profiles WHERE user_id = $1`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// EnsureProfile creates an empty profile row for the user if none exists.
func (db *DB) EnsureProfile(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, data)
		 VALUES ($1, '{}'::jsonb)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure profile: %w", err)
	}
	return nil
}

// UpdateProfile applies a merge patch to the user's profile inside a
// transaction and returns the updated profile. The row is locked for the
// read-modify-write so concurrent applies serialize.
func (db *DB) UpdateProfile(ctx context.Context, userID uuid.UUID, patch *types.ProfilePatch) (*types.Profile, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	profile, err := scanProfile(tx.QueryRow(ctx,
		`SELECT user_id, data, COALESCE(resume_url, ''), COALESCE(resume_key, ''), created_at, updated_at
		 FROM profiles WHERE user_id = $1 FOR UPDATE`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock profile: %w", err)
	}

	patch.ApplyTo(profile)

	data, err := profileDocument(profile)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx,
		`UPDATE profiles SET data = $1, updated_at = NOW()
		 WHERE user_id = $2
		 RETURNING updated_at`,
		data, userID,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit profile update: %w", err)
	}
	return profile, nil
}

// SetResume records the user's current resume file.
func (db *DB) SetResume(ctx context.Context, userID uuid.UUID, url, key string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE profiles SET resume_url = $1, resume_key = $2, updated_at = NOW()
		 WHERE user_id = $3`,
		url, key, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", userID)
	}
	return nil
}
