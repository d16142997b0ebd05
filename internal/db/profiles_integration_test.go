//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/career-platform/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests require a running PostgreSQL database.
// Set TEST_DATABASE_URL to run them.

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := Connect(context.Background(), dsn)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)
	return db
}

func createTestUser(t *testing.T, db *DB) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id, err := db.CreateUser(ctx,
		"Test User",
		"test-"+uuid.NewString()+"@example.com",
		"",
		types.RoleJobSeeker,
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.pool.Exec(ctx, "DELETE FROM profiles WHERE user_id = $1", id)
		_, _ = db.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	})
	return id
}

func TestIntegration_UserLifecycle(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	id := createTestUser(t, db)

	u, err := db.GetUser(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, types.RoleJobSeeker, u.Role)
	assert.False(t, u.PasswordSet)

	exists, err := db.CheckEmailExists(ctx, u.Email)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, db.UpdatePassword(ctx, id, "hash"))
	u, err = db.GetUser(ctx, id)
	require.NoError(t, err)
	assert.True(t, u.PasswordSet)
}

func TestIntegration_GetUserAbsent(t *testing.T) {
	db := getTestDB(t)

	u, err := db.GetUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestIntegration_ProfilePatchRoundTrip(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	id := createTestUser(t, db)

	require.NoError(t, db.EnsureProfile(ctx, id))
	require.NoError(t, db.EnsureProfile(ctx, id), "ensure must be idempotent")

	title := "Backend Engineer"
	updated, err := db.UpdateProfile(ctx, id, &types.ProfilePatch{
		JobTitle: &title,
		Skills:   []types.Skill{{ID: "s-1", Name: "Go", Proficiency: "advanced"}},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Backend Engineer", updated.JobTitle)

	stored, err := db.GetProfile(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Backend Engineer", stored.JobTitle)
	require.Len(t, stored.Skills, 1)
	assert.Equal(t, "Go", stored.Skills[0].Name)
}

func TestIntegration_SetResume(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	id := createTestUser(t, db)

	require.NoError(t, db.EnsureProfile(ctx, id))
	require.NoError(t, db.SetResume(ctx, id, "https://files/r.pdf", "resumes/r.pdf"))

	p, err := db.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://files/r.pdf", p.ResumeURL)
	assert.Equal(t, "resumes/r.pdf", p.ResumeKey)
}
