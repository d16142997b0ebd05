package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store for tests and single-node development.
type MemoryStore struct {
	mu      sync.RWMutex
	reviews map[uuid.UUID]*Review
}

// NewMemoryStore creates an empty in-memory review store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reviews: make(map[uuid.UUID]*Review)}
}

// Put saves the review, replacing any previous one for the same user.
func (s *MemoryStore) Put(_ context.Context, review *Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *review
	s.reviews[review.UserID] = &copied
	return nil
}

// Get returns the user's pending review, or (nil, nil) when none exists.
func (s *MemoryStore) Get(_ context.Context, userID uuid.UUID) (*Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	review, ok := s.reviews[userID]
	if !ok {
		return nil, nil
	}
	copied := *review
	return &copied, nil
}

// Delete discards the user's pending review.
func (s *MemoryStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reviews, userID)
	return nil
}
