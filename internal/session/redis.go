package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps pending reviews in Redis under a shared key prefix with a
// TTL, so abandoned reviews age out on their own.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed review store.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "resume-review"
	}
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", s.prefix, userID)
}

// Put saves the review, replacing any previous one for the same user.
func (s *RedisStore) Put(ctx context.Context, review *Review) error {
	payload, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("failed to encode review: %w", err)
	}
	if err := s.client.Set(ctx, s.key(review.UserID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get returns the user's pending review, or (nil, nil) when none exists.
func (s *RedisStore) Get(ctx context.Context, userID uuid.UUID) (*Review, error) {
	payload, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var review Review
	if err := json.Unmarshal(payload, &review); err != nil {
		return nil, fmt.Errorf("failed to decode review: %w", err)
	}
	return &review, nil
}

// Delete discards the user's pending review.
func (s *RedisStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
