package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore is the registry of live session ids backed by Redis.
// Key format: session:<sid>. A key's absence means the session is revoked or
// expired; the resolver then treats the bearer as anonymous.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Put registers a session id with the given lifetime.
func (s *SessionStore) Put(ctx context.Context, sid string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(sid), "1", ttl).Err()
}

// Exists reports whether the session id is still live.
func (s *SessionStore) Exists(ctx context.Context, sid string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sid)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

// Delete revokes a session id. Revoking an unknown id is not an error.
func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	return s.client.Del(ctx, s.key(sid)).Err()
}

func (s *SessionStore) key(sid string) string {
	return "session:" + sid
}
