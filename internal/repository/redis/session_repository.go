package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"adRecoDashboard/business/session"
	"adRecoDashboard/domain"
)

type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

var _ session.Repository = (*SessionRepository)(nil)

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(id string) string {
	// key format: "session:{session_id}"
	return fmt.Sprintf("session:%s", id)
}

// Save stores the session and restarts its TTL.
func (r *SessionRepository) Save(ctx context.Context, s domain.Session) error {
	jsonData, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	err = r.client.Set(ctx, sessionKey(s.ID), jsonData, r.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (domain.Session, error) {
	val, err := r.client.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return domain.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return s, nil
}
