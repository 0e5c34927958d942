package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soportec/inventory-system/internal/core/domain"
)

const (
	sessionPrefix = "session:"
	userIndexKey  = "user_sessions:"
)

// SessionStore keeps sessions in Redis as JSON with a TTL matching the
// session expiry, plus a per-user set so an administrator can revoke
// every session of a blocked account at once.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	if sess.ID == "" {
		return errors.New("session id cannot be empty")
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionPrefix+sess.ID, data, ttl)
	pipe.SAdd(ctx, userIndexKey+sess.UserID, sess.ID)
	pipe.Expire(ctx, userIndexKey+sess.UserID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	if id == "" {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, sessionPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return domain.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}

	// Redis TTL normally handles expiry; cover clock skew anyway.
	if sess.Expired(time.Now()) {
		_ = s.client.SRem(ctx, userIndexKey+sess.UserID, id).Err()
		_ = s.client.Del(ctx, sessionPrefix+id).Err()
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	sess, err := s.Get(ctx, id)
	if err == nil {
		_ = s.client.SRem(ctx, userIndexKey+sess.UserID, id).Err()
	}
	return s.client.Del(ctx, sessionPrefix+id).Err()
}

// DeleteByUser removes every live session of userID and returns the
// removed ids.
func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, userIndexKey+userID).Result()
	if err != nil {
		return nil, fmt.Errorf("list user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionPrefix+id)
	}
	keys = append(keys, userIndexKey+userID)
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return nil, fmt.Errorf("delete user sessions: %w", err)
	}
	return ids, nil
}
