package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/plateful/ordering-service/internal/application/ports"
)

// SessionStore maps bearer tokens to user ids. Tokens are issued by the
// identity layer outside this service; here they are only resolved. Unknown
// or expired tokens come back unauthenticated, not as errors.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(conn *Connection, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: conn.GetClient(),
		ttl:    ttl,
	}
}

func (s *SessionStore) GetSession(ctx context.Context, token string) (ports.Session, error) {
	if token == "" {
		return ports.Session{}, nil
	}

	key := fmt.Sprintf("session:%s", token)
	userID, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ports.Session{}, nil
		}
		return ports.Session{}, err
	}

	// Sliding expiry: any authenticated request keeps the session alive.
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return ports.Session{}, err
	}

	return ports.Session{
		UserID:        userID,
		Authenticated: true,
	}, nil
}

func (s *SessionStore) PutSession(ctx context.Context, token, userID string) error {
	key := fmt.Sprintf("session:%s", token)
	return s.client.Set(ctx, key, userID, s.ttl).Err()
}

func (s *SessionStore) DeleteSession(ctx context.Context, token string) error {
	key := fmt.Sprintf("session:%s", token)
	return s.client.Del(ctx, key).Err()
}
