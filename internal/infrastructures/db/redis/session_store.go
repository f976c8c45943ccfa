package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	derr "github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/errors"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/ports"
	"github.com/redis/go-redis/v9"
)

// defaultSessionTTL applies when the configured TTL is zero or
// negative. A session write is never dropped: a session that cannot be
// fetched back would break the whole booking flow.
const defaultSessionTTL = 45 * time.Minute

// SessionStoreRepository keeps booking sessions in redis for the
// lifetime of the booking flow. A session disappears either on
// submission or when its TTL lapses.
type SessionStoreRepository struct {
	redis *redis.Client
}

func NewSessionStoreRepository(redisClient *redis.Client) *SessionStoreRepository {
	return &SessionStoreRepository{redis: redisClient}
}

func (r *SessionStoreRepository) Get(ctx context.Context, id string) (ports.BookingSession, error) {
	key := sessionKey(id)
	data, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.BookingSession{}, derr.ErrSessionNotFound
		}
		return ports.BookingSession{}, fmt.Errorf("redis get session: %w", err)
	}

	var session ports.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return ports.BookingSession{}, fmt.Errorf("unmarshal cached session: %w", err)
	}

	return session, nil
}

func (r *SessionStoreRepository) Save(ctx context.Context, session ports.BookingSession, ttl time.Duration) error {
	key := sessionKey(session.ID)
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.redis.Set(ctx, key, data, sessionTTL(ttl)).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}

	return nil
}

func sessionTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return defaultSessionTTL
	}
	return ttl
}

func (r *SessionStoreRepository) Delete(ctx context.Context, id string) error {
	if err := r.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", strings.TrimSpace(id))
}
