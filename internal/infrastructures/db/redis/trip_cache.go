package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	derr "github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/errors"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/models"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/ports"
	"github.com/redis/go-redis/v9"
)

type TripCacheRepository struct {
	redis *redis.Client
}

func NewTripCacheRepository(redisClient *redis.Client) *TripCacheRepository {
	return &TripCacheRepository{redis: redisClient}
}

func (r *TripCacheRepository) GetByQuery(ctx context.Context, query ports.TripQuery) (*models.ParsedTrip, error) {
	key := tripKey(query)
	data, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, derr.ErrTripNotFound
		}
		return nil, fmt.Errorf("redis get trip: %w", err)
	}

	trip, err := decodeTrip([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal cached trip: %w", err)
	}

	return trip, nil
}

func (r *TripCacheRepository) SetByQuery(ctx context.Context, query ports.TripQuery, trip *models.ParsedTrip, ttl time.Duration) error {
	if ttl <= 0 || trip == nil {
		return nil
	}

	key := tripKey(query)
	data, err := encodeTrip(trip)
	if err != nil {
		return fmt.Errorf("marshal trip for cache: %w", err)
	}

	if err := r.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set trip: %w", err)
	}

	return nil
}

// encodeTrip and decodeTrip are the cache value codec. A cached trip
// must come back exactly as it was stored, down to the ancillary
// catalog, or the cache-hit path would serve different data than a
// fresh provider fetch.
func encodeTrip(trip *models.ParsedTrip) ([]byte, error) {
	return json.Marshal(trip)
}

func decodeTrip(data []byte) (*models.ParsedTrip, error) {
	var trip models.ParsedTrip
	if err := json.Unmarshal(data, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func tripKey(query ports.TripQuery) string {
	return fmt.Sprintf("trip:%s:%s:%s:%s:%s:%d",
		strings.ToUpper(strings.TrimSpace(query.Origin)),
		strings.ToUpper(strings.TrimSpace(query.Destination)),
		strings.TrimSpace(query.DepartDate),
		strings.TrimSpace(query.ReturnDate),
		query.Type,
		query.Adults,
	)
}
