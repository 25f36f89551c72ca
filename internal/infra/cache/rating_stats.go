package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const keyPrefix = "rating:stats:"

type statsEntry struct {
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// RatingStatsCache кэширует агрегаты оценок в Redis с TTL
type RatingStatsCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRatingStatsCache(rdb redis.Cmdable, ttl time.Duration) *RatingStatsCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RatingStatsCache{rdb: rdb, ttl: ttl}
}

func key(resourceID string) string {
	return keyPrefix + resourceID
}

// Get возвращает (nil, nil) при промахе
func (c *RatingStatsCache) Get(ctx context.Context, resourceID string) (*domain.RatingStats, error) {
	raw, err := c.rdb.Get(ctx, key(resourceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - %v", ErrCacheUnavailable, err)
	}

	var e statsEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("%w: key=%s: %v", ErrDecode, key(resourceID), err)
	}
	return &domain.RatingStats{Avg: e.Avg, Count: e.Count}, nil
}

func (c *RatingStatsCache) Set(ctx context.Context, resourceID string, stats domain.RatingStats) error {
	raw, err := json.Marshal(statsEntry{Avg: stats.Avg, Count: stats.Count})
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key(resourceID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - %v", ErrCacheUnavailable, err)
	}
	return nil
}

func (c *RatingStatsCache) Invalidate(ctx context.Context, resourceID string) error {
	if err := c.rdb.Del(ctx, key(resourceID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - %v", ErrCacheUnavailable, err)
	}
	return nil
}
