package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func newCache(t *testing.T) (*RatingStatsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRatingStatsCache(rdb, 30*time.Second), mr
}

func TestRatingStatsCache_RoundTripAndTTL(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	miss, err := c.Get(ctx, "gym")
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, c.Set(ctx, "gym", domain.RatingStats{Avg: 3.7, Count: 3}))
	assert.Equal(t, 30*time.Second, mr.TTL("rating:stats:gym"))

	hit, err := c.Get(ctx, "gym")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, 3.7, hit.Avg)
	assert.Equal(t, 3, hit.Count)

	mr.FastForward(31 * time.Second)
	expired, err := c.Get(ctx, "gym")
	require.NoError(t, err)
	assert.Nil(t, expired)
}

func TestRatingStatsCache_Invalidate(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "gym", domain.RatingStats{Avg: 5, Count: 1}))
	require.NoError(t, c.Invalidate(ctx, "gym"))

	got, err := c.Get(ctx, "gym")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRatingStatsCache_Unavailable(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()

	_, err := c.Get(context.Background(), "gym")
	assert.ErrorIs(t, err, ErrCacheUnavailable)
}
