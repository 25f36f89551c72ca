package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRatingStats(t *testing.T) {
	assert.Equal(t, RatingStats{}, NewRatingStats(0, 0))
	assert.Equal(t, RatingStats{Avg: 4, Count: 2}, NewRatingStats(8, 2))
	assert.Equal(t, RatingStats{Avg: 3.7, Count: 3}, NewRatingStats(11, 3))
	assert.Equal(t, RatingStats{Avg: 4.3, Count: 3}, NewRatingStats(13, 3))
}

func TestNewRatingStats_RoundsLikeFixedPointFormatting(t *testing.T) {
	tests := []struct {
		sum, count int
		want       float64
	}{
		{23, 20, 1.1}, // 1.15 is stored below the halfway point
		{5, 4, 1.3},   // exact half rounds up
		{7, 4, 1.8},
		{47, 10, 4.7},
		{5, 1, 5},
	}

	for _, tt := range tests {
		got := NewRatingStats(tt.sum, tt.count)
		assert.Equal(t, tt.want, got.Avg, "%d/%d", tt.sum, tt.count)
		assert.Equal(t, tt.count, got.Count)
	}
}

func TestValidRatingValue(t *testing.T) {
	assert.False(t, ValidRatingValue(0))
	assert.True(t, ValidRatingValue(1))
	assert.True(t, ValidRatingValue(5))
	assert.False(t, ValidRatingValue(6))
}

func TestCaller_CanView(t *testing.T) {
	b := &Booking{OwnerID: "alice"}

	assert.True(t, Caller{ID: "alice", Role: RoleUser}.CanView(b))
	assert.False(t, Caller{ID: "bob", Role: RoleUser}.CanView(b))
	assert.True(t, Caller{ID: "bob", Role: RoleAdmin}.CanView(b))
	assert.Equal(t, RoleUser, ParseRole("superuser"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
}
