package domain

import (
	"math/big"
	"time"
)

// Rating is one user's score for a resource; re-rating overwrites it.
type Rating struct {
	ResourceID string
	UserID     string
	Value      int
	UpdatedAt  time.Time
}

// RatingStats aggregates all ratings of a resource.
type RatingStats struct {
	Avg   float64
	Count int
}

// NewRatingStats builds stats from a sum and count, rounding avg to one decimal.
func NewRatingStats(sum, count int) RatingStats {
	if count <= 0 {
		return RatingStats{}
	}
	avg := float64(sum) / float64(count)
	return RatingStats{Avg: roundTenth(avg), Count: count}
}

// roundTenth rounds the exact binary value of x half-up to one decimal,
// so 23/20 (stored as 1.1499...) gives 1.1 and 5/4 gives 1.3.
func roundTenth(x float64) float64 {
	f := new(big.Float).SetPrec(256).SetFloat64(x)
	f.Mul(f, big.NewFloat(10))
	f.Add(f, big.NewFloat(0.5))
	n, _ := f.Int64()
	return float64(n) / 10
}

// ValidRatingValue reports whether v is an allowed score.
func ValidRatingValue(v int) bool {
	return v >= MinRatingValue && v <= MaxRatingValue
}
