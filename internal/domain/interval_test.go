package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2024-06-01 "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"touching end to start", Interval{at("09:00"), at("10:00")}, Interval{at("10:00"), at("11:00")}, false},
		{"one minute overlap", Interval{at("09:00"), at("10:00")}, Interval{at("09:59"), at("10:30")}, true},
		{"contained", Interval{at("09:00"), at("12:00")}, Interval{at("10:00"), at("10:15")}, true},
		{"identical", Interval{at("09:00"), at("09:30")}, Interval{at("09:00"), at("09:30")}, true},
		{"disjoint", Interval{at("08:00"), at("08:30")}, Interval{at("09:00"), at("09:30")}, false},
		{"partial from left", Interval{at("08:45"), at("09:15")}, Interval{at("09:00"), at("09:30")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.a.Overlaps(tt.b), tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestInterval_Valid(t *testing.T) {
	assert.True(t, Interval{at("09:00"), at("09:15")}.Valid())
	assert.False(t, Interval{at("09:00"), at("09:00")}.Valid())
	assert.False(t, Interval{at("10:00"), at("09:00")}.Valid())
	assert.Equal(t, 15*time.Minute, Interval{at("09:00"), at("09:15")}.Duration())
}
