package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnparseableTime is returned when a string matches no accepted layout.
	ErrUnparseableTime = errors.New("domain: unparseable local time")
	// ErrNonexistentLocalTime is returned for wall-clock times skipped by a DST transition.
	ErrNonexistentLocalTime = errors.New("domain: local time does not exist in time zone")
)

// localLayouts are wall-clock layouts without an offset; fractional seconds
// are accepted by time.Parse after the seconds field.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseLocal converts a business-local wall-clock string into a UTC instant.
//
// A string carrying its own offset (RFC 3339) is taken as an absolute instant.
// Otherwise the wall time is interpreted in loc. Wall times that fall into a
// DST gap are rejected; ambiguous wall times in a DST overlap resolve to the
// first occurrence (the offset in force before the clocks went back).
func ParseLocal(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrUnparseableTime)
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range localLayouts {
		wall, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		t := time.Date(wall.Year(), wall.Month(), wall.Day(),
			wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), loc)

		// time.Date normalises gap times by shifting them; a shifted clock
		// means the requested wall time never occurs in loc.
		if t.Hour() != wall.Hour() || t.Minute() != wall.Minute() || t.Day() != wall.Day() {
			return time.Time{}, fmt.Errorf("%w: %q in %s", ErrNonexistentLocalTime, s, loc)
		}
		return firstOccurrence(t).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableTime, s)
}

// ParseDate parses a business-local calendar date (YYYY-MM-DD) at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateFormat, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableTime, s)
	}
	return d, nil
}

// firstOccurrence returns the earlier instant with the same wall clock as t
// when t falls into a fall-back overlap; time.Date picks the later one.
func firstOccurrence(t time.Time) time.Time {
	_, offset := t.Zone()
	start, _ := t.ZoneBounds()
	if start.IsZero() {
		return t
	}
	_, prevOffset := start.Add(-time.Nanosecond).Zone()
	if prevOffset <= offset {
		return t
	}

	earlier := t.Add(-time.Duration(prevOffset-offset) * time.Second)
	if earlier.Hour() == t.Hour() && earlier.Minute() == t.Minute() && earlier.Day() == t.Day() {
		return earlier
	}
	return t
}
