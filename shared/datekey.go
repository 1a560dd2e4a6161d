package shared

import (
	"os"
	"sync"
	"time"
)

// DateKeyLayout is the canonical calendar-day key format. Every idempotency
// check in the system (daily jelly, streaks, advice cache) compares these
// keys, always computed in one fixed reference timezone.
const DateKeyLayout = "2006-01-02"

var (
	refLocation *time.Location
	refOnce     sync.Once
)

// RefLocation returns the reference timezone. Controlled by APP_TIMEZONE,
// falling back to Asia/Seoul and then UTC if the zone cannot be loaded.
func RefLocation() *time.Location {
	refOnce.Do(func() {
		name := os.Getenv("APP_TIMEZONE")
		if name == "" {
			name = "Asia/Seoul"
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			loc = time.UTC
		}
		refLocation = loc
	})
	return refLocation
}

// DateKey converts an instant to its calendar-day key in the reference
// timezone.
func DateKey(t time.Time) string {
	return t.In(RefLocation()).Format(DateKeyLayout)
}

// Today is the date key for the current instant.
func Today() string {
	return DateKey(time.Now())
}

// ValidDateKey reports whether s is a well-formed date key.
func ValidDateKey(s string) bool {
	_, err := time.ParseInLocation(DateKeyLayout, s, RefLocation())
	return err == nil
}

// DayGap returns the number of whole calendar days from key a to key b.
// Positive when b is after a. Returns 0 and false if either key is malformed.
// Keys are plain day labels, so the subtraction happens in UTC where every
// day is exactly 24 hours; parsing them in the reference timezone would skew
// the gap across DST transitions.
func DayGap(a, b string) (int, bool) {
	ta, err := time.ParseInLocation(DateKeyLayout, a, time.UTC)
	if err != nil {
		return 0, false
	}
	tb, err := time.ParseInLocation(DateKeyLayout, b, time.UTC)
	if err != nil {
		return 0, false
	}
	return int(tb.Sub(ta).Hours() / 24), true
}
