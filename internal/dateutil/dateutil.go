package dateutil

import (
	"regexp"
	"strings"
	"time"
)

var reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const DateLayout = "2006-01-02"

// Epoch values this large are taken to be milliseconds, not seconds.
// (Seconds past this threshold would be past the year 33658.)
const millisThreshold = 1e12

// ToDate converts heterogeneous date inputs to a canonical time.Time.
//
// Accepted:
// - time.Time (and *time.Time)
// - "YYYY-MM-DD" (parsed in LOCAL time; parsing date-only strings as UTC
//   shifts them a day in western timezones)
// - RFC3339 / RFC3339Nano
// - epoch seconds or milliseconds (int, int64, float64)
//
// Invalid input yields ok=false. Never panics.
func ToDate(v any) (time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if x.IsZero() {
			return time.Time{}, false
		}
		return x, true
	case *time.Time:
		if x == nil || x.IsZero() {
			return time.Time{}, false
		}
		return *x, true
	case string:
		return parseDateString(x)
	case int:
		return fromEpoch(int64(x))
	case int64:
		return fromEpoch(x)
	case float64:
		return fromEpoch(int64(x))
	default:
		return time.Time{}, false
	}
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if reDateOnly.MatchString(s) {
		t, err := time.ParseInLocation(DateLayout, s, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func fromEpoch(n int64) (time.Time, bool) {
	if n <= 0 {
		return time.Time{}, false
	}
	if n >= millisThreshold {
		return time.UnixMilli(n), true
	}
	return time.Unix(n, 0), true
}

// ToDateString converts any accepted date input to a date-only "YYYY-MM-DD"
// string, the only form persisted storage sees.
func ToDateString(v any) (string, bool) {
	t, ok := ToDate(v)
	if !ok {
		return "", false
	}
	return t.Format(DateLayout), true
}

// DaysBetween returns whole days from start to end, never negative.
// Inverted or equal ranges return 0.
func DaysBetween(start, end time.Time) int {
	// Compare at date granularity so DST transitions don't shave a day.
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	d := int(e.Sub(s).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
