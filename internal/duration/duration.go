// Package duration parses human-readable durations such as "12h", "7d" or
// "6mo", used for cache TTLs and pruning.
package duration

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

var units = map[string]time.Duration{
	"m": time.Minute, "min": time.Minute, "mins": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": day, "day": day, "days": day,
	"w": 7 * day, "wk": 7 * day, "wks": 7 * day, "week": 7 * day, "weeks": 7 * day,
	"mo": 30 * day, "month": 30 * day, "months": 30 * day,
	"y": 365 * day, "yr": 365 * day, "yrs": 365 * day, "year": 365 * day, "years": 365 * day,
}

// ParseDuration parses "<n><unit>". Plain Go durations ("90m", "1h30m") are
// accepted too.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	var n int
	var unit string
	if _, err := fmt.Sscanf(s, "%d%s", &n, &unit); err != nil {
		return 0, fmt.Errorf("invalid duration format: %s (use e.g., 12h, 7d, 6mo)", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative duration: %s", s)
	}

	if d, ok := units[strings.ToLower(unit)]; ok {
		return time.Duration(n) * d, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	return 0, fmt.Errorf("unknown duration unit: %s", unit)
}

// Since parses s and returns the time that far before now.
func Since(s string) (time.Time, error) {
	d, err := ParseDuration(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().Add(-d), nil
}
