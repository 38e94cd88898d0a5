package timespec

import (
	"fmt"
	"time"
)

// Deadline parses a stop-time specification relative to now.
// Supports two formats:
//   - Go duration format: "45m", "1h30m" (that long after now)
//   - RFC3339 timestamps: "2026-10-19T15:00:00Z"
//
// An empty spec returns the zero time, meaning "no deadline".
func Deadline(spec string, now time.Time) (time.Time, error) {
	if spec == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		if !t.After(now) {
			return time.Time{}, fmt.Errorf("deadline %s is in the past", spec)
		}
		return t, nil
	}

	if d, err := time.ParseDuration(spec); err == nil {
		if d <= 0 {
			return time.Time{}, fmt.Errorf("duration must be positive: %s", spec)
		}
		return now.Add(d), nil
	}

	return time.Time{}, fmt.Errorf("invalid time specification: %s (use duration like '45m' or RFC3339 like '2026-10-19T15:00:00Z')", spec)
}
