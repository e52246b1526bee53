package services

import (
	"fmt"
	"time"
)

// TimeAgo converts an absolute timestamp into a coarse relative label
// ("3 days ago", "1 hour ago"). The largest non-zero unit wins, falling
// through days, hours, minutes, seconds. Days is the largest unit produced;
// a year-old lead reports in days.
//
// Timestamps in the future, and zero timestamps, clamp to "just now" rather
// than reporting an inverted elapsed time.
func TimeAgo(t, now time.Time) string {
	if t.IsZero() || !t.Before(now) {
		return "just now"
	}

	seconds := int64(now.Sub(t) / time.Second)
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return pluralize(days, "day")
	case hours > 0:
		return pluralize(hours, "hour")
	case minutes > 0:
		return pluralize(minutes, "minute")
	case seconds > 0:
		return pluralize(seconds, "second")
	default:
		return "just now"
	}
}

func pluralize(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
