package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Define the regular expression to capture "N [units] ago"
// e.g., "2 days ago", "3 hours ago", "1 week ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?\s+ago$`)

// maxRelativeValue bounds N in "N [units] ago" so the arithmetic cannot overflow.
const maxRelativeValue = 100000

// localLayouts are the wall-clock formats accepted for entry timestamps.
var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseRelativeTime converts strings like "2 days ago" into a time.Time in the past.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	// 1: Value (e.g., "2")
	// 2: Unit (e.g., "day" or "hour")
	value, err := strconv.Atoi(matches[1])
	if err != nil || value > maxRelativeValue {
		return time.Time{}, fmt.Errorf("invalid relative time value: %s", matches[1])
	}

	switch matches[2] {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.AddDate(0, 0, -7*value), nil
	case "day":
		return now.AddDate(0, 0, -value), nil
	case "hour":
		return now.Add(time.Duration(-value) * time.Hour), nil
	default: // "minute"
		return now.Add(time.Duration(-value) * time.Minute), nil
	}
}

// ParseEntryTime parses the timestamp of an entry given on the command line.
//
// Accepted forms are "now" or empty (now), RFC 3339, a wall-clock time such as
// "2025-03-14 15:30" interpreted in loc, and relative times such as "3 hours ago".
func ParseEntryTime(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "now") {
		return now, nil
	}
	if loc == nil {
		loc = now.Location()
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := ParseRelativeTime(s, now); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time '%s'. Expected RFC3339, 'YYYY-MM-DD HH:MM' or 'N [units] ago'", s)
}
