package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ClockLayout is the time-of-day format used by the schedule data, e.g. "8:15 AM".
// Strings may additionally carry a trailing " BST" zone label.
const ClockLayout = "3:04 PM"

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return time.Now().Format(time.RFC3339)
}

// Iso8601 formats a time in ISO8601 format
func Iso8601(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseClockTime parses a schedule clock string such as "8:15 AM" or
// "11:40 pm BST" against ref's date. The schedule's "---" placeholder, empty
// strings, and anything else that fails to parse report ok=false; callers
// treat that as "field absent" rather than an error.
func ParseClockTime(s string, ref time.Time) (time.Time, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, " BST", ""))
	if s == "" || s == "---" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(ClockLayout, strings.ToUpper(s))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), parsed.Hour(), parsed.Minute(), 0, 0, ref.Location()), true
}

// FormatETA renders the time remaining until an arrival as "2h 5m", "45m",
// or "Arrived" once the arrival time has passed.
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return "Arrived"
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// RoundTo rounds x to the given number of decimal places.
func RoundTo(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}
