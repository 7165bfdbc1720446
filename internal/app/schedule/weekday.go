package schedule

import (
	"strings"
	"time"
)

// weekOrder lists weekdays Monday first, the order used for display.
var weekOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// ParseWeekday resolves an English weekday name, ignoring case and surrounding space.
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.TrimSpace(name)
	for _, d := range weekOrder {
		if strings.EqualFold(d.String(), name) {
			return d, true
		}
	}
	return time.Sunday, false
}

// NormalizeDays canonicalises weekday names, drops duplicates and orders them
// Monday to Sunday. Unknown names are returned separately.
func NormalizeDays(days []string) (normalized []string, invalid []string) {
	seen := make(map[time.Weekday]bool, len(days))
	for _, name := range days {
		d, ok := ParseWeekday(name)
		if !ok {
			invalid = append(invalid, name)
			continue
		}
		seen[d] = true
	}

	normalized = make([]string, 0, len(seen))
	for _, d := range weekOrder {
		if seen[d] {
			normalized = append(normalized, d.String())
		}
	}
	return normalized, invalid
}

// hasDay reports whether days contains the weekday's name.
func hasDay(days []string, day time.Weekday) bool {
	for _, name := range days {
		if d, ok := ParseWeekday(name); ok && d == day {
			return true
		}
	}
	return false
}
