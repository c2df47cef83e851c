package availability

import (
	"fmt"
	"strings"
	"time"
)

// ParseLabel reads a slot label such as "9:00 AM" or "12:30 PM" and returns
// the 24-hour clock values. 12 AM is hour 0 and 12 PM is hour 12.
func ParseLabel(label string) (hour, minute int, err error) {
	parsed, err := time.Parse(LabelLayout, strings.ToUpper(strings.TrimSpace(label)))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot label %q: %w", label, err)
	}
	return parsed.Hour(), parsed.Minute(), nil
}

// StartOf combines a calendar date with a slot label in loc.
func StartOf(date time.Time, label string, loc *time.Location) (time.Time, error) {
	hour, minute, err := ParseLabel(label)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	year, month, day := date.Date()
	return time.Date(year, month, day, hour, minute, 0, 0, loc), nil
}
