package service

import (
	"strings"
	"time"

	"funnel_backend/platform/apperr"
)

const dateLayout = "2006-01-02"

// ParseDate reads a calendar date in loc. RFC 3339 timestamps are accepted
// and reduced to their date in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, apperr.BadRequest("Date parameter is required")
	}
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		y, m, d := t.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	return time.Time{}, apperr.BadRequest("Invalid date format")
}
