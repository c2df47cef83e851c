// Package availability computes the bookable one-hour slots of a day from
// the busy intervals reported by the calendar.
package availability

import "time"

// LabelLayout is the 12-hour clock format used for slot labels ("9:00 AM").
const LabelLayout = "3:04 PM"

// SlotLength is the size of every work-hour bucket.
const SlotLength = time.Hour

// WorkHours bounds the business day in whole hours. Buckets start at every
// hour in [Start, End), so {9, 19} yields ten buckets from 9:00 to 18:00.
type WorkHours struct {
	Start int
	End   int
}

// DefaultWorkHours is the business day used when nothing is configured.
var DefaultWorkHours = WorkHours{Start: 9, End: 19}

// Interval is a half-open busy range [Start, End) in absolute time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [start, end) shares any instant with i.
// Ranges that only touch at a boundary do not overlap.
func (i Interval) Overlaps(start, end time.Time) bool {
	return start.Before(i.End) && end.After(i.Start)
}

// TimeSlot is one bookable bucket.
type TimeSlot struct {
	Time      string    `json:"time"`
	Available bool      `json:"available"`
	Start     time.Time `json:"-"`
}

// Slots returns the free buckets of day in ascending order. Only the
// calendar date of day (in day's own location) is used; buckets are laid
// out in loc. The result is empty, never nil, when every bucket is busy.
func Slots(day time.Time, busy []Interval, hours WorkHours, loc *time.Location) []TimeSlot {
	if loc == nil {
		loc = time.UTC
	}
	year, month, date := day.Date()

	slots := make([]TimeSlot, 0, max(hours.End-hours.Start, 0))
	for hour := hours.Start; hour < hours.End; hour++ {
		slotStart := time.Date(year, month, date, hour, 0, 0, 0, loc)
		slotEnd := slotStart.Add(SlotLength)

		if isBooked(slotStart, slotEnd, busy) {
			continue
		}

		slots = append(slots, TimeSlot{
			Time:      slotStart.Format(LabelLayout),
			Available: true,
			Start:     slotStart,
		})
	}

	return slots
}

func isBooked(slotStart, slotEnd time.Time, busy []Interval) bool {
	for _, interval := range busy {
		if interval.Overlaps(slotStart, slotEnd) {
			return true
		}
	}
	return false
}

// fallbackHours are offered when the calendar cannot be consulted.
var fallbackHours = WorkHours{Start: 12, End: 18}

// Fallback returns the fixed degrade list (12:00 PM through 5:00 PM) offered
// when busy intervals are unknown. Booking stays possible at the cost of a
// possible double booking.
func Fallback() []TimeSlot {
	slots := make([]TimeSlot, 0, fallbackHours.End-fallbackHours.Start)
	for hour := fallbackHours.Start; hour < fallbackHours.End; hour++ {
		label := time.Date(2000, 1, 1, hour, 0, 0, 0, time.UTC).Format(LabelLayout)
		slots = append(slots, TimeSlot{Time: label, Available: true})
	}
	return slots
}
