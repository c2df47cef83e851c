package availability

import (
	"reflect"
	"testing"
	"time"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

func labels(slots []TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time)
	}
	return out
}

func at(loc *time.Location, hour int) time.Time {
	return time.Date(2026, 2, 2, hour, 0, 0, 0, loc)
}

func TestSlotsWithoutBusyIntervals(t *testing.T) {
	loc := mustLocation(t, "America/Bogota")
	got := labels(Slots(at(loc, 0), nil, DefaultWorkHours, loc))
	want := []string{
		"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM", "1:00 PM",
		"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM", "6:00 PM",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected slots:\n got %v\nwant %v", got, want)
	}
}

func TestSlotsExcludeOverlappingBucket(t *testing.T) {
	loc := mustLocation(t, "America/Bogota")
	busy := []Interval{{Start: at(loc, 10), End: at(loc, 11)}}

	got := labels(Slots(at(loc, 0), busy, DefaultWorkHours, loc))
	want := []string{
		"9:00 AM", "11:00 AM", "12:00 PM", "1:00 PM",
		"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM", "6:00 PM",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected slots:\n got %v\nwant %v", got, want)
	}
}

func TestTouchingBoundariesDoNotOverlap(t *testing.T) {
	loc := time.UTC
	busy := []Interval{{Start: at(loc, 10), End: at(loc, 11)}}
	got := labels(Slots(at(loc, 0), busy, WorkHours{Start: 9, End: 12}, loc))

	want := []string{"9:00 AM", "11:00 AM"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected slots: %v", got)
	}
}

func TestPartialOverlapBooksBucket(t *testing.T) {
	loc := time.UTC
	busy := []Interval{{Start: at(loc, 13).Add(45 * time.Minute), End: at(loc, 14).Add(15 * time.Minute)}}
	got := labels(Slots(at(loc, 0), busy, WorkHours{Start: 13, End: 16}, loc))

	if !reflect.DeepEqual(got, []string{"3:00 PM"}) {
		t.Fatalf("expected only 3:00 PM, got %v", got)
	}
}

func TestFullyBookedDayIsEmptyNotNil(t *testing.T) {
	loc := time.UTC
	busy := []Interval{{Start: at(loc, 0), End: at(loc, 23)}}
	got := Slots(at(loc, 0), busy, DefaultWorkHours, loc)

	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestOutOfRangeIntervalsAreIgnored(t *testing.T) {
	loc := time.UTC
	busy := []Interval{
		{Start: at(loc, 9).AddDate(0, 0, -1), End: at(loc, 19).AddDate(0, 0, -1)},
		{Start: at(loc, 12), End: at(loc, 10)}, // inverted
	}
	if got := Slots(at(loc, 0), busy, DefaultWorkHours, loc); len(got) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(got))
	}
}

func TestTimeOfDayIsIgnored(t *testing.T) {
	loc := mustLocation(t, "America/Bogota")
	morning := Slots(at(loc, 0), nil, DefaultWorkHours, loc)
	evening := Slots(at(loc, 23).Add(59*time.Minute), nil, DefaultWorkHours, loc)

	if !reflect.DeepEqual(labels(morning), labels(evening)) || !morning[0].Start.Equal(evening[0].Start) {
		t.Fatal("expected the same slots regardless of the time of day")
	}
}

func TestBucketsAreLaidOutInMeetingTimezone(t *testing.T) {
	loc := mustLocation(t, "America/Bogota") // UTC-5, no DST
	// 14:00 UTC is 9:00 in Bogota
	busy := []Interval{{Start: time.Date(2026, 2, 2, 14, 0, 0, 0, time.UTC), End: time.Date(2026, 2, 2, 15, 0, 0, 0, time.UTC)}}
	got := Slots(time.Date(2026, 2, 2, 0, 0, 0, 0, loc), busy, DefaultWorkHours, loc)

	if got[0].Time != "10:00 AM" {
		t.Fatalf("expected 9:00 AM to be booked, first slot is %s", got[0].Time)
	}
}

func TestSlotsAreDeterministic(t *testing.T) {
	loc := time.UTC
	busy := []Interval{{Start: at(loc, 15), End: at(loc, 16)}, {Start: at(loc, 9), End: at(loc, 10)}}
	first := Slots(at(loc, 0), busy, DefaultWorkHours, loc)
	second := Slots(at(loc, 0), []Interval{busy[1], busy[0]}, DefaultWorkHours, loc)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical output for reordered busy intervals")
	}
}

func TestFallback(t *testing.T) {
	got := Fallback()
	want := []string{"12:00 PM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM"}
	if !reflect.DeepEqual(labels(got), want) {
		t.Fatalf("unexpected fallback slots: %v", labels(got))
	}
	for _, s := range got {
		if !s.Available {
			t.Fatalf("fallback slot %s must be available", s.Time)
		}
	}
}
