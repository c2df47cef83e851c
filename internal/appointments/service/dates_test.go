package service

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		t.Fatal(err)
	}

	got, err := ParseDate("2026-02-02", loc)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Date(2026, 2, 2, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected date: %v", got)
	}

	// 03:00 UTC on the 3rd is still the 2nd in Bogotá.
	got, err = ParseDate("2026-02-03T03:00:00Z", loc)
	if err != nil {
		t.Fatal(err)
	}
	if got.Day() != 2 || got.Location() != loc {
		t.Fatalf("expected the 2nd in Bogotá, got %v", got)
	}

	for _, bad := range []string{"", "  ", "02/02/2026", "2026-02-30"} {
		if _, err := ParseDate(bad, loc); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
