// Package calendar integrates with the organizer's calendar: it reports
// the busy intervals of a day and creates consultation events.
package calendar

import (
	"context"
	"errors"
	"time"

	"funnel_backend/internal/availability"
)

// ErrNotConfigured is returned by providers that have no calendar behind them.
var ErrNotConfigured = errors.New("calendar provider is not configured")

// BusyStatus tells the caller how much it can trust a BusyResult.
type BusyStatus int

const (
	// BusyOK means Intervals is the calendar's answer for the day.
	BusyOK BusyStatus = iota
	// BusyTimedOut means the calendar did not answer within the timeout.
	BusyTimedOut
	// BusyUnavailable means the calendar failed or is not configured.
	BusyUnavailable
)

func (s BusyStatus) String() string {
	switch s {
	case BusyOK:
		return "ok"
	case BusyTimedOut:
		return "timed_out"
	case BusyUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// BusyResult is the outcome of a busy-interval lookup. Err is set for
// BusyTimedOut and BusyUnavailable and is only meant for logging.
type BusyResult struct {
	Status    BusyStatus
	Intervals []availability.Interval
	Err       error
}

// EventRequest describes the consultation to put on the calendar.
type EventRequest struct {
	Summary       string
	Description   string
	Start         time.Time
	End           time.Time
	AttendeeEmail string
	AttendeeName  string
}

// Event is the created calendar entry.
type Event struct {
	ID       string
	JoinLink string
}

// Provider is the calendar collaborator used by the booking flow.
type Provider interface {
	// Busy returns the busy intervals of day. It never blocks longer than
	// the provider's configured timeout and never returns an error value;
	// failures are reported through BusyResult.Status.
	Busy(ctx context.Context, day time.Time) BusyResult
	// CreateEvent puts a consultation on the calendar.
	CreateEvent(ctx context.Context, req EventRequest) (Event, error)
}

// Offline is the provider used when no calendar account is configured.
type Offline struct{}

// Busy always reports the calendar as unavailable.
func (Offline) Busy(context.Context, time.Time) BusyResult {
	return BusyResult{Status: BusyUnavailable, Err: ErrNotConfigured}
}

// CreateEvent always fails with ErrNotConfigured.
func (Offline) CreateEvent(context.Context, EventRequest) (Event, error) {
	return Event{}, ErrNotConfigured
}

var _ Provider = Offline{}
