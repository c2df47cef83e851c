package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"funnel_backend/internal/availability"
	"funnel_backend/platform/config"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	allDayLayout      = "2006-01-02"
	emailReminderMins = 24 * 60
	popupReminderMins = 30
	conferenceType    = "hangoutsMeet"
)

// Google is a Provider backed by the Google Calendar API.
type Google struct {
	svc        *gcal.Service
	calendarID string
	timezone   string
	loc        *time.Location
	timeout    time.Duration
}

// NewGoogle creates a provider that authenticates with ts.
func NewGoogle(ctx context.Context, ts oauth2.TokenSource, cfg config.CalendarConfig) (*Google, error) {
	return NewGoogleWithOptions(ctx, cfg, option.WithTokenSource(ts))
}

// NewGoogleWithOptions creates a provider with explicit client options.
func NewGoogleWithOptions(ctx context.Context, cfg config.CalendarConfig, opts ...option.ClientOption) (*Google, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &Google{
		svc:        svc,
		calendarID: cfg.GetCalendarID(),
		timezone:   cfg.GetMeetingTimezone(),
		loc:        cfg.GetMeetingLocation(),
		timeout:    cfg.GetCalendarTimeout(),
	}, nil
}

// Busy lists the day's events (in the meeting timezone) and converts them
// to busy intervals.
func (g *Google) Busy(ctx context.Context, day time.Time) BusyResult {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	year, month, date := day.Date()
	dayStart := time.Date(year, month, date, 0, 0, 0, 0, g.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := g.svc.Events.List(g.calendarID).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return BusyResult{Status: BusyTimedOut, Err: err}
		}
		return BusyResult{Status: BusyUnavailable, Err: err}
	}

	intervals := make([]availability.Interval, 0, len(events.Items))
	for _, item := range events.Items {
		if interval, ok := g.toInterval(item); ok {
			intervals = append(intervals, interval)
		}
	}
	return BusyResult{Status: BusyOK, Intervals: intervals}
}

func (g *Google) toInterval(item *gcal.Event) (availability.Interval, bool) {
	if item == nil || item.Status == "cancelled" {
		return availability.Interval{}, false
	}
	start, ok := g.parseEventTime(item.Start)
	if !ok {
		return availability.Interval{}, false
	}
	end, ok := g.parseEventTime(item.End)
	if !ok {
		return availability.Interval{}, false
	}
	return availability.Interval{Start: start, End: end}, true
}

// parseEventTime reads a timed value or, for all-day events, midnight of
// the date in the meeting timezone.
func (g *Google) parseEventTime(value *gcal.EventDateTime) (time.Time, bool) {
	if value == nil {
		return time.Time{}, false
	}
	if value.DateTime != "" {
		t, err := time.Parse(time.RFC3339, value.DateTime)
		return t, err == nil
	}
	if value.Date != "" {
		t, err := time.ParseInLocation(allDayLayout, value.Date, g.loc)
		return t, err == nil
	}
	return time.Time{}, false
}

// CreateEvent inserts the consultation with a Meet conference and
// notifies attendees. The join link is the Meet link when one was
// provisioned, otherwise the event page.
func (g *Google) CreateEvent(ctx context.Context, req EventRequest) (Event, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	event := &gcal.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start: &gcal.EventDateTime{
			DateTime: req.Start.In(g.loc).Format(time.RFC3339),
			TimeZone: g.timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: req.End.In(g.loc).Format(time.RFC3339),
			TimeZone: g.timezone,
		},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             "meet-" + uuid.NewString(),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: conferenceType},
			},
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: emailReminderMins},
				{Method: "popup", Minutes: popupReminderMins},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
	if req.AttendeeEmail != "" {
		event.Attendees = []*gcal.EventAttendee{{Email: req.AttendeeEmail, DisplayName: req.AttendeeName}}
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return Event{}, fmt.Errorf("insert calendar event: %w", err)
	}

	link := created.HangoutLink
	if link == "" {
		link = created.HtmlLink
	}
	return Event{ID: created.Id, JoinLink: link}, nil
}

var _ Provider = (*Google)(nil)
