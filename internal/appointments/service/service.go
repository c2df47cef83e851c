// Package service implements slot lookup and consultation booking.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"funnel_backend/internal/appointments/transport"
	"funnel_backend/internal/availability"
	"funnel_backend/internal/calendar"
	"funnel_backend/internal/events"
	"funnel_backend/internal/leads/domain"
	"funnel_backend/platform/apperr"
	"funnel_backend/platform/config"
	"funnel_backend/platform/logger"
)

// LedgerWriter records leads. Failures are logged by the writer.
type LedgerWriter interface {
	Append(ctx context.Context, lead domain.Lead) error
}

type Service struct {
	calendar calendar.Provider
	ledger   LedgerWriter
	bus      events.Bus
	cfg      config.MeetingConfig
	log      *logger.Logger
	now      func() time.Time
}

func New(provider calendar.Provider, ledger LedgerWriter, bus events.Bus, cfg config.MeetingConfig, log *logger.Logger) *Service {
	return &Service{
		calendar: provider,
		ledger:   ledger,
		bus:      bus,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Location returns the meeting timezone.
func (s *Service) Location() *time.Location {
	return s.cfg.GetMeetingLocation()
}

// Slots returns the bookable slots of day. When the calendar cannot be
// consulted the fixed fallback list is returned instead; no error surfaces.
func (s *Service) Slots(ctx context.Context, day time.Time) []availability.TimeSlot {
	result := s.calendar.Busy(ctx, day)

	switch result.Status {
	case calendar.BusyOK:
		hours := availability.WorkHours{Start: s.cfg.GetWorkdayStartHour(), End: s.cfg.GetWorkdayEndHour()}
		return availability.Slots(day, result.Intervals, hours, s.Location())
	default:
		s.log.WithContext(ctx).Warn("calendar busy lookup degraded, offering fallback slots",
			"status", result.Status.String(),
			"date", day.Format(dateLayout),
			"error", result.Err,
		)
		return availability.Fallback()
	}
}

// Book schedules a consultation for the lead. Only malformed input fails;
// calendar, ledger and notification failures degrade and are logged.
func (s *Service) Book(ctx context.Context, req transport.BookRequest, clientID string) (transport.BookResponse, error) {
	loc := s.Location()

	date, err := ParseDate(req.Fecha, loc)
	if err != nil {
		return transport.BookResponse{}, err
	}
	start, err := availability.StartOf(date, req.Hora, loc)
	if err != nil {
		return transport.BookResponse{}, apperr.Validation("invalid hora").WithDetails(map[string]string{"hora": req.Hora})
	}
	end := start.Add(s.cfg.GetMeetingDuration())

	lead := req.Lead(s.now())
	log := s.log.WithContext(ctx).WithLeadID(lead.ID.String())

	meeting := &domain.Meeting{
		Start: start,
		End:   end,
		Label: start.Format(availability.LabelLayout),
		Link:  s.cfg.GetMeetingFallbackLink(),
	}

	event, err := s.calendar.CreateEvent(ctx, calendar.EventRequest{
		Summary:       "Consultoría - " + lead.FullName(),
		Description:   eventDescription(lead),
		Start:         start,
		End:           end,
		AttendeeEmail: lead.Contact.Email,
		AttendeeName:  lead.FullName(),
	})
	if err != nil {
		log.CollaboratorFailure("calendar", "create_event", err)
	} else {
		meeting.EventCreated = true
		if event.JoinLink != "" {
			meeting.Link = event.JoinLink
		}
	}
	lead.Meeting = meeting

	// sinks log their own failures
	_ = s.ledger.Append(ctx, lead)

	s.bus.Publish(ctx, events.AppointmentBooked{
		BaseEvent: events.NewBaseEvent(),
		Lead:      lead,
		ClientID:  clientID,
	})

	log.Info("appointment booked",
		"start", start.Format(time.RFC3339),
		"calificado", lead.Calificado,
		"eventCreated", meeting.EventCreated,
	)

	return transport.BookResponse{
		MeetingLink: meeting.Link,
		Calificado:  lead.Calificado,
		StartTime:   start.UTC().Format(time.RFC3339),
		EndTime:     end.UTC().Format(time.RFC3339),
	}, nil
}

func eventDescription(lead domain.Lead) string {
	status := "NO CALIFICADO ❌"
	if lead.Calificado {
		status = "CALIFICADO ✅"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Llamada estratégica con %s\n\n", lead.FullName())
	fmt.Fprintf(&b, "Email: %s\n", lead.Contact.Email)
	fmt.Fprintf(&b, "WhatsApp: %s\n", lead.Contact.WhatsApp)
	fmt.Fprintf(&b, "Instagram: %s\n\n", lead.Contact.Instagram)
	fmt.Fprintf(&b, "Ingreso Mensual: %s\n", lead.Answers.IngresoMensual)
	fmt.Fprintf(&b, "Mayor Desafío: %s\n\n", lead.Profile.MayorDesafio)
	fmt.Fprintf(&b, "Estado: %s (%d/100)", status, lead.Score)
	return b.String()
}
