// Package notification sends the booking emails in response to domain
// events. Domain modules publish events and never talk to email providers.
package notification

import (
	"context"
	"time"

	"funnel_backend/internal/email"
	"funnel_backend/internal/events"
	"funnel_backend/internal/leads/domain"
	"funnel_backend/internal/scheduler"
	"funnel_backend/platform/config"
	"funnel_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Module subscribes to booking events. Every failure is logged and
// swallowed; the booking response never waits on it.
type Module struct {
	sender    email.Sender
	reminders scheduler.ReminderScheduler
	cfg       config.NotificationConfig
	log       *logger.Logger
	now       func() time.Time
}

// New creates a new notification module. reminders may be nil when no
// task queue is configured.
func New(sender email.Sender, reminders scheduler.ReminderScheduler, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{
		sender:    sender,
		reminders: reminders,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.AppointmentBooked{}.EventName(), m)
	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.AppointmentBooked:
		m.handleAppointmentBooked(ctx, e)
	}
	return nil
}

func (m *Module) handleAppointmentBooked(ctx context.Context, e events.AppointmentBooked) {
	lead := e.Lead
	if lead.Meeting == nil {
		m.log.Warn("appointment booked without meeting", "lead_id", lead.ID.String())
		return
	}
	log := m.log.WithLeadID(lead.ID.String())

	var g errgroup.Group
	g.Go(func() error {
		if err := m.sender.SendAppointmentConfirmation(ctx, m.confirmation(lead)); err != nil {
			log.CollaboratorFailure("email", "confirmation", err)
			return nil
		}
		log.Info("confirmation email sent")
		return nil
	})
	g.Go(func() error {
		if err := m.sender.SendOrganizerNotification(ctx, m.organizerNotification(lead)); err != nil {
			log.CollaboratorFailure("email", "organizer_notification", err)
			return nil
		}
		log.Info("organizer notification sent")
		return nil
	})
	_ = g.Wait()

	m.scheduleReminder(ctx, lead)
}

func (m *Module) confirmation(lead domain.Lead) email.Confirmation {
	return email.Confirmation{
		ToEmail:     lead.Contact.Email,
		ToName:      lead.Contact.Nombre,
		Start:       lead.Meeting.Start,
		Duration:    lead.Meeting.End.Sub(lead.Meeting.Start),
		MeetingLink: lead.Meeting.Link,
	}
}

func (m *Module) organizerNotification(lead domain.Lead) email.OrganizerNotification {
	return email.OrganizerNotification{
		ToEmail:        m.cfg.GetOrganizerEmail(),
		Calificado:     lead.Calificado,
		Nombre:         lead.Contact.Nombre,
		Apellido:       lead.Contact.Apellido,
		Email:          lead.Contact.Email,
		WhatsApp:       lead.Contact.WhatsApp,
		Instagram:      lead.Contact.Instagram,
		Answers:        lead.Answers,
		MayorDesafio:   lead.Profile.MayorDesafio,
		OtrosDecisores: lead.Profile.OtrosDecisores,
		AceptaTerminos: lead.Profile.AceptaTerminos,
		Start:          lead.Meeting.Start,
		Duration:       lead.Meeting.End.Sub(lead.Meeting.Start),
		MeetingLink:    lead.Meeting.Link,
	}
}

func (m *Module) scheduleReminder(ctx context.Context, lead domain.Lead) {
	if m.reminders == nil {
		return
	}
	runAt := lead.Meeting.Start.Add(-m.cfg.GetReminderLeadTime())
	if !runAt.After(m.now()) {
		return
	}

	payload := scheduler.AppointmentReminderPayload{
		LeadID:      lead.ID.String(),
		Email:       lead.Contact.Email,
		Name:        lead.Contact.Nombre,
		Start:       lead.Meeting.Start,
		MeetingLink: lead.Meeting.Link,
	}
	if err := m.reminders.ScheduleAppointmentReminder(ctx, payload, runAt); err != nil {
		m.log.CollaboratorFailure("scheduler", "reminder", err)
	}
}
