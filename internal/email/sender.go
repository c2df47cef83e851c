package email

import (
	"context"
	"time"

	"funnel_backend/internal/qualification"
	"funnel_backend/platform/config"
)

// Confirmation is the booking confirmation sent to the lead.
type Confirmation struct {
	ToEmail     string
	ToName      string
	Start       time.Time
	Duration    time.Duration
	MeetingLink string
}

// OrganizerNotification tells the organizer a meeting was booked.
type OrganizerNotification struct {
	ToEmail        string
	Calificado     bool
	Nombre         string
	Apellido       string
	Email          string
	WhatsApp       string
	Instagram      string
	Answers        qualification.AnswerSet
	MayorDesafio   string
	OtrosDecisores string
	AceptaTerminos bool
	Start          time.Time
	Duration       time.Duration
	MeetingLink    string
}

// Reminder is sent ahead of the meeting by the worker.
type Reminder struct {
	ToEmail     string
	ToName      string
	Start       time.Time
	MeetingLink string
}

type Sender interface {
	SendAppointmentConfirmation(ctx context.Context, msg Confirmation) error
	SendOrganizerNotification(ctx context.Context, msg OrganizerNotification) error
	SendAppointmentReminder(ctx context.Context, msg Reminder) error
}

type NoopSender struct{}

func (NoopSender) SendAppointmentConfirmation(context.Context, Confirmation) error { return nil }

func (NoopSender) SendOrganizerNotification(context.Context, OrganizerNotification) error {
	return nil
}

func (NoopSender) SendAppointmentReminder(context.Context, Reminder) error { return nil }

// NewSender returns an SMTP sender, or a NoopSender when email is disabled.
// loc is the timezone dates are rendered in.
func NewSender(cfg config.EmailConfig, loc *time.Location) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(SMTPOptions{
		Host:      cfg.GetSMTPHost(),
		Port:      cfg.GetSMTPPort(),
		Secure:    cfg.GetSMTPSecure(),
		Username:  cfg.GetSMTPUsername(),
		Password:  cfg.GetSMTPPassword(),
		FromName:  cfg.GetEmailFromName(),
		FromEmail: cfg.GetEmailFromAddress(),
		Location:  loc,
	})
}
