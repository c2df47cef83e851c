package email

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoOrganizer is returned when no organizer address is configured.
var ErrNoOrganizer = errors.New("organizer email not configured")

const joinLabel = "UNIRSE A LA REUNIÓN"

func renderConfirmation(msg Confirmation, loc *time.Location) (subject, content string, err error) {
	subject = fmt.Sprintf(subjectConfirmationFmt, formatDay(msg.Start, loc))
	content, err = renderEmailTemplate("confirmation.html", confirmationEmailData{
		baseEmailData: baseEmailData{
			Title:      "Confirmación de Reunión",
			Heading:    "¡Reunión Confirmada! 🎉",
			Subheading: "Tu consultoría estratégica está programada",
			CTALabel:   joinLabel,
			CTAURL:     msg.MeetingLink,
		},
		Name:     msg.ToName,
		Date:     formatDateTime(msg.Start, loc),
		Duration: formatMinutes(msg.Duration),
	})
	return subject, content, err
}

func renderOrganizerNotification(msg OrganizerNotification, loc *time.Location) (subject, content string, err error) {
	format := subjectNotQualifiedFmt
	if msg.Calificado {
		format = subjectQualifiedFmt
	}
	subject = fmt.Sprintf(format, msg.Nombre, msg.Apellido, formatDay(msg.Start, loc))

	content, err = renderEmailTemplate("organizer_notification.html", organizerEmailData{
		baseEmailData: baseEmailData{
			Title:      "Nueva Reunión Agendada",
			Heading:    "📅 Nueva Reunión Agendada",
			Subheading: "Verificación de Lead y Detalles de Agenda",
			CTALabel:   "Unirse a la reunión",
			CTAURL:     msg.MeetingLink,
		},
		Calificado:          msg.Calificado,
		FullName:            msg.Nombre + " " + msg.Apellido,
		Email:               msg.Email,
		WhatsApp:            msg.WhatsApp,
		Instagram:           msg.Instagram,
		IngresoMensual:      msg.Answers.IngresoMensual,
		TomadorDecision:     msg.Answers.TomadorDecision,
		MayorDesafio:        msg.MayorDesafio,
		PlazoImplementacion: msg.Answers.PlazoImplementacion,
		DispuestoInvertir:   msg.Answers.DispuestoInvertir,
		InversionPublicidad: msg.Answers.InversionPublicidad,
		InvierteActualmente: msg.Answers.InversionPublicidad == "Sí, actualmente",
		OtrosDecisores:      msg.OtrosDecisores,
		AceptaTerminos:      msg.AceptaTerminos,
		Date:                formatDateTime(msg.Start, loc),
		Duration:            formatMinutes(msg.Duration),
	})
	return subject, content, err
}

func renderReminder(msg Reminder, loc *time.Location) (subject, content string, err error) {
	date := formatDateTime(msg.Start, loc)
	subject = fmt.Sprintf(subjectReminderFmt, formatDay(msg.Start, loc))
	content, err = renderEmailTemplate("reminder.html", reminderEmailData{
		baseEmailData: baseEmailData{
			Title:    "Recordatorio de Reunión",
			Heading:  "⏰ Tu reunión se acerca",
			CTALabel: joinLabel,
			CTAURL:   msg.MeetingLink,
		},
		Name: msg.ToName,
		Date: date,
	})
	return subject, content, err
}
