package email

import (
	"context"
	"strings"
	"testing"
	"time"

	"funnel_backend/internal/qualification"
)

func bogota(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func TestFormatDateTimeInSpanish(t *testing.T) {
	loc := bogota(t)
	start := time.Date(2026, 2, 2, 19, 0, 0, 0, time.UTC)

	if got := formatDay(start, loc); got != "lunes, 2 de febrero de 2026" {
		t.Fatalf("unexpected day: %q", got)
	}
	if got := formatDateTime(start, loc); got != "lunes, 2 de febrero de 2026, 14:00" {
		t.Fatalf("unexpected date time: %q", got)
	}
}

func TestRenderConfirmation(t *testing.T) {
	loc := bogota(t)
	subject, body, err := renderConfirmation(Confirmation{
		ToEmail:     "ana@example.com",
		ToName:      "Ana",
		Start:       time.Date(2026, 2, 2, 14, 0, 0, 0, loc),
		Duration:    75 * time.Minute,
		MeetingLink: "https://meet.google.com/abc-defg-hij",
	}, loc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if subject != "✅ Confirmación de Reunión - ErickAds.ai - lunes, 2 de febrero de 2026" {
		t.Fatalf("unexpected subject: %q", subject)
	}
	for _, want := range []string{"Ana", "75 minutos", "https://meet.google.com/abc-defg-hij", "14:00"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q", want)
		}
	}
}

func TestRenderOrganizerNotificationSubjects(t *testing.T) {
	loc := bogota(t)
	msg := OrganizerNotification{
		ToEmail:  "erick@example.com",
		Nombre:   "Ana",
		Apellido: "Ruiz",
		Answers:  qualification.AnswerSet{InversionPublicidad: "Sí, actualmente"},
		Start:    time.Date(2026, 2, 3, 9, 0, 0, 0, loc),
		Duration: 75 * time.Minute,
	}

	subject, body, err := renderOrganizerNotification(msg, loc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(subject, "⚠️ NO CALIFICADO - Ana Ruiz - martes") {
		t.Fatalf("unexpected subject: %q", subject)
	}
	if !strings.Contains(body, "NO CALIFICADO") {
		t.Fatal("expected status in body")
	}

	msg.Calificado = true
	subject, _, err = renderOrganizerNotification(msg, loc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(subject, "🎯 CALIFICADO - Ana Ruiz") {
		t.Fatalf("unexpected subject: %q", subject)
	}
}

func TestRenderEscapesLeadInput(t *testing.T) {
	loc := bogota(t)
	_, body, err := renderOrganizerNotification(OrganizerNotification{
		Nombre:       "Ana",
		MayorDesafio: "<script>alert(1)</script>",
		Start:        time.Now(),
	}, loc)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(body, "<script>") {
		t.Fatal("expected lead input to be escaped")
	}
}

func TestOrganizerNotificationRequiresAddress(t *testing.T) {
	s := NewSMTPSender(SMTPOptions{Host: "localhost", Port: 2525})
	err := s.SendOrganizerNotification(context.Background(), OrganizerNotification{Nombre: "Ana"})
	if err != ErrNoOrganizer {
		t.Fatalf("expected ErrNoOrganizer, got %v", err)
	}
}

func TestNewSenderDisabled(t *testing.T) {
	if _, ok := NewSender(disabledConfig{}, nil).(NoopSender); !ok {
		t.Fatal("expected NoopSender when email is disabled")
	}
}

type disabledConfig struct{}

func (disabledConfig) GetEmailEnabled() bool       { return false }
func (disabledConfig) GetSMTPHost() string         { return "" }
func (disabledConfig) GetSMTPPort() int            { return 0 }
func (disabledConfig) GetSMTPSecure() bool         { return false }
func (disabledConfig) GetSMTPUsername() string     { return "" }
func (disabledConfig) GetSMTPPassword() string     { return "" }
func (disabledConfig) GetEmailFromName() string    { return "" }
func (disabledConfig) GetEmailFromAddress() string { return "" }
