package analytics

import (
	"context"
	"time"

	"funnel_backend/internal/events"
	"funnel_backend/platform/logger"
)

const (
	valueQualified    = 100
	valueNotQualified = 50
)

// Module turns funnel events into GA4 conversions.
type Module struct {
	client *Client
	log    *logger.Logger
}

func New(client *Client, log *logger.Logger) *Module {
	return &Module{client: client, log: log}
}

// RegisterHandlers subscribes to the funnel events. Nothing is subscribed
// when analytics is disabled.
func (m *Module) RegisterHandlers(bus events.Bus) {
	if m.client == nil {
		m.log.Warn("GA4 measurement protocol not configured; analytics disabled")
		return
	}
	bus.Subscribe(events.LeadRegistered{}.EventName(), m)
	bus.Subscribe(events.AppointmentBooked{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	var (
		clientID string
		batch    []Event
	)

	switch e := event.(type) {
	case events.LeadRegistered:
		clientID = e.ClientID
		batch = []Event{leadQualified(e.Lead.Calificado, e.Lead.Score, e.Lead.Answers.IngresoMensual)}
	case events.AppointmentBooked:
		clientID = e.ClientID
		lead := e.Lead
		batch = []Event{leadQualified(lead.Calificado, lead.Score, lead.Answers.IngresoMensual)}
		if lead.Meeting != nil {
			value := valueNotQualified
			if lead.Calificado {
				value = valueQualified
			}
			batch = append(batch,
				Event{Name: "calendar_event_created", Params: map[string]any{"success": lead.Meeting.EventCreated}},
				Event{Name: "appointment_booked", Params: map[string]any{
					"appointment_date": lead.Meeting.Start.UTC().Format(time.RFC3339),
					"calificado":       lead.Calificado,
					"method":           "google_meet",
					"value":            value,
					"currency":         "USD",
				}},
			)
		}
	default:
		return nil
	}

	if clientID == "" {
		clientID = NewClientID()
	}
	if err := m.client.Send(ctx, clientID, batch...); err != nil {
		m.log.CollaboratorFailure("analytics", event.EventName(), err)
	}
	return nil
}

func leadQualified(calificado bool, score int, ingreso string) Event {
	return Event{Name: "lead_qualified", Params: map[string]any{
		"calificado":      calificado,
		"score":           score,
		"ingreso_mensual": ingreso,
	}}
}
