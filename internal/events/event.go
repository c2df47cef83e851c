// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"funnel_backend/internal/leads/domain"
	"funnel_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadRegistered is published when a lead submits the intake form without
// booking a meeting.
type LeadRegistered struct {
	BaseEvent
	Lead domain.Lead `json:"lead"`
	// ClientID identifies the browser for analytics.
	ClientID string `json:"clientId"`
}

func (e LeadRegistered) EventName() string { return "leads.lead.registered" }

// =============================================================================
// Appointments Domain Events
// =============================================================================

// AppointmentBooked is published after a consultation has been booked.
// Lead.Meeting is always set.
type AppointmentBooked struct {
	BaseEvent
	Lead     domain.Lead `json:"lead"`
	ClientID string      `json:"clientId"`
}

func (e AppointmentBooked) EventName() string { return "appointments.appointment.booked" }
