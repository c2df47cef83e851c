package transport

import (
	leadtransport "funnel_backend/internal/leads/transport"
)

// SlotsRequest holds the slot query.
type SlotsRequest struct {
	Date string `form:"date" validate:"required"`
}

// BookRequest is the intake form plus the chosen slot.
type BookRequest struct {
	leadtransport.IntakeRequest
	// Fecha is the meeting date, "2006-01-02" or an RFC 3339 timestamp.
	Fecha string `json:"fecha" validate:"required"`
	// Hora is a slot label such as "2:00 PM".
	Hora string `json:"hora" validate:"required"`
}

// BookResponse answers POST /api/calendar/appointment. Times are RFC 3339.
type BookResponse struct {
	MeetingLink string `json:"meetingLink"`
	Calificado  bool   `json:"calificado"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}
