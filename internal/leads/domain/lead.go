// Package domain holds the lead record shared by the intake, booking,
// ledger and notification flows.
package domain

import (
	"strings"
	"time"

	"funnel_backend/internal/qualification"

	"github.com/google/uuid"
)

// Contact holds how to reach the lead.
type Contact struct {
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	WhatsApp  string `json:"whatsapp"`
	Email     string `json:"email"`
	Instagram string `json:"instagram"`
}

// Profile holds the unscored intake answers.
type Profile struct {
	IngresoActual    string `json:"ingresoActual"`
	MayorDesafio     string `json:"mayorDesafio"`
	ConfirmaContacto string `json:"confirmaContacto"`
	OtrosDecisores   string `json:"otrosDecisores"`
	AceptaTerminos   bool   `json:"aceptaTerminos"`
}

// Meeting is the booked consultation, present only on booked leads.
type Meeting struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Label        string    `json:"label"`
	Link         string    `json:"link"`
	EventCreated bool      `json:"eventCreated"`
}

// Lead is one intake submission with its qualification outcome.
type Lead struct {
	ID           uuid.UUID               `json:"id"`
	RegisteredAt time.Time               `json:"registeredAt"`
	Contact      Contact                 `json:"contact"`
	Answers      qualification.AnswerSet `json:"answers"`
	Profile      Profile                 `json:"profile"`
	Score        int                     `json:"score"`
	Calificado   bool                    `json:"calificado"`
	Meeting      *Meeting                `json:"meeting,omitempty"`
}

// New creates a lead and scores its answers.
func New(contact Contact, answers qualification.AnswerSet, profile Profile, now time.Time) Lead {
	result := qualification.Evaluate(answers)
	return Lead{
		ID:           uuid.New(),
		RegisteredAt: now,
		Contact:      contact,
		Answers:      answers,
		Profile:      profile,
		Score:        result.Score,
		Calificado:   result.Calificado,
	}
}

// FullName joins first and last name.
func (l Lead) FullName() string {
	return strings.TrimSpace(l.Contact.Nombre + " " + l.Contact.Apellido)
}

// QualificationLabel is the status shown in the organizer's records.
func (l Lead) QualificationLabel() string {
	if l.Calificado {
		return "CALIFICADO"
	}
	return "NO CALIFICADO"
}
