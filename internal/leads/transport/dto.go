package transport

import (
	"time"

	"funnel_backend/internal/leads/domain"
	"funnel_backend/internal/qualification"
	"funnel_backend/platform/phone"
	"funnel_backend/platform/sanitize"
)

// IntakeRequest is the landing-page form. Scored answers are matched
// exactly, so they are never trimmed or sanitized.
type IntakeRequest struct {
	Nombre    string `json:"nombre" validate:"required,max=100"`
	Apellido  string `json:"apellido" validate:"max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	WhatsApp  string `json:"whatsapp" validate:"omitempty,whatsapp"`
	Instagram string `json:"instagram" validate:"omitempty,instagram"`

	IngresoMensual      string `json:"ingresoMensual" validate:"max=100"`
	TomadorDecision     string `json:"tomadorDecision" validate:"max=100"`
	PlazoImplementacion string `json:"plazoImplementacion" validate:"max=100"`
	InversionPublicidad string `json:"inversionPublicidad" validate:"max=100"`
	DispuestoInvertir   string `json:"dispuestoInvertir" validate:"max=100"`

	IngresoActual    string `json:"ingresoActual" validate:"max=200"`
	MayorDesafio     string `json:"mayorDesafio" validate:"max=2000"`
	ConfirmaContacto string `json:"confirmaContacto" validate:"max=200"`
	OtrosDecisores   string `json:"otrosDecisores" validate:"max=200"`
	AceptaTerminos   bool   `json:"aceptaTerminos"`
}

// Answers returns the scored part of the form.
func (r IntakeRequest) Answers() qualification.AnswerSet {
	return qualification.AnswerSet{
		IngresoMensual:      r.IngresoMensual,
		TomadorDecision:     r.TomadorDecision,
		PlazoImplementacion: r.PlazoImplementacion,
		InversionPublicidad: r.InversionPublicidad,
		DispuestoInvertir:   r.DispuestoInvertir,
	}
}

// Lead converts a validated request into a scored lead.
func (r IntakeRequest) Lead(now time.Time) domain.Lead {
	contact := domain.Contact{
		Nombre:    sanitize.Line(r.Nombre),
		Apellido:  sanitize.Line(r.Apellido),
		Email:     sanitize.Line(r.Email),
		WhatsApp:  phone.NormalizeE164(r.WhatsApp),
		Instagram: sanitize.Line(r.Instagram),
	}
	profile := domain.Profile{
		IngresoActual:    sanitize.Line(r.IngresoActual),
		MayorDesafio:     sanitize.Text(r.MayorDesafio),
		ConfirmaContacto: sanitize.Line(r.ConfirmaContacto),
		OtrosDecisores:   sanitize.Line(r.OtrosDecisores),
		AceptaTerminos:   r.AceptaTerminos,
	}
	return domain.New(contact, r.Answers(), profile, now)
}

// RegisterResponse answers POST /api/leads.
type RegisterResponse struct {
	Calificado bool   `json:"calificado"`
	Message    string `json:"message"`
}

// QualifyResponse answers POST /api/leads/qualify.
type QualifyResponse struct {
	Calificado bool `json:"calificado"`
	Score      int  `json:"score"`
	Threshold  int  `json:"threshold"`
}

// RubricResponse answers GET /api/leads/rubric.
type RubricResponse struct {
	Threshold int                       `json:"threshold"`
	MaxScore  int                       `json:"maxScore"`
	Criteria  []qualification.Criterion `json:"criteria"`
}

// ListLeadsRequest holds the admin listing query.
type ListLeadsRequest struct {
	Qualified bool `form:"qualified"`
	Limit     int  `form:"limit" validate:"omitempty,min=1,max=200"`
	Offset    int  `form:"offset" validate:"omitempty,min=0"`
}

// ListLeadsResponse answers GET /api/admin/leads. Source tells which
// ledger the items were read from ("postgres" or "workbook").
type ListLeadsResponse struct {
	Source string `json:"source"`
	Items  any    `json:"items"`
	Total  int    `json:"total"`
}

// ExportURLResponse answers GET /api/admin/leads/export-url.
type ExportURLResponse struct {
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expiresAt"`
}
