package ledger

import (
	"time"

	"funnel_backend/internal/leads/domain"
)

const (
	qualifiedCell    = "CALIFICA"
	notQualifiedCell = "NO CALIFICA"

	registeredLayout = "02/01/2006 15:04:05"
	meetingDayLayout = "02/01/2006"
)

// column is one workbook column; Key names the field in ReadAll results.
type column struct {
	Header string
	Key    string
	Width  float64
}

var workbookColumns = []column{
	{"Fecha Registro", "fechaRegistro", 20},
	{"Calificado", "calificado", 12},
	{"Nombre", "nombre", 20},
	{"Apellido", "apellido", 20},
	{"Email", "email", 30},
	{"WhatsApp", "whatsapp", 20},
	{"Instagram", "instagram", 20},
	{"Ingreso Actual", "ingresoActual", 20},
	{"Ingreso Mensual", "ingresoMensual", 25},
	{"Tomador Decisión", "tomadorDecision", 20},
	{"Plazo Implementación", "plazoImplementacion", 20},
	{"Inversión Publicidad", "inversionPublicidad", 20},
	{"Mayor Desafío", "mayorDesafio", 30},
	{"Dispuesto Invertir", "dispuestoInvertir", 20},
	{"Confirma Contacto", "confirmaContacto", 40},
	{"Otros Decisores", "otrosDecisores", 30},
	{"Acepta Términos", "aceptaTerminos", 15},
	{"Fecha Reunión", "fechaReunion", 20},
	{"Hora Reunión", "horaReunion", 15},
}

// qualifiedColumn is the 1-based index of the "Calificado" column.
const qualifiedColumn = 2

func workbookRow(lead domain.Lead, loc *time.Location) []interface{} {
	qualified := notQualifiedCell
	if lead.Calificado {
		qualified = qualifiedCell
	}

	var meetingDay, meetingHour string
	if lead.Meeting != nil {
		meetingDay = lead.Meeting.Start.In(loc).Format(meetingDayLayout)
		meetingHour = lead.Meeting.Label
	}

	return []interface{}{
		lead.RegisteredAt.In(loc).Format(registeredLayout),
		qualified,
		lead.Contact.Nombre,
		lead.Contact.Apellido,
		lead.Contact.Email,
		lead.Contact.WhatsApp,
		lead.Contact.Instagram,
		lead.Profile.IngresoActual,
		lead.Answers.IngresoMensual,
		lead.Answers.TomadorDecision,
		lead.Answers.PlazoImplementacion,
		lead.Answers.InversionPublicidad,
		lead.Profile.MayorDesafio,
		lead.Answers.DispuestoInvertir,
		lead.Profile.ConfirmaContacto,
		lead.Profile.OtrosDecisores,
		yesNo(lead.Profile.AceptaTerminos),
		meetingDay,
		meetingHour,
	}
}

var sheetHeaders = []interface{}{
	"Fecha Registro",
	"Nombre",
	"Apellido",
	"WhatsApp",
	"Email",
	"Instagram",
	"Ingreso Actual",
	"Ingreso Mensual",
	"Tomador de Decisión",
	"Plazo Implementación",
	"Inversión Publicidad",
	"Mayor Desafío",
	"Dispuesto a Invertir",
	"Confirma Contacto",
	"Otros Decisores",
	"Acepta Términos",
	"Calificación",
}

func sheetRow(lead domain.Lead) []interface{} {
	ingresoActual := lead.Profile.IngresoActual
	if ingresoActual == "" {
		ingresoActual = "-"
	}
	qualified := "No calificado"
	if lead.Calificado {
		qualified = "Calificado"
	}

	return []interface{}{
		lead.RegisteredAt.UTC().Format(time.RFC3339),
		lead.Contact.Nombre,
		lead.Contact.Apellido,
		lead.Contact.WhatsApp,
		lead.Contact.Email,
		lead.Contact.Instagram,
		ingresoActual,
		lead.Answers.IngresoMensual,
		lead.Answers.TomadorDecision,
		lead.Answers.PlazoImplementacion,
		lead.Answers.InversionPublicidad,
		lead.Profile.MayorDesafio,
		lead.Answers.DispuestoInvertir,
		lead.Profile.ConfirmaContacto,
		lead.Profile.OtrosDecisores,
		yesNo(lead.Profile.AceptaTerminos),
		qualified,
	}
}

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}
