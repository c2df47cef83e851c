package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type confirmationEmailData struct {
	baseEmailData
	Name     string
	Date     string
	Duration string
}

type organizerEmailData struct {
	baseEmailData
	Calificado          bool
	FullName            string
	Email               string
	WhatsApp            string
	Instagram           string
	IngresoMensual      string
	TomadorDecision     string
	MayorDesafio        string
	PlazoImplementacion string
	DispuestoInvertir   string
	InversionPublicidad string
	InvierteActualmente bool
	OtrosDecisores      string
	AceptaTerminos      bool
	Date                string
	Duration            string
}

type reminderEmailData struct {
	baseEmailData
	Name string
	Date string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
