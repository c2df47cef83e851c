package ledger

import (
	"context"
	"fmt"
	"time"

	"funnel_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres records leads in the leads table and serves the admin listing.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Name implements Sink.
func (p *Postgres) Name() string { return "postgres" }

// Append implements Sink. Re-appending the same lead updates its meeting.
func (p *Postgres) Append(ctx context.Context, lead domain.Lead) error {
	query := `
		INSERT INTO leads
			(id, registered_at, qualified, score, nombre, apellido, email, whatsapp, instagram,
			 ingreso_actual, ingreso_mensual, tomador_decision, plazo_implementacion, inversion_publicidad,
			 mayor_desafio, dispuesto_invertir, confirma_contacto, otros_decisores, acepta_terminos,
			 meeting_start, meeting_link)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (id) DO UPDATE
			SET meeting_start = EXCLUDED.meeting_start, meeting_link = EXCLUDED.meeting_link`

	_, err := p.pool.Exec(ctx, query, insertArgs(lead)...)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

// insertArgs lists the Append parameters in column order.
func insertArgs(lead domain.Lead) []any {
	var meetingStart *time.Time
	var meetingLink string
	if lead.Meeting != nil {
		start := lead.Meeting.Start
		meetingStart = &start
		meetingLink = lead.Meeting.Link
	}

	return []any{
		lead.ID,
		lead.RegisteredAt,
		lead.Calificado,
		lead.Score,
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
		lead.Profile.AceptaTerminos,
		meetingStart,
		meetingLink,
	}
}

// LeadRecord is one stored lead as returned to administrators.
type LeadRecord struct {
	ID           uuid.UUID  `json:"id"`
	RegisteredAt time.Time  `json:"registeredAt"`
	Calificado   bool       `json:"calificado"`
	Score        int        `json:"score"`
	Nombre       string     `json:"nombre"`
	Apellido     string     `json:"apellido"`
	Email        string     `json:"email"`
	WhatsApp     string     `json:"whatsapp"`
	Instagram    string     `json:"instagram"`
	MeetingStart *time.Time `json:"meetingStart,omitempty"`
	MeetingLink  string     `json:"meetingLink,omitempty"`
}

// ListFilter narrows the admin listing.
type ListFilter struct {
	QualifiedOnly bool
	Limit         int
	Offset        int
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// normalized clamps the page to defaultListLimit when out of range and
// the offset to zero.
func (f ListFilter) normalized() ListFilter {
	if f.Limit <= 0 || f.Limit > maxListLimit {
		f.Limit = defaultListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// List returns stored leads, newest first, and the total matching count.
func (p *Postgres) List(ctx context.Context, f ListFilter) ([]LeadRecord, int, error) {
	f = f.normalized()

	var total int
	if err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE ($1::bool = false OR qualified)`, f.QualifiedOnly,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}

	rows, err := p.pool.Query(ctx, `
		SELECT id, registered_at, qualified, score, nombre, apellido, email, whatsapp, instagram,
			meeting_start, meeting_link
		FROM leads
		WHERE ($1::bool = false OR qualified)
		ORDER BY registered_at DESC
		LIMIT $2 OFFSET $3`, f.QualifiedOnly, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leads: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (LeadRecord, error) {
		var r LeadRecord
		err := row.Scan(&r.ID, &r.RegisteredAt, &r.Calificado, &r.Score, &r.Nombre, &r.Apellido,
			&r.Email, &r.WhatsApp, &r.Instagram, &r.MeetingStart, &r.MeetingLink)
		return r, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan leads: %w", err)
	}
	return records, total, nil
}

var _ Sink = (*Postgres)(nil)
