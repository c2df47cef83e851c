// Package service implements lead intake and the admin views over the ledger.
package service

import (
	"context"
	"time"

	"funnel_backend/internal/adapters/storage"
	"funnel_backend/internal/events"
	"funnel_backend/internal/leads/domain"
	"funnel_backend/internal/leads/transport"
	"funnel_backend/internal/ledger"
	"funnel_backend/internal/qualification"
	"funnel_backend/platform/apperr"
	"funnel_backend/platform/logger"
)

const (
	msgQualified  = "Lead calificado exitosamente"
	msgRegistered = "Lead registrado"
)

// LedgerWriter records leads. Failures are logged by the writer.
type LedgerWriter interface {
	Append(ctx context.Context, lead domain.Lead) error
}

// WorkbookReader lists leads from the spreadsheet export.
type WorkbookReader interface {
	ReadAll() ([]map[string]string, error)
	Path() string
}

// LeadStore lists leads from the database.
type LeadStore interface {
	List(ctx context.Context, f ledger.ListFilter) ([]ledger.LeadRecord, int, error)
}

// ExportLocation is where the workbook mirror lives in object storage.
type ExportLocation struct {
	Store  storage.StorageService
	Bucket string
	Key    string
}

// Deps are the service collaborators. Ledger and Bus are required.
type Deps struct {
	Ledger   LedgerWriter
	Bus      events.Bus
	Workbook WorkbookReader
	Store    LeadStore
	Export   *ExportLocation
	Log      *logger.Logger
	Now      func() time.Time
}

type Service struct {
	deps Deps
}

func New(deps Deps) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Service{deps: deps}
}

// Register scores and records a lead that did not book a meeting.
func (s *Service) Register(ctx context.Context, req transport.IntakeRequest, clientID string) transport.RegisterResponse {
	lead := req.Lead(s.deps.Now())

	// sinks log their own failures
	_ = s.deps.Ledger.Append(ctx, lead)

	s.deps.Bus.Publish(ctx, events.LeadRegistered{
		BaseEvent: events.NewBaseEvent(),
		Lead:      lead,
		ClientID:  clientID,
	})

	s.deps.Log.WithLeadID(lead.ID.String()).Info("lead registered", "calificado", lead.Calificado, "score", lead.Score)

	msg := msgRegistered
	if lead.Calificado {
		msg = msgQualified
	}
	return transport.RegisterResponse{Calificado: lead.Calificado, Message: msg}
}

// Qualify scores answers without recording anything.
func (s *Service) Qualify(answers qualification.AnswerSet) transport.QualifyResponse {
	result := qualification.Evaluate(answers)
	return transport.QualifyResponse{
		Calificado: result.Calificado,
		Score:      result.Score,
		Threshold:  qualification.Threshold,
	}
}

// Rubric returns the scoring table for the intake form.
func (s *Service) Rubric() transport.RubricResponse {
	return transport.RubricResponse{
		Threshold: qualification.Threshold,
		MaxScore:  qualification.MaxScore,
		Criteria:  qualification.Rubric(),
	}
}

// List returns recorded leads, from the database when one is configured
// and from the workbook otherwise.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.ListLeadsResponse, error) {
	if s.deps.Store != nil {
		items, total, err := s.deps.Store.List(ctx, ledger.ListFilter{
			QualifiedOnly: req.Qualified,
			Limit:         req.Limit,
			Offset:        req.Offset,
		})
		if err != nil {
			return transport.ListLeadsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
		}
		return transport.ListLeadsResponse{Source: "postgres", Items: items, Total: total}, nil
	}

	if s.deps.Workbook == nil {
		return transport.ListLeadsResponse{}, apperr.Unavailable("no lead ledger configured")
	}
	records, err := s.deps.Workbook.ReadAll()
	if err != nil {
		return transport.ListLeadsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to read workbook", err)
	}
	if req.Qualified {
		filtered := records[:0]
		for _, r := range records {
			if r["calificado"] == "CALIFICA" {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	total := len(records)
	return transport.ListLeadsResponse{Source: "workbook", Items: page(records, req.Offset, req.Limit), Total: total}, nil
}

// WorkbookPath returns the local export for download.
func (s *Service) WorkbookPath() (string, error) {
	if s.deps.Workbook == nil {
		return "", apperr.NotFound("no workbook export configured")
	}
	return s.deps.Workbook.Path(), nil
}

// ExportURL presigns a download of the mirrored workbook.
func (s *Service) ExportURL(ctx context.Context) (transport.ExportURLResponse, error) {
	if s.deps.Export == nil {
		return transport.ExportURLResponse{}, apperr.NotFound("no object storage mirror configured")
	}
	url, err := s.deps.Export.Store.GenerateDownloadURL(ctx, s.deps.Export.Bucket, s.deps.Export.Key)
	if err != nil {
		return transport.ExportURLResponse{}, apperr.Wrap(apperr.KindUnavailable, "failed to presign export", err)
	}
	return transport.ExportURLResponse{URL: url.URL, ExpiresAt: url.ExpiresAt.Unix()}, nil
}

func page[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = 50
	}
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}
