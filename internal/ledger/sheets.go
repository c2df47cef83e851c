package ledger

import (
	"context"
	"fmt"
	"sync"

	"funnel_backend/internal/leads/domain"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	sheetsAppendRange = "A:Q"
	sheetsHeaderRange = "A1:Q1"
	valueInputOption  = "USER_ENTERED"
)

// Sheets appends leads to a Google spreadsheet.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string

	headersMu sync.Mutex
	headersOK bool
}

// NewSheets builds a Sheets sink. opts carry the token source, or an
// endpoint override in tests.
func NewSheets(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Sheets, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Sheets{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Name implements Sink.
func (s *Sheets) Name() string { return "sheets" }

// EnsureHeaders writes the header row when the first row is empty.
func (s *Sheets) EnsureHeaders(ctx context.Context) error {
	s.headersMu.Lock()
	defer s.headersMu.Unlock()
	if s.headersOK {
		return nil
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheetsHeaderRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read sheet headers: %w", err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		vr := &sheets.ValueRange{Values: [][]interface{}{sheetHeaders}}
		if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, sheetsHeaderRange, vr).
			ValueInputOption(valueInputOption).Context(ctx).Do(); err != nil {
			return fmt.Errorf("write sheet headers: %w", err)
		}
	}
	s.headersOK = true
	return nil
}

// Append implements Sink.
func (s *Sheets) Append(ctx context.Context, lead domain.Lead) error {
	if err := s.EnsureHeaders(ctx); err != nil {
		return err
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{sheetRow(lead)}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, sheetsAppendRange, vr).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append sheet row: %w", err)
	}
	return nil
}

var _ Sink = (*Sheets)(nil)
