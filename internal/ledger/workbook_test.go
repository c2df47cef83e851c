package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"funnel_backend/internal/adapters/storage"
	"funnel_backend/internal/leads/domain"

	"github.com/xuri/excelize/v2"
)

type fakeStore struct {
	bucket, key, path, contentType string
	err                            error
}

func (s *fakeStore) EnsureBucketExists(context.Context, string) error { return nil }

func (s *fakeStore) PutFile(_ context.Context, bucket, key, path, contentType string) error {
	s.bucket, s.key, s.path, s.contentType = bucket, key, path, contentType
	return s.err
}

func (s *fakeStore) GenerateDownloadURL(context.Context, string, string) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{}, nil
}

func bogota(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func TestWorkbookAppendAndReadAll(t *testing.T) {
	loc := bogota(t)
	wb, err := NewWorkbook(filepath.Join(t.TempDir(), "exports"), loc)
	if err != nil {
		t.Fatal(err)
	}

	booked := testLead(true)
	booked.Meeting = &domain.Meeting{
		Start: time.Date(2026, 2, 2, 14, 0, 0, 0, loc),
		Label: "2:00 PM",
	}

	ctx := context.Background()
	if err := wb.Append(ctx, booked); err != nil {
		t.Fatalf("append qualified: %v", err)
	}
	if err := wb.Append(ctx, testLead(false)); err != nil {
		t.Fatalf("append unqualified: %v", err)
	}

	records, err := wb.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first["calificado"] != "CALIFICA" || first["nombre"] != "Ana" {
		t.Fatalf("unexpected first record: %v", first)
	}
	// 15:30 UTC is 10:30 in Bogotá.
	if first["fechaRegistro"] != "02/02/2026 10:30:00" {
		t.Fatalf("unexpected registration time: %q", first["fechaRegistro"])
	}
	if first["fechaReunion"] != "02/02/2026" || first["horaReunion"] != "2:00 PM" {
		t.Fatalf("unexpected meeting columns: %v", first)
	}
	if first["aceptaTerminos"] != "Sí" {
		t.Fatalf("unexpected terms column: %q", first["aceptaTerminos"])
	}
	if records[1]["calificado"] != "NO CALIFICA" {
		t.Fatalf("unexpected second record: %v", records[1])
	}
}

func TestWorkbookHeaderAndStyles(t *testing.T) {
	wb, err := NewWorkbook(t.TempDir(), bogota(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := wb.Append(context.Background(), testLead(true)); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(wb.Path())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	header, err := f.GetCellValue(workbookSheet, "A1")
	if err != nil || header != "Fecha Registro" {
		t.Fatalf("unexpected header %q (%v)", header, err)
	}
	last, _ := f.GetCellValue(workbookSheet, "S1")
	if last != "Hora Reunión" {
		t.Fatalf("expected 19 header columns, last is %q", last)
	}

	styleID, err := f.GetCellStyle(workbookSheet, "B2")
	if err != nil {
		t.Fatal(err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatal(err)
	}
	if len(style.Fill.Color) == 0 || !strings.HasSuffix(strings.ToUpper(style.Fill.Color[0]), "90EE90") {
		t.Fatalf("expected qualified fill, got %+v", style.Fill)
	}
}

func TestWorkbookReadAllWithoutFile(t *testing.T) {
	wb, err := NewWorkbook(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	records, err := wb.ReadAll()
	if err != nil || len(records) != 0 {
		t.Fatalf("expected empty result, got %v (%v)", records, err)
	}
}

func TestWorkbookMirrorsToStorage(t *testing.T) {
	store := &fakeStore{}
	wb, err := NewWorkbook(t.TempDir(), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	wb.WithMirror(&Mirror{Store: store, Bucket: "lead-ledger", Key: "leads.xlsx"})

	if err := wb.Append(context.Background(), testLead(true)); err != nil {
		t.Fatal(err)
	}
	if store.bucket != "lead-ledger" || store.key != "leads.xlsx" || store.path != wb.Path() {
		t.Fatalf("unexpected upload: %+v", store)
	}

	store.err = errors.New("minio down")
	if err := wb.Append(context.Background(), testLead(false)); err == nil {
		t.Fatal("expected mirror failure to surface")
	}
	if _, err := os.Stat(wb.Path()); err != nil {
		t.Fatalf("expected local workbook to survive mirror failure: %v", err)
	}
}
