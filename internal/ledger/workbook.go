package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"funnel_backend/internal/adapters/storage"
	"funnel_backend/internal/leads/domain"

	"github.com/xuri/excelize/v2"
)

const (
	workbookFile  = "leads.xlsx"
	workbookSheet = "Leads"
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Mirror uploads the saved workbook after every append.
type Mirror struct {
	Store  storage.StorageService
	Bucket string
	Key    string
}

// Workbook appends leads to a local xlsx file. Appends are serialized;
// the file is reopened for every write so external edits are kept.
type Workbook struct {
	path   string
	loc    *time.Location
	mirror *Mirror

	mu sync.Mutex
}

// NewWorkbook creates the export directory and returns the sink.
func NewWorkbook(dir string, loc *time.Location) (*Workbook, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Workbook{path: filepath.Join(dir, workbookFile), loc: loc}, nil
}

// WithMirror enables uploading the workbook to object storage.
func (w *Workbook) WithMirror(m *Mirror) *Workbook {
	w.mirror = m
	return w
}

// Path returns the workbook location on disk.
func (w *Workbook) Path() string { return w.path }

// Name implements Sink.
func (w *Workbook) Name() string { return "workbook" }

// Append implements Sink.
func (w *Workbook) Append(ctx context.Context, lead domain.Lead) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(workbookSheet)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}
	next := len(rows) + 1

	cell, err := excelize.CoordinatesToCellName(1, next)
	if err != nil {
		return err
	}
	values := workbookRow(lead, w.loc)
	if err := f.SetSheetRow(workbookSheet, cell, &values); err != nil {
		return fmt.Errorf("write row: %w", err)
	}

	if err := styleQualifiedCell(f, next, lead.Calificado); err != nil {
		return err
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	if w.mirror != nil {
		if err := w.mirror.Store.PutFile(ctx, w.mirror.Bucket, w.mirror.Key, w.path, xlsxMIME); err != nil {
			return fmt.Errorf("mirror workbook: %w", err)
		}
	}
	return nil
}

// ReadAll returns every recorded lead keyed by column key. A missing
// workbook yields an empty slice.
func (w *Workbook) ReadAll() ([]map[string]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := os.Stat(w.path); errors.Is(err, os.ErrNotExist) {
		return []map[string]string{}, nil
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(workbookSheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	records := make([]map[string]string, 0, max(len(rows)-1, 0))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		record := make(map[string]string, len(workbookColumns))
		for col, value := range row {
			if col < len(workbookColumns) && value != "" {
				record[workbookColumns[col].Key] = value
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func (w *Workbook) open() (*excelize.File, error) {
	if _, err := os.Stat(w.path); err == nil {
		f, err := excelize.OpenFile(w.path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		if idx, _ := f.GetSheetIndex(workbookSheet); idx == -1 {
			if err := initSheet(f, false); err != nil {
				f.Close()
				return nil, err
			}
		}
		return f, nil
	}

	f := excelize.NewFile()
	if err := initSheet(f, true); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// initSheet creates the Leads sheet with its styled header row. A fresh
// file renames its default sheet instead of adding one.
func initSheet(f *excelize.File, fresh bool) error {
	if fresh {
		if err := f.SetSheetName(f.GetSheetName(0), workbookSheet); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(workbookSheet); err != nil {
		return err
	}

	headers := make([]interface{}, len(workbookColumns))
	for i, c := range workbookColumns {
		headers[i] = c.Header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(workbookSheet, name, name, c.Width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(workbookSheet, "A1", &headers); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00FF00"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(workbookColumns), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(workbookSheet, "A1", last, style)
}

func styleQualifiedCell(f *excelize.File, row int, qualified bool) error {
	fill, font := "FFCCCC", "8B0000"
	if qualified {
		fill, font = "90EE90", "006400"
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: font},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
	})
	if err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(qualifiedColumn, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(workbookSheet, cell, cell, style)
}

var _ Sink = (*Workbook)(nil)
