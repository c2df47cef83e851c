package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"google.golang.org/api/option"
)

type sheetsServer struct {
	mu          sync.Mutex
	headerRow   bool
	updates     int
	appended    [][]interface{}
	inputOption string
}

func (s *sheetsServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		resp := map[string]any{"range": "Sheet1!A1:Q1"}
		if s.headerRow {
			resp["values"] = [][]string{{"Fecha Registro"}}
		}
		_ = json.NewEncoder(w).Encode(resp)
	case http.MethodPut:
		s.updates++
		s.headerRow = true
		_ = json.NewEncoder(w).Encode(map[string]any{"updatedRows": 1})
	case http.MethodPost:
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.appended = append(s.appended, body.Values...)
		s.inputOption = r.URL.Query().Get("valueInputOption")
		_ = json.NewEncoder(w).Encode(map[string]any{"spreadsheetId": "sheet"})
	default:
		http.Error(w, "unexpected", http.StatusMethodNotAllowed)
	}
}

func newTestSheets(t *testing.T, s *sheetsServer) *Sheets {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(srv.Close)

	sink, err := NewSheets(context.Background(), "sheet",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatal(err)
	}
	return sink
}

func TestSheetsWritesHeadersOnceThenAppends(t *testing.T) {
	srv := &sheetsServer{}
	sink := newTestSheets(t, srv)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := sink.Append(ctx, testLead(true)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if srv.updates != 1 {
		t.Fatalf("expected headers to be written once, got %d", srv.updates)
	}
	if len(srv.appended) != 2 {
		t.Fatalf("expected 2 appended rows, got %d", len(srv.appended))
	}
	row := srv.appended[0]
	if len(row) != 17 {
		t.Fatalf("expected 17 columns, got %d", len(row))
	}
	if row[1] != "Ana" || row[16] != "Calificado" {
		t.Fatalf("unexpected row: %v", row)
	}
	if srv.inputOption != "USER_ENTERED" {
		t.Fatalf("unexpected value input option %q", srv.inputOption)
	}
}

func TestSheetsKeepsExistingHeaders(t *testing.T) {
	srv := &sheetsServer{headerRow: true}
	sink := newTestSheets(t, srv)

	if err := sink.Append(context.Background(), testLead(false)); err != nil {
		t.Fatal(err)
	}
	if srv.updates != 0 {
		t.Fatal("expected existing headers to be left alone")
	}
	if got := srv.appended[0][6]; got != "-" {
		t.Fatalf("expected placeholder for empty income, got %v", got)
	}
}
