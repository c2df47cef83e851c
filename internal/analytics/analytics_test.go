package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"funnel_backend/internal/events"
	"funnel_backend/internal/leads/domain"
	"funnel_backend/internal/qualification"
	"funnel_backend/platform/logger"
)

type testAnalyticsConfig struct{ id, secret string }

func (c testAnalyticsConfig) GetGAMeasurementID() string { return c.id }
func (c testAnalyticsConfig) GetGAAPISecret() string     { return c.secret }
func (c testAnalyticsConfig) IsAnalyticsEnabled() bool   { return c.id != "" && c.secret != "" }

type capture struct {
	mu       sync.Mutex
	requests []collectRequest
	query    string
}

func newTestClient(t *testing.T, status int) (*Client, *capture) {
	t.Helper()
	c := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body collectRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		c.mu.Lock()
		c.requests = append(c.requests, body)
		c.query = r.URL.RawQuery
		c.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(testAnalyticsConfig{id: "G-TEST", secret: "s3cret"})
	client.endpoint = srv.URL
	client.http = srv.Client()
	return client, c
}

func TestNewClientDisabled(t *testing.T) {
	if NewClient(testAnalyticsConfig{}) != nil {
		t.Fatal("expected nil client without credentials")
	}
	var c *Client
	if err := c.Send(context.Background(), "1.2", Event{Name: "x"}); err != nil {
		t.Fatalf("expected nil client to drop events, got %v", err)
	}
}

func TestSendAddsEngagementTime(t *testing.T) {
	client, got := newTestClient(t, http.StatusNoContent)

	if err := client.Send(context.Background(), "123.456", Event{Name: "lead_qualified"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.query != "api_secret=s3cret&measurement_id=G-TEST" {
		t.Fatalf("unexpected query: %s", got.query)
	}
	req := got.requests[0]
	if req.ClientID != "123.456" || req.Events[0].Params["engagement_time_msec"] != "100" {
		t.Fatalf("unexpected payload: %+v", req)
	}
}

func TestSendReportsHTTPFailure(t *testing.T) {
	client, _ := newTestClient(t, http.StatusBadRequest)
	if err := client.Send(context.Background(), "1.2", Event{Name: "x"}); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}

func TestAppointmentBookedEvents(t *testing.T) {
	client, got := newTestClient(t, http.StatusNoContent)
	m := New(client, logger.Discard())

	lead := domain.New(domain.Contact{Nombre: "Ana", Email: "ana@example.com"},
		qualification.AnswerSet{}, domain.Profile{}, time.Now())
	lead.Meeting = &domain.Meeting{Start: time.Date(2026, 2, 2, 19, 0, 0, 0, time.UTC), EventCreated: true}

	if err := m.Handle(context.Background(), events.AppointmentBooked{Lead: lead, ClientID: "9.9"}); err != nil {
		t.Fatal(err)
	}

	evs := got.requests[0].Events
	if len(evs) != 3 {
		t.Fatalf("expected 3 events, got %d", len(evs))
	}
	booked := evs[2]
	if booked.Name != "appointment_booked" || booked.Params["value"] != float64(valueNotQualified) || booked.Params["currency"] != "USD" {
		t.Fatalf("unexpected booking event: %+v", booked)
	}
	if booked.Params["appointment_date"] != "2026-02-02T19:00:00Z" {
		t.Fatalf("unexpected appointment date: %v", booked.Params["appointment_date"])
	}
}

func TestClientIDFromCookie(t *testing.T) {
	if got := ClientIDFromCookie("GA1.2.123456789.1700000000"); got != "123456789.1700000000" {
		t.Fatalf("unexpected client id %q", got)
	}
	generated := ClientIDFromCookie("garbage")
	if !regexp.MustCompile(`^\d+\.\d+$`).MatchString(generated) {
		t.Fatalf("unexpected generated id %q", generated)
	}
}
