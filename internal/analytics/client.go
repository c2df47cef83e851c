// Package analytics reports funnel conversions to GA4 through the
// Measurement Protocol.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"funnel_backend/platform/config"
)

const collectURL = "https://www.google-analytics.com/mp/collect"

// Event is one GA4 event.
type Event struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

type collectRequest struct {
	ClientID string  `json:"client_id"`
	Events   []Event `json:"events"`
}

// Client sends events for a single measurement stream.
type Client struct {
	endpoint      string
	measurementID string
	apiSecret     string
	http          *http.Client
}

// NewClient returns nil when analytics is not configured; a nil Client
// drops every event.
func NewClient(cfg config.AnalyticsConfig) *Client {
	if !cfg.IsAnalyticsEnabled() {
		return nil
	}
	return &Client{
		endpoint:      collectURL,
		measurementID: cfg.GetGAMeasurementID(),
		apiSecret:     cfg.GetGAAPISecret(),
		http:          &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts events for clientID. Every event gets the engagement time
// GA4 needs to count it as a session.
func (c *Client) Send(ctx context.Context, clientID string, events ...Event) error {
	if c == nil || len(events) == 0 {
		return nil
	}

	for i := range events {
		params := make(map[string]any, len(events[i].Params)+1)
		for k, v := range events[i].Params {
			params[k] = v
		}
		params["engagement_time_msec"] = "100"
		events[i].Params = params
	}

	body, err := json.Marshal(collectRequest{ClientID: clientID, Events: events})
	if err != nil {
		return fmt.Errorf("marshal analytics payload: %w", err)
	}

	q := url.Values{}
	q.Set("measurement_id", c.measurementID)
	q.Set("api_secret", c.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?"+q.Encode(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build analytics request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send analytics request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("analytics request failed with status %d", resp.StatusCode)
	}
	return nil
}
