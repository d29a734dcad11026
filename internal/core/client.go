package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// client.go — typed HTTP client for the monitoring backend.
//
// One fetch contract for every resource kind: bounded timeout, typed
// decode, and a FetchError instead of a raw transport error so callers can
// pick fallback behavior. A failure on one kind never blocks another.
// ---------------------------------------------------------------------------

// ResourceKind identifies one backend resource and its expected shape.
type ResourceKind string

const (
	KindAlerts    ResourceKind = "alerts"
	KindAlertAck  ResourceKind = "alert_ack"
	KindIncidents ResourceKind = "incidents"
	KindTeams     ResourceKind = "teams"
	KindStats     ResourceKind = "dashboard_stats"
	KindOffences  ResourceKind = "offences"
	KindTrends    ResourceKind = "trends"
	KindExport    ResourceKind = "export"
)

// FailReason classifies a fetch failure.
type FailReason string

const (
	FailNetwork FailReason = "network"
	FailTimeout FailReason = "timeout"
	FailDecode  FailReason = "decode"
)

// FetchError is the only error type the client returns.
type FetchError struct {
	Kind   ResourceKind
	Reason FailReason
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.Kind, e.Reason, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// classify maps a transport error to a FailReason.
func classify(err error) FailReason {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return FailTimeout
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return FailTimeout
	}
	return FailNetwork
}

// Client talks to the backend API. It holds no state between calls.
type Client struct {
	base   string
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a backend client from config.
func NewClient(cfg *Config, logger zerolog.Logger) *Client {
	timeout := time.Duration(cfg.Backend.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:   cfg.Backend.BaseURL,
		http:   &http.Client{Timeout: timeout},
		logger: logger.With().Str("component", "client").Logger(),
	}
}

// getJSON issues one GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, kind ResourceKind, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return &FetchError{Kind: kind, Reason: FailNetwork, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Kind: kind, Reason: classify(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &FetchError{
			Kind:   kind,
			Reason: FailNetwork,
			Err:    fmt.Errorf("backend returned %d: %s", resp.StatusCode, string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Kind: kind, Reason: FailDecode, Err: err}
	}
	return nil
}

// FetchAlerts lists alerts. Acknowledged/severity narrowing happens
// client-side in the filter engine, so the full list is always fetched.
func (c *Client) FetchAlerts(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	if err := c.getJSON(ctx, KindAlerts, "/api/alerts", &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// FetchIncidents lists incidents.
func (c *Client) FetchIncidents(ctx context.Context) ([]Incident, error) {
	var incidents []Incident
	if err := c.getJSON(ctx, KindIncidents, "/api/incidents", &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// teamsEnvelope is the wrapped /api/teams response shape.
type teamsEnvelope struct {
	Teams []Team `json:"teams"`
	Total int    `json:"total"`
}

// FetchTeams lists response teams. The backend has shipped both a bare
// array and a {"teams": [...]} wrapper; accept either.
func (c *Client) FetchTeams(ctx context.Context) ([]Team, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, KindTeams, "/api/teams", &raw); err != nil {
		return nil, err
	}

	var teams []Team
	if err := json.Unmarshal(raw, &teams); err == nil {
		return teams, nil
	}
	var env teamsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &FetchError{Kind: KindTeams, Reason: FailDecode, Err: err}
	}
	return env.Teams, nil
}

// FetchStats retrieves the dashboard aggregate counters.
func (c *Client) FetchStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.getJSON(ctx, KindStats, "/api/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// FetchOffences lists newly reported offences.
func (c *Client) FetchOffences(ctx context.Context) ([]Offence, error) {
	var offences []Offence
	if err := c.getJSON(ctx, KindOffences, "/api/offences/new", &offences); err != nil {
		return nil, err
	}
	return offences, nil
}

// FetchTrends retrieves the analytics trend series for a period and metric.
func (c *Client) FetchTrends(ctx context.Context, period, metric string) (*TrendSeries, error) {
	path := fmt.Sprintf("/api/analytics/trends?period=%s&metric=%s",
		url.QueryEscape(period), url.QueryEscape(metric))
	var series TrendSeries
	if err := c.getJSON(ctx, KindTrends, path, &series); err != nil {
		return nil, err
	}
	return &series, nil
}

// Export streams an export of the given type and returns the raw bytes.
func (c *Client) Export(ctx context.Context, exportType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.base+"/api/export/"+url.PathEscape(exportType), nil)
	if err != nil {
		return nil, &FetchError{Kind: KindExport, Reason: FailNetwork, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindExport, Reason: classify(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &FetchError{
			Kind:   KindExport,
			Reason: FailNetwork,
			Err:    fmt.Errorf("backend returned %d: %s", resp.StatusCode, string(body)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindExport, Reason: FailNetwork, Err: err}
	}
	return data, nil
}

// AckRequest carries acknowledgment metadata to the backend.
type AckRequest struct {
	AcknowledgedBy string `json:"acknowledged_by"`
	ActionTaken    string `json:"action_taken"`
}

// Acknowledge posts the acknowledge mutation for one alert.
func (c *Client) Acknowledge(ctx context.Context, alertID string, ack AckRequest) error {
	payload, err := json.Marshal(ack)
	if err != nil {
		return &FetchError{Kind: KindAlertAck, Reason: FailDecode, Err: err}
	}

	u := c.base + "/api/alerts/" + url.PathEscape(alertID) + "/acknowledge"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return &FetchError{Kind: KindAlertAck, Reason: FailNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Kind: KindAlertAck, Reason: classify(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &FetchError{
			Kind:   KindAlertAck,
			Reason: FailNetwork,
			Err:    fmt.Errorf("acknowledge returned %d: %s", resp.StatusCode, string(body)),
		}
	}

	c.logger.Debug().Str("alert_id", alertID).Str("by", ack.AcknowledgedBy).Msg("acknowledge accepted")
	return nil
}
