package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testClient(base string) *Client {
	return &Client{
		base:   base,
		http:   &http.Client{Timeout: 2 * time.Second},
		logger: zerolog.Nop(),
	}
}

func TestClient_FetchAlerts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/alerts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Alert{
			{ID: "a1", Severity: SeverityHigh},
			{ID: "a2", Severity: SeverityLow},
		})
	}))
	defer srv.Close()

	alerts, err := testClient(srv.URL).FetchAlerts(context.Background())
	if err != nil {
		t.Fatalf("FetchAlerts: %v", err)
	}
	if len(alerts) != 2 || alerts[0].ID != "a1" {
		t.Errorf("unexpected alerts: %+v", alerts)
	}
}

func TestClient_FetchAlerts_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchAlerts(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Reason != FailDecode || fe.Kind != KindAlerts {
		t.Errorf("unexpected classification: %+v", fe)
	}
}

func TestClient_FetchAlerts_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := testClient(srv.URL).FetchAlerts(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Reason != FailNetwork {
		t.Errorf("expected network reason, got %s", fe.Reason)
	}
}

func TestClient_FetchAlerts_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.http.Timeout = 20 * time.Millisecond

	_, err := c.FetchAlerts(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Reason != FailTimeout {
		t.Errorf("expected timeout reason, got %s", fe.Reason)
	}
}

func TestClient_FetchAlerts_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchAlerts(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Reason != FailNetwork {
		t.Errorf("expected network reason for HTTP 500, got %s", fe.Reason)
	}
}

func TestClient_FetchTeams_BareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Team{{ID: "team_001", Status: TeamAvailable}})
	}))
	defer srv.Close()

	teams, err := testClient(srv.URL).FetchTeams(context.Background())
	if err != nil {
		t.Fatalf("FetchTeams: %v", err)
	}
	if len(teams) != 1 || teams[0].ID != "team_001" {
		t.Errorf("unexpected teams: %+v", teams)
	}
}

func TestClient_FetchTeams_Envelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"teams": []Team{{ID: "team_001"}, {ID: "team_002"}},
			"total": 2,
		})
	}))
	defer srv.Close()

	teams, err := testClient(srv.URL).FetchTeams(context.Background())
	if err != nil {
		t.Fatalf("FetchTeams: %v", err)
	}
	if len(teams) != 2 || teams[1].ID != "team_002" {
		t.Errorf("unexpected teams: %+v", teams)
	}
}

func TestClient_FetchStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"incidents": {"total": 5, "active": 2, "high_risk": 1, "pending_reviews": 3},
			"system": {"cameras_online": 4, "system_health": "optimal"},
			"timestamp": "2026-08-29T10:00:00"
		}`))
	}))
	defer srv.Close()

	stats, err := testClient(srv.URL).FetchStats(context.Background())
	if err != nil {
		t.Fatalf("FetchStats: %v", err)
	}
	if stats.Incidents.Active != 2 || stats.System.SystemHealth != "optimal" {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestClient_Acknowledge(t *testing.T) {
	var gotBody AckRequest
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"message": "Alert acknowledged successfully"}`))
	}))
	defer srv.Close()

	err := testClient(srv.URL).Acknowledge(context.Background(), "alert_001", AckRequest{
		AcknowledgedBy: "op1",
		ActionTaken:    "dispatched team",
	})
	if err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if gotPath != "/api/alerts/alert_001/acknowledge" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotBody.AcknowledgedBy != "op1" || gotBody.ActionTaken != "dispatched team" {
		t.Errorf("unexpected body: %+v", gotBody)
	}
}

func TestClient_Acknowledge_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	err := testClient(srv.URL).Acknowledge(context.Background(), "missing", AckRequest{})
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Kind != KindAlertAck {
		t.Errorf("unexpected kind %s", fe.Kind)
	}
}

func TestClient_FetchOffences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/offences/new" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Offence{
			{ID: "off_001", Type: "vandalism", Severity: SeverityMedium},
		})
	}))
	defer srv.Close()

	offences, err := testClient(srv.URL).FetchOffences(context.Background())
	if err != nil {
		t.Fatalf("FetchOffences: %v", err)
	}
	if len(offences) != 1 || offences[0].ID != "off_001" {
		t.Errorf("unexpected offences: %+v", offences)
	}
}

func TestClient_FetchTrends(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("period"); got != "week" {
			t.Errorf("period = %q", got)
		}
		json.NewEncoder(w).Encode(TrendSeries{
			Period: "week",
			Metric: "incidents",
			Trend:  "increasing",
			DataPoints: []TrendPoint{
				{Timestamp: "2026-08-22T00:00:00", Value: 12},
			},
		})
	}))
	defer srv.Close()

	series, err := testClient(srv.URL).FetchTrends(context.Background(), "week", "incidents")
	if err != nil {
		t.Fatalf("FetchTrends: %v", err)
	}
	if series.Trend != "increasing" || len(series.DataPoints) != 1 {
		t.Errorf("unexpected series: %+v", series)
	}
}

func TestClient_Export(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/export/incidents" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte("id,title\ninc_001,Suspicious Person Detected\n"))
	}))
	defer srv.Close()

	data, err := testClient(srv.URL).Export(context.Background(), "incidents")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected export bytes")
	}
}
