package core

import (
	"encoding/json"
	"strings"
	"time"
)

// Severity represents the severity level of an alert or incident.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	sev, _ := ParseSeverity(str)
	*s = sev
	return nil
}

// ParseSeverity converts a wire or user-supplied severity string.
// Unknown values map to low so a new backend level never drops entities.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow, true
	case "medium":
		return SeverityMedium, true
	case "high":
		return SeverityHigh, true
	case "critical":
		return SeverityCritical, true
	default:
		return SeverityLow, false
	}
}

// IncidentStatus is server-authoritative; the console never advances it
// locally, so it stays an open string set rather than a closed enum.
type IncidentStatus string

const (
	IncidentActive     IncidentStatus = "active"
	IncidentResponding IncidentStatus = "responding"
	IncidentResolved   IncidentStatus = "resolved"
)

// TeamStatus is the deployment state of a response team.
type TeamStatus string

const (
	TeamAvailable   TeamStatus = "available"
	TeamDeployed    TeamStatus = "deployed"
	TeamUnavailable TeamStatus = "unavailable"
)

// Alert type constants as reported by the backend.
const (
	AlertTypeRisk     = "risk"
	AlertTypeSystem   = "system"
	AlertTypeIncident = "incident"
)

// Coordinates is an optional geographic position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Entity is anything the store can hold in a snapshot.
type Entity interface {
	EntityID() string
}

// Alert is one operator-facing alert. Timestamps stay as wire strings:
// the backend emits bare ISO-8601 without a zone designator, which
// time.Time refuses to decode.
type Alert struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Title          string   `json:"title"`
	Message        string   `json:"message"`
	Severity       Severity `json:"severity"`
	CameraID       string   `json:"camera_id,omitempty"`
	RiskScore      float64  `json:"risk_score,omitempty"`
	Acknowledged   bool     `json:"acknowledged"`
	AcknowledgedBy string   `json:"acknowledged_by,omitempty"`
	ActionTaken    string   `json:"action_taken,omitempty"`
	RequiresAction bool     `json:"requires_action,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

func (a Alert) EntityID() string { return a.ID }

// Incident is one tracked incident. Status transitions are owned by the
// backend.
type Incident struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	Coordinates *Coordinates   `json:"coordinates,omitempty"`
	Severity    Severity       `json:"severity"`
	Status      IncidentStatus `json:"status"`
	CreatedAt   string         `json:"created_at"`
}

func (i Incident) EntityID() string { return i.ID }

// Team is one response team.
type Team struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Type            string       `json:"type"`
	Status          TeamStatus   `json:"status"`
	Location        *Coordinates `json:"location,omitempty"`
	Base            string       `json:"base,omitempty"`
	Members         int          `json:"members"`
	Vehicles        int          `json:"vehicles,omitempty"`
	Capabilities    []string     `json:"capabilities,omitempty"`
	CurrentIncident string       `json:"current_incident,omitempty"`
	LastDeployed    string       `json:"last_deployed,omitempty"`
	ResponseTimeAvg float64      `json:"response_time_avg,omitempty"`
}

func (t Team) EntityID() string { return t.ID }

// Offence is a newly reported offence record (outside the sync core, same
// fetch contract).
type Offence struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Severity    Severity `json:"severity"`
	ReportedAt  string   `json:"reported_at,omitempty"`
}

func (o Offence) EntityID() string { return o.ID }

// DashboardStats is the aggregate counters resource.
type DashboardStats struct {
	Incidents struct {
		Total          int `json:"total"`
		Active         int `json:"active"`
		HighRisk       int `json:"high_risk"`
		PendingReviews int `json:"pending_reviews"`
	} `json:"incidents"`
	Evidence struct {
		TotalPackages int `json:"total_packages"`
		PendingReview int `json:"pending_review"`
		Approved      int `json:"approved"`
		Appealed      int `json:"appealed"`
	} `json:"evidence"`
	System struct {
		CamerasOnline   int    `json:"cameras_online"`
		AIModelsActive  int    `json:"ai_models_active"`
		RiskAlertsToday int    `json:"risk_alerts_today"`
		SystemHealth    string `json:"system_health"`
	} `json:"system"`
	Timestamp string `json:"timestamp"`
}

// TrendPoint is one sample in an analytics trend series.
type TrendPoint struct {
	Timestamp string `json:"timestamp"`
	Value     int    `json:"value"`
}

// ForecastPoint is one predicted sample in a trend series.
type ForecastPoint struct {
	Timestamp string `json:"timestamp"`
	Predicted int    `json:"predicted"`
}

// TrendSeries is the analytics trends resource.
type TrendSeries struct {
	Period           string          `json:"period"`
	Metric           string          `json:"metric"`
	Trend            string          `json:"trend"`
	ChangePercentage float64         `json:"change_percentage"`
	DataPoints       []TrendPoint    `json:"data_points"`
	Forecast         []ForecastPoint `json:"forecast"`
}

// isoLayouts covers the timestamp shapes the backend emits: RFC3339 and
// Python's bare isoformat() with or without fractional seconds.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// ParseInstant decodes a backend timestamp string. Bare timestamps are
// taken as UTC. Returns the zero time when the string is empty or
// unparseable.
func ParseInstant(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
