package core

// ---------------------------------------------------------------------------
// fallback.go — designated fallback datasets.
//
// When the very first fetch for a kind fails there is no prior snapshot to
// retain, so the scheduler installs these instead of leaving the console
// empty. They live here, in one place, rather than scattered per view.
// ---------------------------------------------------------------------------

// FallbackAlerts is installed when the first alert fetch fails.
func FallbackAlerts() []Alert {
	return []Alert{
		{
			ID:             "alert_001",
			Type:           AlertTypeRisk,
			Title:          "High Risk Behavior Detected",
			Message:        "Suspicious loitering detected in restricted zone",
			Severity:       SeverityHigh,
			CameraID:       "cam_001",
			RiskScore:      0.78,
			RequiresAction: true,
			CreatedAt:      "2026-01-01T00:00:00Z",
		},
	}
}

// FallbackIncidents is installed when the first incident fetch fails.
func FallbackIncidents() []Incident {
	return []Incident{
		{
			ID:          "inc_001",
			Type:        "suspicious_activity",
			Title:       "Suspicious Person Detected",
			Description: "Unidentified individual showing unusual behavior near ATM",
			Location:    "Nairobi CBD - Kenyatta Avenue",
			Coordinates: &Coordinates{Lat: -1.2864, Lng: 36.8232},
			Severity:    SeverityHigh,
			Status:      IncidentActive,
			CreatedAt:   "2026-01-01T00:00:00Z",
		},
		{
			ID:          "inc_002",
			Type:        "traffic_violation",
			Title:       "Traffic Signal Violation",
			Description: "Vehicle ran red light at intersection",
			Location:    "Moi Avenue & Kenyatta Avenue",
			Coordinates: &Coordinates{Lat: -1.2833, Lng: 36.8167},
			Severity:    SeverityMedium,
			Status:      IncidentResponding,
			CreatedAt:   "2026-01-01T00:00:00Z",
		},
	}
}

// FallbackTeams is installed when the first team fetch fails.
func FallbackTeams() []Team {
	return []Team{
		{
			ID:           "team_001",
			Name:         "Rapid Response Unit A",
			Type:         "police",
			Status:       TeamAvailable,
			Location:     &Coordinates{Lat: -1.2921, Lng: 36.8219},
			Base:         "Nairobi CBD Station",
			Members:      4,
			Vehicles:     1,
			Capabilities: []string{"patrol", "apprehension", "traffic"},
		},
		{
			ID:              "team_002",
			Name:            "Medical Emergency Team",
			Type:            "medical",
			Status:          TeamDeployed,
			Location:        &Coordinates{Lat: -1.2864, Lng: 36.8232},
			Base:            "Central Hospital",
			Members:         3,
			Vehicles:        1,
			Capabilities:    []string{"first_aid", "ambulance", "medical"},
			CurrentIncident: "inc_003",
		},
		{
			ID:           "team_003",
			Name:         "Traffic Control Unit",
			Type:         "traffic",
			Status:       TeamAvailable,
			Location:     &Coordinates{Lat: -1.2833, Lng: 36.8167},
			Base:         "Moi Avenue Station",
			Members:      2,
			Vehicles:     2,
			Capabilities: []string{"traffic_management", "accident_response"},
		},
	}
}

// FallbackStats is installed when the first stats fetch fails.
func FallbackStats() *DashboardStats {
	var stats DashboardStats
	stats.System.SystemHealth = "unknown"
	return &stats
}
