package core

import "testing"

func filterFixture() Snapshot[Alert] {
	return NewSnapshot([]Alert{
		{ID: "a1", Type: AlertTypeRisk, Title: "Loitering near ATM", Message: "restricted zone", Severity: SeverityHigh},
		{ID: "a2", Type: AlertTypeSystem, Title: "Camera offline", Message: "cam_007 unreachable", Severity: SeverityLow, Acknowledged: true},
		{ID: "a3", Type: AlertTypeRisk, Title: "Crowd forming", Message: "market square", Severity: SeverityHigh, Acknowledged: true},
		{ID: "a4", Type: AlertTypeIncident, Title: "Vehicle alert", Message: "red light", Severity: SeverityMedium},
	})
}

func TestFilterAlerts_Severity(t *testing.T) {
	high := SeverityHigh
	got := FilterAlerts(filterFixture(), AlertQuery{Severity: &high})
	if len(got) != 2 || got[0].ID != "a1" || got[1].ID != "a3" {
		t.Errorf("severity filter = %+v, want [a1 a3] in order", got)
	}
}

func TestFilterAlerts_UnreadOnly(t *testing.T) {
	got := FilterAlerts(filterFixture(), AlertQuery{UnreadOnly: true})
	if len(got) != 2 || got[0].ID != "a1" || got[1].ID != "a4" {
		t.Errorf("unread filter = %+v, want [a1 a4]", got)
	}
}

func TestFilterAlerts_SearchCaseInsensitive(t *testing.T) {
	got := FilterAlerts(filterFixture(), AlertQuery{Search: "CAMERA"})
	if len(got) != 1 || got[0].ID != "a2" {
		t.Errorf("search filter = %+v, want [a2]", got)
	}
}

func TestFilterAlerts_SearchMatchesMessage(t *testing.T) {
	got := FilterAlerts(filterFixture(), AlertQuery{Search: "red light"})
	if len(got) != 1 || got[0].ID != "a4" {
		t.Errorf("search filter = %+v, want [a4]", got)
	}
}

func TestFilterAlerts_Composed(t *testing.T) {
	// severity AND unread AND type must all hold
	high := SeverityHigh
	got := FilterAlerts(filterFixture(), AlertQuery{
		Severity:   &high,
		UnreadOnly: true,
		Type:       AlertTypeRisk,
	})
	if len(got) != 1 || got[0].ID != "a1" {
		t.Errorf("composed filter = %+v, want [a1]", got)
	}
}

func TestFilterAlerts_ZeroQueryMatchesAll(t *testing.T) {
	got := FilterAlerts(filterFixture(), AlertQuery{})
	if len(got) != 4 {
		t.Errorf("zero query returned %d of 4", len(got))
	}
	for i, want := range []string{"a1", "a2", "a3", "a4"} {
		if got[i].ID != want {
			t.Fatalf("order[%d] = %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestFilterAlerts_EmptySnapshot(t *testing.T) {
	got := FilterAlerts(NewSnapshot[Alert](nil), AlertQuery{UnreadOnly: true})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestFilterIncidents_Status(t *testing.T) {
	snap := NewSnapshot(FallbackIncidents())
	got := FilterIncidents(snap, IncidentQuery{Status: IncidentActive})
	if len(got) != 1 || got[0].ID != "inc_001" {
		t.Errorf("status filter = %+v, want [inc_001]", got)
	}
}

func TestFilterIncidents_SearchLocation(t *testing.T) {
	snap := NewSnapshot(FallbackIncidents())
	got := FilterIncidents(snap, IncidentQuery{Search: "moi avenue"})
	if len(got) != 1 || got[0].ID != "inc_002" {
		t.Errorf("search filter = %+v, want [inc_002]", got)
	}
}

func TestFilterTeams_Status(t *testing.T) {
	snap := NewSnapshot(FallbackTeams())
	got := FilterTeams(snap, TeamQuery{Status: TeamAvailable})
	if len(got) != 2 || got[0].ID != "team_001" || got[1].ID != "team_003" {
		t.Errorf("status filter = %+v, want [team_001 team_003]", got)
	}
}
