package core

import "strings"

// ---------------------------------------------------------------------------
// filter.go — pure predicates over store snapshots.
//
// Every filter preserves snapshot insertion order and composes by AND:
// an entity must match every selected predicate to be included.
// ---------------------------------------------------------------------------

// AlertQuery selects a subset of an alert snapshot. Zero value matches all.
type AlertQuery struct {
	Severity   *Severity
	Type       string
	UnreadOnly bool
	Search     string
}

// IncidentQuery selects a subset of an incident snapshot.
type IncidentQuery struct {
	Status   IncidentStatus
	Severity *Severity
	Search   string
}

// TeamQuery selects a subset of a team snapshot.
type TeamQuery struct {
	Status TeamStatus
	Search string
}

func matchText(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// FilterAlerts returns the alerts matching q, in snapshot order.
func FilterAlerts(snap Snapshot[Alert], q AlertQuery) []Alert {
	out := make([]Alert, 0, snap.Len())
	for _, a := range snap.Ordered() {
		if q.Severity != nil && a.Severity != *q.Severity {
			continue
		}
		if q.Type != "" && a.Type != q.Type {
			continue
		}
		if q.UnreadOnly && a.Acknowledged {
			continue
		}
		if !matchText(q.Search, a.ID, a.Title, a.Message, a.CameraID) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FilterIncidents returns the incidents matching q, in snapshot order.
func FilterIncidents(snap Snapshot[Incident], q IncidentQuery) []Incident {
	out := make([]Incident, 0, snap.Len())
	for _, inc := range snap.Ordered() {
		if q.Status != "" && inc.Status != q.Status {
			continue
		}
		if q.Severity != nil && inc.Severity != *q.Severity {
			continue
		}
		if !matchText(q.Search, inc.ID, inc.Title, inc.Description, inc.Location) {
			continue
		}
		out = append(out, inc)
	}
	return out
}

// FilterTeams returns the teams matching q, in snapshot order.
func FilterTeams(snap Snapshot[Team], q TeamQuery) []Team {
	out := make([]Team, 0, snap.Len())
	for _, tm := range snap.Ordered() {
		if q.Status != "" && tm.Status != q.Status {
			continue
		}
		if !matchText(q.Search, tm.ID, tm.Name, tm.Base) {
			continue
		}
		out = append(out, tm)
	}
	return out
}
