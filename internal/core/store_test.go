package core

import (
	"testing"

	"github.com/rs/zerolog"
)

func testAlerts() []Alert {
	return []Alert{
		{ID: "a1", Type: AlertTypeRisk, Title: "one", Severity: SeverityHigh},
		{ID: "a2", Type: AlertTypeSystem, Title: "two", Severity: SeverityLow, Acknowledged: true},
		{ID: "a3", Type: AlertTypeIncident, Title: "three", Severity: SeverityCritical},
	}
}

func TestStore_ApplyAlerts_ReplacesWholesale(t *testing.T) {
	st := NewStore(zerolog.Nop())
	st.ApplyAlerts(testAlerts())
	st.ApplyAlerts([]Alert{{ID: "b1", Severity: SeverityMedium}})

	snap := st.Alerts()
	if snap.Len() != 1 {
		t.Fatalf("expected 1 alert after replacement, got %d", snap.Len())
	}
	if _, ok := snap.Get("a1"); ok {
		t.Error("old entity survived snapshot replacement")
	}
}

func TestStore_ApplyAlerts_ClearsDegraded(t *testing.T) {
	st := NewStore(zerolog.Nop())
	st.ApplyAlerts(testAlerts())
	st.MarkDegraded(KindAlerts)
	if !st.Alerts().Degraded {
		t.Fatal("expected degraded after MarkDegraded")
	}
	st.ApplyAlerts(testAlerts())
	if st.Alerts().Degraded {
		t.Error("successful apply should clear degraded")
	}
}

func TestStore_MarkDegraded_RetainsData(t *testing.T) {
	st := NewStore(zerolog.Nop())
	st.ApplyAlerts(testAlerts())
	st.MarkDegraded(KindAlerts)

	snap := st.Alerts()
	if snap.Len() != 3 {
		t.Errorf("degraded snapshot lost data: %d entities", snap.Len())
	}
	if !snap.Degraded {
		t.Error("snapshot should be flagged degraded")
	}
}

func TestStore_PatchAlert_SetsAcknowledged(t *testing.T) {
	st := NewStore(zerolog.Nop())
	st.ApplyAlerts(testAlerts())

	before := st.Alerts().FetchedAt
	acked := true
	changed, found := st.PatchAlert("a1", AlertPatch{Acknowledged: &acked, AcknowledgedBy: "op1"})
	if !changed || !found {
		t.Fatalf("PatchAlert = (%v, %v), want (true, true)", changed, found)
	}

	snap := st.Alerts()
	a, _ := snap.Get("a1")
	if !a.Acknowledged || a.AcknowledgedBy != "op1" {
		t.Errorf("patch not applied: %+v", a)
	}
	if !snap.FetchedAt.Equal(before) {
		t.Error("local patch must not change FetchedAt")
	}
}

func TestStore_PatchAlert_Idempotent(t *testing.T) {
	st := NewStore(zerolog.Nop())
	st.ApplyAlerts(testAlerts())

	acked := true
	patch := AlertPatch{Acknowledged: &acked, AcknowledgedBy: "op1"}
	st.PatchAlert("a1", patch)
	changed, found := st.PatchAlert("a1", patch)
	if changed {
		t.Error("reapplying an identical patch must be a no-op")
	}
	if !found {
		t.Error("entity should still be found")
	}
	if got := len(st.PatchLog()); got != 1 {
		t.Errorf("no-op patch must not be logged, log has %d entries", got)
	}
}

func TestStore_PatchAlert_MonotonicAcknowledged(t *testing.T) {
	st := NewStore(zerolog.Nop())
	st.ApplyAlerts(testAlerts())

	unacked := false
	changed, _ := st.PatchAlert("a2", AlertPatch{Acknowledged: &unacked})
	if changed {
		t.Error("acknowledged must never transition true → false via local patch")
	}
	a, _ := st.Alerts().Get("a2")
	if !a.Acknowledged {
		t.Error("a2 lost its acknowledged flag")
	}
}

func TestStore_PatchAlert_PreservesOtherEntities(t *testing.T) {
	st := NewStore(zerolog.Nop())
	st.ApplyAlerts(testAlerts())

	acked := true
	st.PatchAlert("a1", AlertPatch{Acknowledged: &acked})

	snap := st.Alerts()
	if snap.Len() != 3 {
		t.Fatalf("patch changed entity count: %d", snap.Len())
	}
	a3, _ := snap.Get("a3")
	if a3.Acknowledged || a3.Title != "three" {
		t.Errorf("unrelated entity modified: %+v", a3)
	}
}

func TestStore_PatchAlert_Missing(t *testing.T) {
	st := NewStore(zerolog.Nop())
	st.ApplyAlerts(testAlerts())

	acked := true
	_, found := st.PatchAlert("nope", AlertPatch{Acknowledged: &acked})
	if found {
		t.Error("expected found=false for unknown id")
	}
}

func TestStore_SnapshotAtomicity(t *testing.T) {
	// A reader holding a snapshot must never observe later writes in it.
	st := NewStore(zerolog.Nop())
	st.ApplyAlerts(testAlerts())
	held := st.Alerts()

	acked := true
	st.PatchAlert("a1", AlertPatch{Acknowledged: &acked})
	st.ApplyAlerts([]Alert{{ID: "z9"}})

	if a, _ := held.Get("a1"); a.Acknowledged {
		t.Error("held snapshot observed a later patch")
	}
	if held.Len() != 3 {
		t.Error("held snapshot observed a later replacement")
	}
}

func TestStore_OrderPreserved(t *testing.T) {
	st := NewStore(zerolog.Nop())
	st.ApplyAlerts(testAlerts())

	ordered := st.Alerts().Ordered()
	want := []string{"a1", "a2", "a3"}
	for i, a := range ordered {
		if a.ID != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, a.ID, want[i])
		}
	}
}

func TestStore_SubscribeNotify(t *testing.T) {
	st := NewStore(zerolog.Nop())
	var changes []Change
	st.Subscribe(func(ch Change) { changes = append(changes, ch) })

	st.ApplyAlerts(testAlerts())
	acked := true
	st.PatchAlert("a1", AlertPatch{Acknowledged: &acked})
	st.MarkDegraded(KindTeams)

	if len(changes) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(changes))
	}
	if changes[0].Type != ChangeSnapshot || changes[0].Kind != KindAlerts {
		t.Errorf("unexpected first change: %+v", changes[0])
	}
	if changes[1].Type != ChangePatch || changes[1].EntityID != "a1" {
		t.Errorf("unexpected second change: %+v", changes[1])
	}
	if changes[2].Type != ChangeDegraded || changes[2].Kind != KindTeams {
		t.Errorf("unexpected third change: %+v", changes[2])
	}
}

func TestStore_TeamsAndIncidents(t *testing.T) {
	st := NewStore(zerolog.Nop())
	st.ApplyIncidents(FallbackIncidents())
	st.ApplyTeams(FallbackTeams())

	if st.Incidents().Len() != 2 {
		t.Errorf("expected 2 incidents, got %d", st.Incidents().Len())
	}
	if st.Teams().Len() != 3 {
		t.Errorf("expected 3 teams, got %d", st.Teams().Len())
	}
	tm, ok := st.Teams().Get("team_002")
	if !ok || tm.Status != TeamDeployed {
		t.Errorf("unexpected team_002: %+v", tm)
	}
}
