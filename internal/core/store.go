package core

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// store.go — last-known-good snapshots per resource kind.
//
// Snapshots are immutable by replacement: a write installs a fresh id map,
// never mutates a published one. Readers therefore always hold a fully
// formed view even while the next poll is being applied.
// ---------------------------------------------------------------------------

// Snapshot is the complete set of entities of one kind as of the last
// successful (or fallback) fetch. IDs preserves backend iteration order.
type Snapshot[T Entity] struct {
	IDs       []string
	Entities  map[string]T
	FetchedAt time.Time
	Degraded  bool
}

// NewSnapshot builds a snapshot from an ordered entity list. Later
// duplicates of an id replace the earlier record but keep its position.
func NewSnapshot[T Entity](items []T) Snapshot[T] {
	s := Snapshot[T]{
		IDs:       make([]string, 0, len(items)),
		Entities:  make(map[string]T, len(items)),
		FetchedAt: time.Now().UTC(),
	}
	for _, item := range items {
		id := item.EntityID()
		if _, seen := s.Entities[id]; !seen {
			s.IDs = append(s.IDs, id)
		}
		s.Entities[id] = item
	}
	return s
}

// Ordered returns the entities in insertion order.
func (s Snapshot[T]) Ordered() []T {
	out := make([]T, 0, len(s.IDs))
	for _, id := range s.IDs {
		out = append(out, s.Entities[id])
	}
	return out
}

// Get looks up one entity by id.
func (s Snapshot[T]) Get(id string) (T, bool) {
	e, ok := s.Entities[id]
	return e, ok
}

// Len returns the number of entities in the snapshot.
func (s Snapshot[T]) Len() int { return len(s.IDs) }

// StatsSnapshot wraps the single dashboard-stats record.
type StatsSnapshot struct {
	Stats     *DashboardStats
	FetchedAt time.Time
	Degraded  bool
}

// ChangeType says what kind of store write a Change describes.
type ChangeType string

const (
	ChangeSnapshot ChangeType = "snapshot_applied"
	ChangeDegraded ChangeType = "snapshot_degraded"
	ChangePatch    ChangeType = "patch_applied"
)

// Change is delivered to subscribers after every completed store write.
type Change struct {
	Kind     ResourceKind
	Type     ChangeType
	EntityID string // set for patches
}

// PatchRecord logs one applied local patch for reconciliation visibility.
type PatchRecord struct {
	Kind      ResourceKind
	EntityID  string
	By        string
	AppliedAt time.Time
}

// AlertPatch is the single local mutation this subsystem performs.
// Acknowledged is monotonic: a patch can set it true, never back to false.
type AlertPatch struct {
	Acknowledged   *bool
	AcknowledgedBy string
	ActionTaken    string
}

// Store holds the last known-good snapshot per resource kind. It is the
// only shared resource of the subsystem: written by the scheduler (full
// snapshots) and the acknowledge coordinator (local patches), read by
// everyone else.
type Store struct {
	mu        sync.RWMutex
	alerts    Snapshot[Alert]
	incidents Snapshot[Incident]
	teams     Snapshot[Team]
	stats     StatsSnapshot
	patchLog  []PatchRecord
	listeners []func(Change)
	logger    zerolog.Logger
}

// emptySnapshot has no entities and a zero FetchedAt: nothing was ever
// fetched for the kind.
func emptySnapshot[T Entity]() Snapshot[T] {
	return Snapshot[T]{Entities: make(map[string]T)}
}

// NewStore creates a store with empty snapshots for every kind.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		alerts:    emptySnapshot[Alert](),
		incidents: emptySnapshot[Incident](),
		teams:     emptySnapshot[Team](),
		logger:    logger.With().Str("component", "store").Logger(),
	}
}

// Subscribe registers a listener called after every applied snapshot or
// patch. Listeners run synchronously on the writer's goroutine and must
// not write back into the store.
func (st *Store) Subscribe(fn func(Change)) {
	st.mu.Lock()
	st.listeners = append(st.listeners, fn)
	st.mu.Unlock()
}

func (st *Store) notify(ch Change) {
	st.mu.RLock()
	listeners := make([]func(Change), len(st.listeners))
	copy(listeners, st.listeners)
	st.mu.RUnlock()
	for _, fn := range listeners {
		fn(ch)
	}
}

// Alerts returns the current alert snapshot.
func (st *Store) Alerts() Snapshot[Alert] {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.alerts
}

// Incidents returns the current incident snapshot.
func (st *Store) Incidents() Snapshot[Incident] {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.incidents
}

// Teams returns the current team snapshot.
func (st *Store) Teams() Snapshot[Team] {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.teams
}

// Stats returns the current dashboard-stats snapshot.
func (st *Store) Stats() StatsSnapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.stats
}

// ApplyAlerts replaces the alert snapshot wholesale and clears degraded.
func (st *Store) ApplyAlerts(alerts []Alert) {
	st.mu.Lock()
	st.alerts = NewSnapshot(alerts)
	st.mu.Unlock()
	st.logger.Debug().Int("count", len(alerts)).Msg("alert snapshot applied")
	st.notify(Change{Kind: KindAlerts, Type: ChangeSnapshot})
}

// ApplyIncidents replaces the incident snapshot wholesale.
func (st *Store) ApplyIncidents(incidents []Incident) {
	st.mu.Lock()
	st.incidents = NewSnapshot(incidents)
	st.mu.Unlock()
	st.logger.Debug().Int("count", len(incidents)).Msg("incident snapshot applied")
	st.notify(Change{Kind: KindIncidents, Type: ChangeSnapshot})
}

// ApplyTeams replaces the team snapshot wholesale.
func (st *Store) ApplyTeams(teams []Team) {
	st.mu.Lock()
	st.teams = NewSnapshot(teams)
	st.mu.Unlock()
	st.logger.Debug().Int("count", len(teams)).Msg("team snapshot applied")
	st.notify(Change{Kind: KindTeams, Type: ChangeSnapshot})
}

// ApplyStats replaces the dashboard-stats snapshot.
func (st *Store) ApplyStats(stats *DashboardStats) {
	st.mu.Lock()
	st.stats = StatsSnapshot{Stats: stats, FetchedAt: time.Now().UTC()}
	st.mu.Unlock()
	st.notify(Change{Kind: KindStats, Type: ChangeSnapshot})
}

// MarkDegraded flags the snapshot for a kind as stale after a failed
// fetch, leaving its data in place.
func (st *Store) MarkDegraded(kind ResourceKind) {
	st.mu.Lock()
	switch kind {
	case KindAlerts:
		st.alerts.Degraded = true
	case KindIncidents:
		st.incidents.Degraded = true
	case KindTeams:
		st.teams.Degraded = true
	case KindStats:
		st.stats.Degraded = true
	}
	st.mu.Unlock()
	st.notify(Change{Kind: kind, Type: ChangeDegraded})
}

// PatchAlert mutates a single alert in the current snapshot without
// touching FetchedAt. Returns (changed, found). Reapplying an identical
// patch is a no-op. Acknowledged never transitions true → false here.
func (st *Store) PatchAlert(id string, patch AlertPatch) (bool, bool) {
	st.mu.Lock()
	alert, ok := st.alerts.Entities[id]
	if !ok {
		st.mu.Unlock()
		return false, false
	}

	updated := alert
	if patch.Acknowledged != nil && *patch.Acknowledged {
		updated.Acknowledged = true
	}
	if patch.AcknowledgedBy != "" {
		updated.AcknowledgedBy = patch.AcknowledgedBy
	}
	if patch.ActionTaken != "" {
		updated.ActionTaken = patch.ActionTaken
	}
	if updated == alert {
		st.mu.Unlock()
		return false, true
	}

	// Copy-on-write so readers holding the old map never see the change
	entities := make(map[string]Alert, len(st.alerts.Entities))
	for k, v := range st.alerts.Entities {
		entities[k] = v
	}
	entities[id] = updated
	st.alerts.Entities = entities

	st.patchLog = append(st.patchLog, PatchRecord{
		Kind:      KindAlerts,
		EntityID:  id,
		By:        updated.AcknowledgedBy,
		AppliedAt: time.Now().UTC(),
	})
	st.mu.Unlock()

	st.logger.Debug().Str("alert_id", id).Msg("local patch applied")
	st.notify(Change{Kind: KindAlerts, Type: ChangePatch, EntityID: id})
	return true, true
}

// PatchLog returns a copy of the applied-mutation log.
func (st *Store) PatchLog() []PatchRecord {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]PatchRecord, len(st.patchLog))
	copy(out, st.patchLog)
	return out
}
