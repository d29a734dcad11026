package core

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// scheduler.go — timer-driven polling, one loop per resource kind.
//
// Each kind gets its own ticker so a slow or failing resource cannot delay
// the others. At most one fetch per kind is ever in flight; an on-demand
// trigger arriving mid-fetch is suppressed, not queued. A failed poll
// keeps prior data and marks the snapshot degraded, or installs the
// designated fallback dataset when nothing was ever fetched.
// ---------------------------------------------------------------------------

type poller struct {
	kind     ResourceKind
	interval time.Duration
	run      func(ctx context.Context) error

	mu          sync.Mutex
	inFlight    bool
	everApplied bool
	lastError   error
	lastAttempt time.Time
	installMock func()
}

// tryRun executes one fetch for the poller unless one is already in
// flight. Returns false when the attempt was suppressed.
func (p *poller) tryRun(ctx context.Context) bool {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return false
	}
	p.inFlight = true
	p.mu.Unlock()

	err := p.run(ctx)

	p.mu.Lock()
	p.inFlight = false
	p.lastError = err
	p.lastAttempt = time.Now().UTC()
	if err == nil {
		p.everApplied = true
	}
	p.mu.Unlock()
	return true
}

// Scheduler owns the per-kind poll loops and is the only writer of fresh
// snapshots into the store.
type Scheduler struct {
	client  *Client
	store   *Store
	logger  zerolog.Logger
	pollers map[ResourceKind]*poller
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewScheduler wires poll loops for alerts, incidents, teams, and stats.
func NewScheduler(cfg *Config, client *Client, store *Store, logger zerolog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		client:  client,
		store:   store,
		logger:  logger.With().Str("component", "scheduler").Logger(),
		pollers: make(map[ResourceKind]*poller),
		ctx:     ctx,
		cancel:  cancel,
	}

	s.add(cfg, KindAlerts, func(ctx context.Context) error {
		alerts, err := client.FetchAlerts(ctx)
		if err != nil {
			return err
		}
		store.ApplyAlerts(alerts)
		return nil
	}, func() { store.ApplyAlerts(FallbackAlerts()) })

	s.add(cfg, KindIncidents, func(ctx context.Context) error {
		incidents, err := client.FetchIncidents(ctx)
		if err != nil {
			return err
		}
		store.ApplyIncidents(incidents)
		return nil
	}, func() { store.ApplyIncidents(FallbackIncidents()) })

	s.add(cfg, KindTeams, func(ctx context.Context) error {
		teams, err := client.FetchTeams(ctx)
		if err != nil {
			return err
		}
		store.ApplyTeams(teams)
		return nil
	}, func() { store.ApplyTeams(FallbackTeams()) })

	s.add(cfg, KindStats, func(ctx context.Context) error {
		stats, err := client.FetchStats(ctx)
		if err != nil {
			return err
		}
		store.ApplyStats(stats)
		return nil
	}, func() { store.ApplyStats(FallbackStats()) })

	return s
}

func (s *Scheduler) add(cfg *Config, kind ResourceKind, fetch func(ctx context.Context) error, installMock func()) {
	p := &poller{
		kind:        kind,
		interval:    time.Duration(cfg.IntervalFor(kind)) * time.Second,
		installMock: installMock,
	}
	p.run = func(ctx context.Context) error {
		err := fetch(ctx)
		if err == nil {
			return nil
		}

		s.logger.Warn().Err(err).Str("kind", string(kind)).Msg("poll failed")
		p.mu.Lock()
		hadData := p.everApplied
		p.mu.Unlock()
		if !hadData {
			// Nothing to retain: install the designated fallback so the
			// console is never left empty, flagged as degraded data.
			// Installing counts as applied, so later failures keep the
			// (possibly patched) fallback instead of resetting it.
			p.installMock()
			p.mu.Lock()
			p.everApplied = true
			p.mu.Unlock()
		}
		s.store.MarkDegraded(kind)
		return err
	}
	s.pollers[kind] = p
}

// Start performs the initial load for every kind and begins the loops.
func (s *Scheduler) Start() {
	for kind, p := range s.pollers {
		s.wg.Add(1)
		go func(kind ResourceKind, p *poller) {
			defer s.wg.Done()
			p.tryRun(s.ctx)

			ticker := time.NewTicker(p.interval)
			defer ticker.Stop()
			for {
				select {
				case <-s.ctx.Done():
					return
				case <-ticker.C:
					p.tryRun(s.ctx)
				}
			}
		}(kind, p)
	}
	s.logger.Info().Int("kinds", len(s.pollers)).Msg("polling started")
}

// Stop terminates all poll loops and waits for in-flight fetches.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// RefreshNow fetches one kind synchronously. Returns false when the
// trigger was suppressed because a fetch for that kind is in flight.
func (s *Scheduler) RefreshNow(kind ResourceKind) bool {
	p, ok := s.pollers[kind]
	if !ok {
		return false
	}
	return p.tryRun(s.ctx)
}

// Refresh triggers an on-demand fetch without blocking the caller.
func (s *Scheduler) Refresh(kind ResourceKind) {
	go s.RefreshNow(kind)
}

// LastError reports the most recent fetch error for a kind, nil after a
// successful poll.
func (s *Scheduler) LastError(kind ResourceKind) error {
	p, ok := s.pollers[kind]
	if !ok {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastError
}
