package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// ack.go — optimistic alert acknowledgment with poll reconciliation.
//
// The backend offers no transactional acknowledge-with-confirmation, so
// the coordinator patches the local snapshot first (the console sees the
// alert acknowledged immediately), then posts the mutation. A failed post
// is reported for a retry affordance but the patch stays; the next
// successful poll is the source of truth either way.
// ---------------------------------------------------------------------------

// ErrAlertNotFound is returned when the acknowledge target is not in the
// current alert snapshot.
var ErrAlertNotFound = errors.New("alert not found")

// Actor identifies who acknowledged an alert and what they did about it.
type Actor struct {
	Name   string
	Action string
}

// Coordinator executes the acknowledge protocol, the only mutating
// operation in the subsystem.
type Coordinator struct {
	store  *Store
	client *Client
	sched  *Scheduler
	logger zerolog.Logger
}

// NewCoordinator creates an acknowledge coordinator. sched may be nil when
// no reconciliation re-poll is wanted (tests, one-shot CLI commands).
func NewCoordinator(store *Store, client *Client, sched *Scheduler, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		store:  store,
		client: client,
		sched:  sched,
		logger: logger.With().Str("component", "ack").Logger(),
	}
}

// Acknowledge marks one alert acknowledged. Idempotent: acknowledging an
// already-acknowledged alert succeeds without touching anything.
func (co *Coordinator) Acknowledge(ctx context.Context, alertID string, actor Actor) error {
	alert, ok := co.store.Alerts().Get(alertID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrAlertNotFound, alertID)
	}
	if alert.Acknowledged {
		return nil
	}

	acked := true
	co.store.PatchAlert(alertID, AlertPatch{
		Acknowledged:   &acked,
		AcknowledgedBy: actor.Name,
		ActionTaken:    actor.Action,
	})

	err := co.client.Acknowledge(ctx, alertID, AckRequest{
		AcknowledgedBy: actor.Name,
		ActionTaken:    actor.Action,
	})
	if err != nil {
		// Deliberately no rollback: the patch stands until the next poll
		// reconciles, and the caller can surface a retry.
		co.logger.Warn().Err(err).Str("alert_id", alertID).Msg("acknowledge post failed")
		return err
	}

	co.logger.Info().
		Str("alert_id", alertID).
		Str("by", actor.Name).
		Str("action", actor.Action).
		Msg("alert acknowledged")

	if co.sched != nil {
		co.sched.Refresh(KindAlerts)
	}
	return nil
}
