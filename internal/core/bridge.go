package core

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// bridge.go — NATS JetStream bridge for store changes.
//
// The backend has no push channel, but sibling consoles (field view, wall
// display) should not each discover an acknowledgment one poll interval
// late. The bridge subscribes to the store and republishes every applied
// snapshot and patch on ops.sync.>, optionally hosting an embedded NATS
// server so a single console works with zero infrastructure.
// ---------------------------------------------------------------------------

// SyncEvent is the wire record published for every store change.
type SyncEvent struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Kind      ResourceKind `json:"kind"`
	Type      ChangeType   `json:"type"`
	EntityID  string       `json:"entity_id,omitempty"`
	Origin    string       `json:"origin"`
}

// Bridge wraps the NATS connection and the store subscription.
type Bridge struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	ns     *server.Server
	origin string
	logger zerolog.Logger
	mu     sync.Mutex
	subs   []*nats.Subscription
}

// NewBridge connects to NATS (starting an embedded server when
// configured) and ensures the sync stream exists.
func NewBridge(cfg *BridgeConfig, logger zerolog.Logger) (*Bridge, error) {
	b := &Bridge{
		origin: uuid.New().String(),
		logger: logger.With().Str("component", "bridge").Logger(),
	}

	if cfg.Embedded {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating NATS data dir: %w", err)
		}

		opts := &server.Options{
			Host:      "127.0.0.1",
			Port:      cfg.Port,
			JetStream: true,
			StoreDir:  cfg.DataDir,
			NoLog:     true,
			NoSigs:    true,
		}
		ns, err := server.NewServer(opts)
		if err != nil {
			return nil, fmt.Errorf("creating embedded NATS server: %w", err)
		}
		ns.Start()
		if !ns.ReadyForConnections(10 * time.Second) {
			return nil, fmt.Errorf("embedded NATS server failed to start within timeout")
		}
		b.ns = ns
		b.logger.Info().Int("port", cfg.Port).Msg("embedded NATS server started")
	}

	url := cfg.URL
	if cfg.Embedded {
		url = fmt.Sprintf("nats://127.0.0.1:%d", cfg.Port)
	}

	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				b.logger.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			b.logger.Info().Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	b.nc = nc

	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}
	b.js = js

	streamCfg := &nats.StreamConfig{
		Name:      "CONSOLE_SYNC",
		Subjects:  []string{"ops.sync.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		MaxBytes:  64 * 1024 * 1024,
		Storage:   nats.FileStorage,
		Discard:   nats.DiscardOld,
	}
	if _, err := js.AddStream(streamCfg); err != nil {
		if _, updateErr := js.UpdateStream(streamCfg); updateErr != nil {
			return nil, fmt.Errorf("creating/updating sync stream: %w (original: %v)", updateErr, err)
		}
	}

	b.logger.Info().Str("url", url).Msg("connected to NATS JetStream")
	return b, nil
}

// Attach subscribes the bridge to a store so every change is republished.
func (b *Bridge) Attach(store *Store) {
	store.Subscribe(func(ch Change) {
		if err := b.Publish(ch); err != nil {
			b.logger.Error().Err(err).Str("kind", string(ch.Kind)).Msg("failed to publish sync event")
		}
	})
}

// Publish sends one store change to the sync stream.
func (b *Bridge) Publish(ch Change) error {
	ev := SyncEvent{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Kind:      ch.Kind,
		Type:      ch.Type,
		EntityID:  ch.EntityID,
		Origin:    b.origin,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling sync event: %w", err)
	}

	subject := fmt.Sprintf("ops.sync.%s.%s", ch.Kind, ch.Type)
	if _, err := b.js.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}
	return nil
}

// SubscribeSync delivers sync events published by other consoles. Events
// originating from this bridge are filtered out.
func (b *Bridge) SubscribeSync(handler func(ev *SyncEvent)) error {
	sub, err := b.js.Subscribe("ops.sync.>", func(msg *nats.Msg) {
		var ev SyncEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			b.logger.Error().Err(err).Msg("failed to unmarshal sync event")
			_ = msg.Nak()
			return
		}
		if ev.Origin != b.origin {
			handler(&ev)
		}
		_ = msg.Ack()
	}, nats.DeliverNew(), nats.AckExplicit())
	if err != nil {
		return fmt.Errorf("subscribing to sync stream: %w", err)
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
	return nil
}

// Close shuts down the bridge.
func (b *Bridge) Close() error {
	b.mu.Lock()
	for _, sub := range b.subs {
		_ = sub.Unsubscribe()
	}
	b.subs = nil
	b.mu.Unlock()

	if b.nc != nil {
		b.nc.Close()
	}
	if b.ns != nil {
		b.ns.Shutdown()
		b.ns.WaitForShutdown()
		b.logger.Info().Msg("embedded NATS server stopped")
	}
	return nil
}

// IsConnected reports whether the NATS connection is active.
func (b *Bridge) IsConnected() bool {
	return b.nc != nil && b.nc.IsConnected()
}
