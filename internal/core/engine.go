package core

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// Engine wires the synchronization subsystem together: client, store,
// scheduler, acknowledge coordinator, and the optional sync bridge.
type Engine struct {
	Config      *Config
	Client      *Client
	Store       *Store
	Scheduler   *Scheduler
	Coordinator *Coordinator
	Bridge      *Bridge
	Logger      zerolog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewEngine creates a console engine from config.
func NewEngine(cfg *Config) (*Engine, error) {
	var logger zerolog.Logger
	if cfg.Logging.Format == "json" {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}

	switch cfg.LogLevel() {
	case "debug":
		logger = logger.Level(zerolog.DebugLevel)
	case "warn":
		logger = logger.Level(zerolog.WarnLevel)
	case "error":
		logger = logger.Level(zerolog.ErrorLevel)
	default:
		logger = logger.Level(zerolog.InfoLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())

	client := NewClient(cfg, logger)
	store := NewStore(logger)
	sched := NewScheduler(cfg, client, store, logger)

	engine := &Engine{
		Config:      cfg,
		Client:      client,
		Store:       store,
		Scheduler:   sched,
		Coordinator: NewCoordinator(store, client, sched, logger),
		Logger:      logger.With().Str("component", "engine").Logger(),
		ctx:         ctx,
		cancel:      cancel,
	}
	return engine, nil
}

// Start begins polling and, when configured, attaches the sync bridge.
func (e *Engine) Start() error {
	e.Logger.Info().Str("backend", e.Config.Backend.BaseURL).Msg("starting console engine")

	if e.Config.Bridge.Enabled {
		bridge, err := NewBridge(&e.Config.Bridge, e.Logger)
		if err != nil {
			return fmt.Errorf("starting sync bridge: %w", err)
		}
		e.Bridge = bridge
		bridge.Attach(e.Store)
	}

	e.Scheduler.Start()
	return nil
}

// Run starts the engine and blocks until a shutdown signal is received.
func (e *Engine) Run() error {
	if err := e.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		e.Logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case <-e.ctx.Done():
		e.Logger.Info().Msg("context cancelled")
	}

	return e.Shutdown()
}

// Shutdown gracefully stops the engine.
func (e *Engine) Shutdown() error {
	e.Logger.Info().Msg("shutting down console engine")
	e.cancel()

	e.Scheduler.Stop()

	if e.Bridge != nil {
		if err := e.Bridge.Close(); err != nil {
			e.Logger.Error().Err(err).Msg("error closing sync bridge")
		}
	}

	e.Logger.Info().Msg("console engine stopped")
	return nil
}

// Context returns the engine's context.
func (e *Engine) Context() context.Context {
	return e.ctx
}
