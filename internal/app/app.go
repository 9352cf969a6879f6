// Package app wires configuration, storage, state and lifecycle into one
// running instance.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rcliao/calmish/internal/chat"
	"github.com/rcliao/calmish/internal/config"
	"github.com/rcliao/calmish/internal/events"
	"github.com/rcliao/calmish/internal/lifecycle"
	"github.com/rcliao/calmish/internal/persist"
	"github.com/rcliao/calmish/internal/state"
	"github.com/rcliao/calmish/internal/store"
)

// Options overrides the pieces Open would otherwise build itself.
type Options struct {
	// Backend replaces the SQLite database at Config.DBPath.
	Backend store.Store
	// Signals defaults to process signals.
	Signals lifecycle.SignalSource
	Logger  *zap.Logger
	// Generator replaces the Gemini client.
	Generator chat.Generator
	State     state.Options
}

// App is a restored, running calmish instance.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Backend   store.Store
	Adapter   *persist.Adapter
	Bus       *events.Bus
	State     *state.Store
	Lifecycle *lifecycle.Manager
	Restored  state.RestoreReport

	generator chat.Generator
}

// Open builds every component and restores persisted state.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	backend := opts.Backend
	if backend == nil {
		db, err := store.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		backend = db
	}

	signals := opts.Signals
	if signals == nil {
		signals = lifecycle.OSSignals{}
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Backend:   backend,
		Adapter:   persist.NewAdapter(backend, cfg.AppPrefix, logger),
		Bus:       events.NewBus(logger),
		generator: opts.Generator,
	}
	a.State = state.New(a.Adapter, a.Bus, logger, opts.State)
	a.Lifecycle = lifecycle.NewManager(a.State, signals, logger, lifecycle.Options{
		FlushInterval: cfg.FlushInterval,
	})

	for _, topic := range events.Topics {
		a.Bus.SubscribeTopic(topic, func(e events.Event) {
			logger.Info("state changed", zap.String("topic", string(e.Topic())), zap.Any("event", e))
		})
	}

	rep, err := a.Lifecycle.Init(ctx)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("init lifecycle: %w", err)
	}
	a.Restored = rep
	return a, nil
}

// Chat returns a conversation session. Without an API key the session
// reports the service as unavailable on every send.
func (a *App) Chat(ctx context.Context) *chat.Session {
	gen := a.generator
	if gen == nil {
		opts := chat.DefaultGeminiOptions()
		opts.APIKey = a.Config.Chat.APIKey
		opts.Model = a.Config.Chat.Model
		opts.Temperature = a.Config.Chat.Temperature
		opts.MaxOutputTokens = a.Config.Chat.MaxOutputTokens
		g, err := chat.NewGeminiGenerator(ctx, opts, a.Logger)
		if err != nil {
			a.Logger.Warn("chat unavailable", zap.Error(err))
		} else {
			gen = g
		}
	}
	return chat.NewSession(chat.NewClient(gen, a.Logger), a.State, a.Config.Chat.HistoryTurns, a.Logger)
}

// Close flushes state and releases the backend.
func (a *App) Close(ctx context.Context) error {
	flushErr := a.Lifecycle.Close(ctx)
	closeErr := a.Backend.Close()
	_ = a.Logger.Sync()
	return errors.Join(flushErr, closeErr)
}

// Release closes the backend without the final flush, leaving storage as the
// last mutation wrote it.
func (a *App) Release() error {
	a.Lifecycle.Stop()
	err := a.Backend.Close()
	_ = a.Logger.Sync()
	return err
}
