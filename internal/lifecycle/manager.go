// Package lifecycle restores state at startup and flushes it when the
// platform signals that the app is going away.
//
// A Manager moves through Uninitialized -> Restoring -> Ready once. After
// that each flush passes through Flushing and returns to Ready, so the store
// stays usable after any number of flushes.
package lifecycle

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/calmish/internal/state"
)

// Phase is the manager's position in its state machine.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseRestoring
	PhaseReady
	PhaseFlushing
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseRestoring:
		return "restoring"
	case PhaseReady:
		return "ready"
	case PhaseFlushing:
		return "flushing"
	}
	return "unknown"
}

var (
	ErrAlreadyInitialized = errors.New("lifecycle already initialized")
	ErrNotReady           = errors.New("lifecycle not ready")
)

// Options tunes a Manager.
type Options struct {
	// FlushInterval enables a periodic full flush when positive.
	FlushInterval time.Duration
}

// Manager orchestrates restore and flush for a state.Store.
type Manager struct {
	mu    sync.Mutex
	phase Phase

	// flushMu serialises flushes from signals, the ticker and callers.
	flushMu sync.Mutex

	store    *state.Store
	source   SignalSource
	interval time.Duration
	logger   *zap.Logger

	ctx        context.Context
	stopSource func()
	stopTicker context.CancelFunc
	wg         sync.WaitGroup
}

// NewManager creates a Manager. source may be nil when no platform signals
// are available.
func NewManager(store *state.Store, source SignalSource, logger *zap.Logger, opts Options) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		phase:    PhaseUninitialized,
		store:    store,
		source:   source,
		interval: opts.FlushInterval,
		logger:   logger.With(zap.String("component", "lifecycle")),
	}
}

// Phase returns the current phase.
func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

func (m *Manager) setPhase(p Phase) {
	m.mu.Lock()
	m.phase = p
	m.mu.Unlock()
}

// Init restores every slice, attaches to the signal source and starts the
// periodic flush. Restore failures degrade slices to their defaults and never
// fail Init; calling Init a second time returns ErrAlreadyInitialized.
func (m *Manager) Init(ctx context.Context) (state.RestoreReport, error) {
	m.mu.Lock()
	if m.phase != PhaseUninitialized {
		m.mu.Unlock()
		return state.RestoreReport{}, ErrAlreadyInitialized
	}
	m.phase = PhaseRestoring
	m.mu.Unlock()

	rep := m.store.Restore(ctx)

	// Signal-driven flushes outlive the caller's context.
	m.ctx = context.WithoutCancel(ctx)
	if m.source != nil {
		m.stopSource = m.source.Notify(m.onSignal)
	}
	if m.interval > 0 {
		tickCtx, cancel := context.WithCancel(m.ctx)
		m.stopTicker = cancel
		m.wg.Add(1)
		go m.flushLoop(tickCtx)
	}

	m.setPhase(PhaseReady)
	m.logger.Debug("lifecycle ready", zap.Duration("flush_interval", m.interval))
	return rep, nil
}

func (m *Manager) onSignal(sig Signal) {
	if err := m.Flush(m.ctx, sig.String()); err != nil {
		m.logger.Warn("signal flush failed", zap.Stringer("signal", sig), zap.Error(err))
	}
}

func (m *Manager) flushLoop(ctx context.Context) {
	defer m.wg.Done()
	t := time.NewTicker(m.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := m.Flush(ctx, "interval"); err != nil && !errors.Is(err, ErrNotReady) {
				m.logger.Warn("periodic flush failed", zap.Error(err))
			}
		}
	}
}

// Flush persists every slice. It returns ErrNotReady before Init completes.
func (m *Manager) Flush(ctx context.Context, reason string) error {
	m.flushMu.Lock()
	defer m.flushMu.Unlock()

	m.mu.Lock()
	if m.phase != PhaseReady {
		m.mu.Unlock()
		return ErrNotReady
	}
	m.phase = PhaseFlushing
	m.mu.Unlock()
	defer m.setPhase(PhaseReady)

	start := time.Now()
	err := m.store.SaveAll(ctx)
	m.logger.Debug("flushed state",
		zap.String("reason", reason),
		zap.Duration("took", time.Since(start)),
		zap.Bool("ok", err == nil))
	return err
}

// Close detaches from the signal source, stops the periodic flush and
// performs a final flush.
func (m *Manager) Close(ctx context.Context) error {
	m.Stop()
	if m.Phase() != PhaseReady {
		return nil
	}
	return m.Flush(ctx, "close")
}

// Stop detaches from the signal source and stops the periodic flush without
// flushing.
func (m *Manager) Stop() {
	if m.stopSource != nil {
		m.stopSource()
		m.stopSource = nil
	}
	if m.stopTicker != nil {
		m.stopTicker()
		m.stopTicker = nil
	}
	m.wg.Wait()
}
