// Package state owns the canonical in-memory wellness state.
//
// Every mutation runs the same sequence: validate the input, update memory,
// persist the affected slice through the adapter, then publish an event on
// the bus. Validation failures stop the sequence before anything changes.
// Persistence failures are logged and reported as ErrNotPersisted, but the
// in-memory update and the event still happen: memory stays the source of
// truth for the running process.
//
// The store lock is held while memory is updated and persisted and released
// before publishing, so handlers may call back into the Store.
package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/rcliao/calmish/internal/events"
	"github.com/rcliao/calmish/internal/model"
	"github.com/rcliao/calmish/internal/persist"
)

// Options tunes a Store.
type Options struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Entropy feeds the random part of session IDs. Defaults to a
	// time-seeded monotonic source.
	Entropy io.Reader
}

// Store is the single owner of every state slice.
type Store struct {
	mu sync.Mutex

	user          model.UserProfile
	wellness      model.WellnessState
	breathing     model.BreathingState
	boundaries    model.BoundariesState
	conversations model.ConversationLog

	adapter *persist.Adapter
	bus     *events.Bus
	logger  *zap.Logger
	now     func() time.Time
	entropy io.Reader
}

// New creates a Store with every slice at its default.
func New(adapter *persist.Adapter, bus *events.Bus, logger *zap.Logger, opts Options) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Entropy == nil {
		opts.Entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	}
	def := model.DefaultSnapshot()
	return &Store{
		user:          def.User,
		wellness:      def.Wellness,
		breathing:     def.Breathing,
		boundaries:    def.Boundaries,
		conversations: def.Conversations,
		adapter:       adapter,
		bus:           bus,
		logger:        logger.With(zap.String("component", "state")),
		now:           opts.Now,
		entropy:       opts.Entropy,
	}
}

// Bus returns the event bus the store publishes on.
func (s *Store) Bus() *events.Bus {
	return s.bus
}

// write is one slice to persist after a mutation.
type write struct {
	domain string
	value  any
}

// apply runs mutate under the lock, persists what it returns, then publishes.
// mutate must only be called after validation succeeded.
func (s *Store) apply(ctx context.Context, mutate func() ([]write, events.Event)) error {
	s.mu.Lock()
	writes, ev := mutate()
	var failed []error
	for _, w := range writes {
		if !s.adapter.Save(ctx, w.domain, w.value) {
			failed = append(failed, fmt.Errorf("%s: %w", w.domain, ErrNotPersisted))
		}
	}
	s.mu.Unlock()

	if len(failed) > 0 {
		s.logger.Warn("mutation applied without persistence", zap.Int("failed_slices", len(failed)))
	}
	if ev != nil {
		s.bus.Publish(ev)
	}
	return errors.Join(failed...)
}

// Profile returns a copy of the user profile.
func (s *Store) Profile() model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Clone()
}

// Wellness returns a copy of the wellness slice.
func (s *Store) Wellness() model.WellnessState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wellness.Clone()
}

// Breathing returns a copy of the breathing slice.
func (s *Store) Breathing() model.BreathingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.breathing.Clone()
}

// Boundaries returns a copy of the boundaries slice.
func (s *Store) Boundaries() model.BoundariesState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundaries.Clone()
}

// Conversation returns a copy of the conversation log.
func (s *Store) Conversation() model.ConversationLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversations.Clone()
}

// Snapshot returns a copy of every slice.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() model.Snapshot {
	return model.Snapshot{
		User:          s.user.Clone(),
		Wellness:      s.wellness.Clone(),
		Breathing:     s.breathing.Clone(),
		Boundaries:    s.boundaries.Clone(),
		Conversations: s.conversations.Clone(),
	}
}

// RestoreReport lists which slices were loaded from storage. Slices not
// listed fell back to their defaults.
type RestoreReport struct {
	Restored []string `json:"restored"`
	Defaults []string `json:"defaults"`
}

func (r *RestoreReport) add(domain string, ok bool) {
	if ok {
		r.Restored = append(r.Restored, domain)
	} else {
		r.Defaults = append(r.Defaults, domain)
	}
}

// Restore loads every slice from storage, merging stored fields over the
// compiled-in defaults. A slice that is missing or unreadable keeps its
// default and never prevents the others from loading.
func (s *Store) Restore(ctx context.Context) RestoreReport {
	var rep RestoreReport

	user, ok := persist.Load(ctx, s.adapter, model.DomainUser, model.DefaultUserProfile())
	user.Normalize()
	rep.add(model.DomainUser, ok)

	wellness, ok := persist.Load(ctx, s.adapter, model.DomainWellness, model.DefaultWellnessState())
	wellness.Normalize()
	rep.add(model.DomainWellness, ok)

	breathing, ok := persist.Load(ctx, s.adapter, model.DomainBreathing, model.DefaultBreathingState())
	breathing.Normalize()
	rep.add(model.DomainBreathing, ok)

	boundaries, ok := persist.Load(ctx, s.adapter, model.DomainBoundaries, model.DefaultBoundariesState())
	boundaries.Normalize()
	rep.add(model.DomainBoundaries, ok)

	convo, ok := persist.Load(ctx, s.adapter, model.DomainConversations, model.DefaultConversationLog())
	rep.add(model.DomainConversations, ok)

	s.mu.Lock()
	s.user = user
	s.wellness = wellness
	s.breathing = breathing
	s.boundaries = boundaries
	s.conversations = convo.Clone()
	s.mu.Unlock()

	s.logger.Info("state restored",
		zap.Strings("restored", rep.Restored),
		zap.Strings("defaults", rep.Defaults))
	return rep
}

// SaveAll persists every slice unconditionally. It publishes nothing.
func (s *Store) SaveAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveAllLocked(ctx)
}

func (s *Store) saveAllLocked(ctx context.Context) error {
	values := map[string]any{
		model.DomainUser:          s.user,
		model.DomainWellness:      s.wellness,
		model.DomainBreathing:     s.breathing,
		model.DomainBoundaries:    s.boundaries,
		model.DomainConversations: s.conversations,
	}
	var failed []error
	for _, domain := range model.Domains {
		if !s.adapter.Save(ctx, domain, values[domain]) {
			failed = append(failed, fmt.Errorf("%s: %w", domain, ErrNotPersisted))
		}
	}
	return errors.Join(failed...)
}

// Import replaces every slice with snap and persists the result. Like
// Restore it is a bulk load and publishes nothing.
func (s *Store) Import(ctx context.Context, snap model.Snapshot) error {
	snap = snap.Clone()
	snap.User.Normalize()
	snap.Wellness.Normalize()
	snap.Breathing.Normalize()
	snap.Boundaries.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = snap.User
	s.wellness = snap.Wellness
	s.breathing = snap.Breathing
	s.boundaries = snap.Boundaries
	s.conversations = snap.Conversations
	return s.saveAllLocked(ctx)
}

// Clear deletes every stored slice and resets memory to the defaults.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	def := model.DefaultSnapshot()
	s.user = def.User
	s.wellness = def.Wellness
	s.breathing = def.Breathing
	s.boundaries = def.Boundaries
	s.conversations = def.Conversations

	var failed []error
	for _, domain := range model.Domains {
		if !s.adapter.Clear(ctx, domain) {
			failed = append(failed, fmt.Errorf("%s: %w", domain, ErrNotPersisted))
		}
	}
	s.mu.Unlock()

	s.bus.Publish(events.StateCleared{})
	return errors.Join(failed...)
}

func (s *Store) newID(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at), s.entropy).String()
}
