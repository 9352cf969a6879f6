package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/rcliao/calmish/internal/events"
	"github.com/rcliao/calmish/internal/model"
	"github.com/rcliao/calmish/internal/persist"
	"github.com/rcliao/calmish/internal/state"
	"github.com/rcliao/calmish/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newState(mem store.Store) *state.Store {
	adapter := persist.NewAdapter(mem, "", zap.NewNop())
	return state.New(adapter, events.NewBus(zap.NewNop()), zap.NewNop(), state.Options{})
}

func TestInitFreshDefaults(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	st := newState(mem)
	m := NewManager(st, nil, zap.NewNop(), Options{})

	assert.Equal(t, PhaseUninitialized, m.Phase())
	rep, err := m.Init(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, m.Phase())
	assert.Empty(t, rep.Restored)
	assert.ElementsMatch(t, model.Domains, rep.Defaults)

	assert.Equal(t, 0, st.Wellness().WaterGlasses)
	assert.Equal(t, 3, st.Wellness().Mood)
	assert.Equal(t, 1, st.Breathing().Progress.StreakDays)
	require.NoError(t, m.Close(ctx))
}

func TestInitTwice(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newState(store.NewMemoryStore()), nil, nil, Options{})

	_, err := m.Init(ctx)
	require.NoError(t, err)
	_, err = m.Init(ctx)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	require.NoError(t, m.Close(ctx))
}

func TestFlushSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()

	first := newState(mem)
	m := NewManager(first, nil, nil, Options{})
	_, err := m.Init(ctx)
	require.NoError(t, err)
	require.NoError(t, first.SetWater(ctx, 8))
	require.NoError(t, m.Flush(ctx, "test"))
	require.NoError(t, m.Close(ctx))

	second := newState(mem)
	m2 := NewManager(second, nil, nil, Options{})
	rep, err := m2.Init(ctx)
	require.NoError(t, err)
	assert.Contains(t, rep.Restored, model.DomainWellness)
	assert.Equal(t, 8, second.Wellness().WaterGlasses)
	require.NoError(t, m2.Close(ctx))
}

func TestFlushBeforeInit(t *testing.T) {
	m := NewManager(newState(store.NewMemoryStore()), nil, nil, Options{})
	assert.ErrorIs(t, m.Flush(context.Background(), "early"), ErrNotReady)
}

func TestSignalsTriggerFlush(t *testing.T) {
	for _, sig := range []Signal{SignalHidden, SignalTerminating} {
		t.Run(sig.String(), func(t *testing.T) {
			ctx := context.Background()
			mem := store.NewMemoryStore()
			signals := NewManualSignals()
			m := NewManager(newState(mem), signals, nil, Options{})
			_, err := m.Init(ctx)
			require.NoError(t, err)
			assert.Empty(t, mem.Dump())

			signals.Fire(sig)

			dump := mem.Dump()
			assert.Len(t, dump, len(model.Domains))
			assert.Contains(t, dump, "calmish_wellness")
			assert.Equal(t, PhaseReady, m.Phase(), "store stays usable after a flush")
			require.NoError(t, m.Close(ctx))
		})
	}
}

func TestSignalFlushFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	signals := NewManualSignals()
	m := NewManager(newState(mem), signals, nil, Options{})
	_, err := m.Init(ctx)
	require.NoError(t, err)

	mem.Fail(errors.New("disk full"))
	signals.Fire(SignalTerminating)
	assert.Equal(t, PhaseReady, m.Phase())

	err = m.Flush(ctx, "manual")
	assert.True(t, state.IsNotPersisted(err))

	mem.Fail(nil)
	require.NoError(t, m.Close(ctx))
}

func TestCloseDetachesFromSource(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	signals := NewManualSignals()
	st := newState(mem)
	m := NewManager(st, signals, nil, Options{})
	_, err := m.Init(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Close(ctx))

	require.NoError(t, st.SetWater(ctx, 5))
	mem.Fail(errors.New("should not be touched"))
	signals.Fire(SignalHidden)
	mem.Fail(nil)
}

func TestPeriodicFlush(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	m := NewManager(newState(mem), nil, nil, Options{FlushInterval: 5 * time.Millisecond})
	_, err := m.Init(ctx)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(mem.Dump()) == len(model.Domains)
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, m.Close(ctx))
}

func TestManualSignalsStop(t *testing.T) {
	signals := NewManualSignals()
	var got []Signal
	stop := signals.Notify(func(s Signal) { got = append(got, s) })
	signals.Fire(SignalHidden)
	stop()
	signals.Fire(SignalTerminating)
	assert.Equal(t, []Signal{SignalHidden}, got)
}
