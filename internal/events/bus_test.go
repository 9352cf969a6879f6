package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rcliao/calmish/internal/model"
)

func TestBus(t *testing.T) {
	t.Run("publish with no handlers", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		assert.NotPanics(t, func() { bus.Publish(WaterUpdated{Glasses: 2}) })
	})

	t.Run("typed handler receives payload", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		var got []int
		Subscribe(bus, func(e MoodUpdated) { got = append(got, e.Mood) })

		bus.Publish(MoodUpdated{Mood: 4})
		bus.Publish(WaterUpdated{Glasses: 1})

		assert.Equal(t, []int{4}, got)
	})

	t.Run("delivery follows registration order", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		var order []string
		Subscribe(bus, func(HabitCompleted) { order = append(order, "first") })
		Subscribe(bus, func(HabitCompleted) { order = append(order, "second") })
		bus.SubscribeTopic(TopicHabitCompleted, func(Event) { order = append(order, "third") })

		bus.Publish(HabitCompleted{Habit: "walk"})

		assert.Equal(t, []string{"first", "second", "third"}, order)
	})

	t.Run("panicking handler does not stop the others", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		bus := NewBus(zap.New(core))

		var reached []string
		Subscribe(bus, func(SessionCompleted) { reached = append(reached, "before") })
		Subscribe(bus, func(SessionCompleted) { panic("boom") })
		Subscribe(bus, func(SessionCompleted) { reached = append(reached, "after") })

		assert.NotPanics(t, func() {
			bus.Publish(SessionCompleted{Session: model.BreathingSession{ID: "x"}})
		})
		assert.Equal(t, []string{"before", "after"}, reached)

		failures := logs.FilterMessage("handler failed").All()
		require.Len(t, failures, 1)
		assert.Equal(t, int64(1), failures[0].ContextMap()["handler_index"])
	})

	t.Run("unsubscribe removes only that handler", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		var a, b int
		subA := Subscribe(bus, func(WaterUpdated) { a++ })
		Subscribe(bus, func(WaterUpdated) { b++ })

		bus.Publish(WaterUpdated{})
		bus.Unsubscribe(subA)
		bus.Publish(WaterUpdated{})

		assert.Equal(t, 1, a)
		assert.Equal(t, 2, b)
		assert.Equal(t, 1, bus.Count(TopicWaterUpdated))
	})

	t.Run("unsubscribe unknown is a no-op", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		sub := Subscribe(bus, func(WaterUpdated) {})
		bus.Unsubscribe(sub)

		assert.NotPanics(t, func() { bus.Unsubscribe(sub) })
		assert.NotPanics(t, func() { bus.Unsubscribe(Subscription{Topic: "nothing"}) })
		assert.Equal(t, 0, bus.Count(TopicWaterUpdated))
	})

	t.Run("handler may unsubscribe itself during delivery", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		calls := 0
		var sub Subscription
		sub = Subscribe(bus, func(EnergyUpdated) {
			calls++
			bus.Unsubscribe(sub)
		})
		second := 0
		Subscribe(bus, func(EnergyUpdated) { second++ })

		bus.Publish(EnergyUpdated{Level: 2})
		bus.Publish(EnergyUpdated{Level: 3})

		assert.Equal(t, 1, calls)
		assert.Equal(t, 2, second)
	})

	t.Run("handler may publish", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		var seen []Topic
		bus.SubscribeTopic(TopicWaterUpdated, func(e Event) {
			seen = append(seen, e.Topic())
			bus.Publish(MoodUpdated{Mood: 5})
		})
		bus.SubscribeTopic(TopicMoodUpdated, func(e Event) { seen = append(seen, e.Topic()) })

		bus.Publish(WaterUpdated{Glasses: 8})

		assert.Equal(t, []Topic{TopicWaterUpdated, TopicMoodUpdated}, seen)
	})
}

func TestTopics(t *testing.T) {
	cases := []struct {
		event Event
		want  string
	}{
		{WaterUpdated{}, "waterUpdated"},
		{MoodUpdated{}, "moodUpdated"},
		{HabitCompleted{}, "habitCompleted"},
		{SessionCompleted{}, "sessionCompleted"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, string(c.event.Topic()))
	}
}

func TestTopicsListsEveryEvent(t *testing.T) {
	all := []Event{
		WaterUpdated{}, MoodUpdated{}, HabitCompleted{}, SessionCompleted{},
		SymptomLogged{}, EnergyUpdated{}, ProfileUpdated{}, ScriptUsed{},
		MessageAppended{}, DayClosed{}, StateCleared{},
	}
	require.Len(t, Topics, len(all))
	for i, e := range all {
		assert.Equal(t, Topics[i], e.Topic())
	}
}
