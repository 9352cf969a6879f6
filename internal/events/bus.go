package events

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Subscription identifies one handler registration.
type Subscription struct {
	ID    uuid.UUID
	Topic Topic
}

type registration struct {
	id uuid.UUID
	fn func(Event)
}

// Bus delivers events synchronously to handlers in registration order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Topic][]registration
	logger   *zap.Logger
}

// NewBus creates an empty Bus.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[Topic][]registration),
		logger:   logger.With(zap.String("component", "event_bus")),
	}
}

// SubscribeTopic appends fn to topic's handler list.
func (b *Bus) SubscribeTopic(topic Topic, fn func(Event)) Subscription {
	sub := Subscription{ID: uuid.New(), Topic: topic}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], registration{id: sub.ID, fn: fn})
	b.logger.Debug("registered handler",
		zap.String("topic", string(topic)),
		zap.Int("handler_count", len(b.handlers[topic])))
	return sub
}

// Subscribe registers a handler typed to a single event kind.
func Subscribe[E Event](b *Bus, fn func(E)) Subscription {
	var zero E
	return b.SubscribeTopic(zero.Topic(), func(e Event) {
		if typed, ok := e.(E); ok {
			fn(typed)
		}
	})
}

// Unsubscribe removes the registration. Unknown subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[sub.Topic]
	i := slices.IndexFunc(regs, func(r registration) bool { return r.id == sub.ID })
	if i < 0 {
		return
	}
	b.handlers[sub.Topic] = slices.Delete(slices.Clone(regs), i, i+1)
}

// Count returns the number of handlers registered for topic.
func (b *Bus) Count(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[topic])
}

// Publish invokes every handler registered for the event's topic. Handlers
// registered or removed during delivery take effect from the next Publish.
// A panicking handler is logged and does not stop delivery to the rest.
func (b *Bus) Publish(e Event) {
	topic := e.Topic()

	b.mu.RLock()
	regs := b.handlers[topic]
	b.mu.RUnlock()

	b.logger.Debug("publishing event",
		zap.String("topic", string(topic)),
		zap.Int("handler_count", len(regs)))

	for i, r := range regs {
		b.deliver(i, topic, r, e)
	}
}

func (b *Bus) deliver(i int, topic Topic, r registration, e Event) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("handler failed",
				zap.String("topic", string(topic)),
				zap.Int("handler_index", i),
				zap.String("subscription", r.id.String()),
				zap.Error(fmt.Errorf("panic: %v", rec)))
		}
	}()
	r.fn(e)
}
