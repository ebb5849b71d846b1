package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Handler is a function subscriber for a single event type
type Handler func(Event)

// Subscriber receives events it declares interest in
type Subscriber interface {
	// ID returns the subscriber's unique identifier
	ID() string
	// InterestedIn reports whether the subscriber wants this event type
	InterestedIn(eventType string) bool
	// HandleEvent processes one event
	HandleEvent(Event)
}

// Bus is a synchronous event bus. The environment publishes episode and
// step events through it; publishing is strictly a side channel and has
// no effect on the step tuple, so a nil or empty bus changes nothing
// about determinism.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]Subscriber
	handlers    map[string][]Handler
	logger      zerolog.Logger
}

// NewBus creates an event bus
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[string]Subscriber),
		handlers:    make(map[string][]Handler),
		logger:      logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a subscriber to the bus
func (b *Bus) Subscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[sub.ID()] = sub
	b.logger.Debug().Str("subscriber_id", sub.ID()).Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber from the bus
func (b *Bus) Unsubscribe(subscriberID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subscribers, subscriberID)
	b.logger.Debug().Str("subscriber_id", subscriberID).Msg("Subscriber removed from event bus")
}

// SubscribeFunc adds a function handler for one event type
func (b *Bus) SubscribeFunc(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.logger.Debug().Str("event_type", eventType).Msg("Function handler added to event bus")
}

// Publish delivers an event to all interested subscribers synchronously.
// A panicking subscriber is isolated so it cannot break the others or
// the engine.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventType := event.Type()

	for id, sub := range b.subscribers {
		if !sub.InterestedIn(eventType) {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error().
						Str("subscriber_id", id).
						Str("event_type", eventType).
						Interface("panic", r).
						Msg("Subscriber panicked while handling event")
				}
			}()
			sub.HandleEvent(event)
		}()
	}

	for i, handler := range b.handlers[eventType] {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error().
						Str("event_type", eventType).
						Int("handler_index", i).
						Interface("panic", r).
						Msg("Function handler panicked while handling event")
				}
			}()
			handler(event)
		}()
	}
}

// SubscriberCount returns the number of object subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
