package events

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubscriber struct {
	id    string
	types map[string]bool
	seen  []Event
}

func (r *recordingSubscriber) ID() string { return r.id }

func (r *recordingSubscriber) InterestedIn(eventType string) bool {
	if r.types == nil {
		return true
	}
	return r.types[eventType]
}

func (r *recordingSubscriber) HandleEvent(event Event) {
	r.seen = append(r.seen, event)
}

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	sub := &recordingSubscriber{id: "rec"}
	bus.Subscribe(sub)

	bus.Publish(NewEpisodeStartedEvent("ep-1", 42, 7, 7, 1, 5))
	bus.Publish(NewAgentBumpedEvent("ep-1", 0, 0))

	require.Len(t, sub.seen, 2)
	started, ok := sub.seen[0].(*EpisodeStartedEvent)
	require.True(t, ok)
	assert.Equal(t, "ep-1", started.EpisodeID())
	assert.Equal(t, int64(42), started.Seed)
	assert.Equal(t, TypeAgentBumped, sub.seen[1].Type())
}

func TestBusFiltersByInterest(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	sub := &recordingSubscriber{
		id:    "delivery-only",
		types: map[string]bool{TypePackageDelivered: true},
	}
	bus.Subscribe(sub)

	bus.Publish(NewStepProcessedEvent("ep-1", 1, 3, -1, ""))
	bus.Publish(NewPackageDeliveredEvent("ep-1", 0, 0))
	bus.Publish(NewEpisodeEndedEvent("ep-1", "all_delivered", 4, 46))

	require.Len(t, sub.seen, 1)
	assert.Equal(t, TypePackageDelivered, sub.seen[0].Type())
}

func TestBusSubscribeFunc(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var rewards []float64
	bus.SubscribeFunc(TypeStepProcessed, func(e Event) {
		step, ok := e.(*StepProcessedEvent)
		require.True(t, ok)
		rewards = append(rewards, step.Reward)
	})

	bus.Publish(NewStepProcessedEvent("ep-1", 1, 0, -6, "bump"))
	bus.Publish(NewPackagePickedUpEvent("ep-1", 0, 1, 0))
	bus.Publish(NewStepProcessedEvent("ep-1", 2, 4, 1, "pickup"))

	assert.Equal(t, []float64{-6, 1}, rewards)
}

type panickingSubscriber struct{ id string }

func (p *panickingSubscriber) ID() string               { return p.id }
func (p *panickingSubscriber) InterestedIn(string) bool { return true }
func (p *panickingSubscriber) HandleEvent(Event)        { panic("boom") }

func TestBusIsolatesPanics(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	healthy := &recordingSubscriber{id: "healthy"}
	bus.Subscribe(&panickingSubscriber{id: "broken"})
	bus.Subscribe(healthy)
	bus.SubscribeFunc(TypeAgentBumped, func(Event) { panic("boom") })

	assert.NotPanics(t, func() {
		bus.Publish(NewAgentBumpedEvent("ep-1", 2, 2))
	})
	assert.Len(t, healthy.seen, 1)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	sub := &recordingSubscriber{id: "rec"}
	bus.Subscribe(sub)
	require.Equal(t, 1, bus.SubscriberCount())

	bus.Unsubscribe("rec")
	assert.Equal(t, 0, bus.SubscriberCount())

	bus.Publish(NewAgentBumpedEvent("ep-1", 0, 0))
	assert.Empty(t, sub.seen)
}
