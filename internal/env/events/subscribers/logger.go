// Package subscribers holds ready-made event bus subscribers.
package subscribers

import (
	"github.com/rs/zerolog"

	"github.com/packbotics/warehouse-rl/internal/env/events"
)

// LoggerSubscriber writes every event it sees to structured logs
type LoggerSubscriber struct {
	id       string
	logger   zerolog.Logger
	logLevel zerolog.Level
	filter   map[string]bool // nil means log everything
}

// NewLoggerSubscriber creates a logging subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter restricts logging to the given event types. An empty
// list clears the filter.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.filter = nil
		return
	}
	ls.filter = make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		ls.filter[t] = true
	}
}

// InterestedIn reports whether this event type passes the filter
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.filter == nil {
		return true
	}
	return ls.filter[eventType]
}

// HandleEvent logs one event with its type-specific fields
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	log := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("episode_id", event.EpisodeID())

	switch e := event.(type) {
	case *events.EpisodeStartedEvent:
		log = log.Int64("seed", e.Seed).
			Int("width", e.Width).
			Int("height", e.Height).
			Int("packages", e.NumPackages).
			Int("walls", e.NumWalls)
	case *events.StepProcessedEvent:
		log = log.Int("step", e.Step).
			Int("action", e.Action).
			Float64("reward", e.Reward).
			Str("label", e.Label)
	case *events.PackagePickedUpEvent:
		log = log.Int("package_id", e.PackageID).Int("x", e.X).Int("y", e.Y)
	case *events.PackageDeliveredEvent:
		log = log.Int("package_id", e.PackageID).Int("remaining", e.Remaining)
	case *events.PackageDroppedEvent:
		log = log.Int("package_id", e.PackageID).Int("x", e.X).Int("y", e.Y)
	case *events.AgentBumpedEvent:
		log = log.Int("x", e.X).Int("y", e.Y)
	case *events.EpisodeEndedEvent:
		log = log.Str("reason", e.Reason).
			Int("steps", e.Steps).
			Int("battery_left", e.BatteryLeft)
	}

	log.Msg("Environment event")
}
