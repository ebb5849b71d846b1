package events

import "time"

// Event type constants
const (
	TypeEpisodeStarted   = "episode.started"
	TypeStepProcessed    = "step.processed"
	TypePackagePickedUp  = "package.picked_up"
	TypePackageDelivered = "package.delivered"
	TypePackageDropped   = "package.dropped"
	TypeAgentBumped      = "agent.bumped"
	TypeEpisodeEnded     = "episode.ended"
)

// Event is the base interface for all environment events
type Event interface {
	// Type returns the event type string used for filtering
	Type() string
	// EpisodeID returns the episode this event belongs to
	EpisodeID() string
	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// BaseEvent carries the fields shared by every event
type BaseEvent struct {
	EventType string
	Episode   string
	Time      time.Time
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) EpisodeID() string    { return e.Episode }
func (e BaseEvent) Timestamp() time.Time { return e.Time }

func newBase(eventType, episodeID string) BaseEvent {
	return BaseEvent{EventType: eventType, Episode: episodeID, Time: time.Now()}
}

// EpisodeStartedEvent is published by Reset once a fresh episode exists
type EpisodeStartedEvent struct {
	BaseEvent
	Seed        int64
	Width       int
	Height      int
	NumPackages int
	NumWalls    int
}

// NewEpisodeStartedEvent creates an EpisodeStartedEvent
func NewEpisodeStartedEvent(episodeID string, seed int64, width, height, numPackages, numWalls int) *EpisodeStartedEvent {
	return &EpisodeStartedEvent{
		BaseEvent:   newBase(TypeEpisodeStarted, episodeID),
		Seed:        seed,
		Width:       width,
		Height:      height,
		NumPackages: numPackages,
		NumWalls:    numWalls,
	}
}

// StepProcessedEvent is published after every step
type StepProcessedEvent struct {
	BaseEvent
	Step   int
	Action int
	Reward float64
	Label  string
}

// NewStepProcessedEvent creates a StepProcessedEvent
func NewStepProcessedEvent(episodeID string, step, action int, reward float64, label string) *StepProcessedEvent {
	return &StepProcessedEvent{
		BaseEvent: newBase(TypeStepProcessed, episodeID),
		Step:      step,
		Action:    action,
		Reward:    reward,
		Label:     label,
	}
}

// PackagePickedUpEvent is published on a successful pickup
type PackagePickedUpEvent struct {
	BaseEvent
	PackageID int
	X, Y      int
}

// NewPackagePickedUpEvent creates a PackagePickedUpEvent
func NewPackagePickedUpEvent(episodeID string, packageID, x, y int) *PackagePickedUpEvent {
	return &PackagePickedUpEvent{
		BaseEvent: newBase(TypePackagePickedUp, episodeID),
		PackageID: packageID,
		X:         x,
		Y:         y,
	}
}

// PackageDeliveredEvent is published when a carried package is dropped
// on the goal cell
type PackageDeliveredEvent struct {
	BaseEvent
	PackageID int
	Remaining int
}

// NewPackageDeliveredEvent creates a PackageDeliveredEvent
func NewPackageDeliveredEvent(episodeID string, packageID, remaining int) *PackageDeliveredEvent {
	return &PackageDeliveredEvent{
		BaseEvent: newBase(TypePackageDelivered, episodeID),
		PackageID: packageID,
		Remaining: remaining,
	}
}

// PackageDroppedEvent is published when a carried package is dropped
// anywhere other than the goal
type PackageDroppedEvent struct {
	BaseEvent
	PackageID int
	X, Y      int
}

// NewPackageDroppedEvent creates a PackageDroppedEvent
func NewPackageDroppedEvent(episodeID string, packageID, x, y int) *PackageDroppedEvent {
	return &PackageDroppedEvent{
		BaseEvent: newBase(TypePackageDropped, episodeID),
		PackageID: packageID,
		X:         x,
		Y:         y,
	}
}

// AgentBumpedEvent is published when a movement hits a wall or the grid
// boundary
type AgentBumpedEvent struct {
	BaseEvent
	X, Y int
}

// NewAgentBumpedEvent creates an AgentBumpedEvent
func NewAgentBumpedEvent(episodeID string, x, y int) *AgentBumpedEvent {
	return &AgentBumpedEvent{
		BaseEvent: newBase(TypeAgentBumped, episodeID),
		X:         x,
		Y:         y,
	}
}

// EpisodeEndedEvent is published on the terminal step
type EpisodeEndedEvent struct {
	BaseEvent
	Reason      string
	Steps       int
	BatteryLeft int
}

// NewEpisodeEndedEvent creates an EpisodeEndedEvent
func NewEpisodeEndedEvent(episodeID, reason string, steps, batteryLeft int) *EpisodeEndedEvent {
	return &EpisodeEndedEvent{
		BaseEvent:   newBase(TypeEpisodeEnded, episodeID),
		Reason:      reason,
		Steps:       steps,
		BatteryLeft: batteryLeft,
	}
}
