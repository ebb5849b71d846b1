package core

import "fmt"

// Action is one of the six discrete actions the agent can take.
// The integer encoding is part of the external contract:
// 0=up, 1=down, 2=left, 3=right, 4=pickup, 5=drop.
type Action int

const (
	ActionMoveUp Action = iota
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionPickup
	ActionDrop
)

// moveOffsets maps movement actions to one-cell grid offsets.
var moveOffsets = map[Action]Position{
	ActionMoveUp:    {X: 0, Y: -1},
	ActionMoveDown:  {X: 0, Y: 1},
	ActionMoveLeft:  {X: -1, Y: 0},
	ActionMoveRight: {X: 1, Y: 0},
}

// IsValid reports whether the action is within the discrete action space
func (a Action) IsValid() bool {
	return a >= ActionMoveUp && a <= ActionDrop
}

// IsMovement reports whether the action is one of the four movement actions
func (a Action) IsMovement() bool {
	_, ok := moveOffsets[a]
	return ok
}

// Offset returns the grid offset for a movement action. The second return
// value is false for pickup/drop and invalid actions.
func (a Action) Offset() (Position, bool) {
	off, ok := moveOffsets[a]
	return off, ok
}

// String returns a human-readable name for the action
func (a Action) String() string {
	switch a {
	case ActionMoveUp:
		return "up"
	case ActionMoveDown:
		return "down"
	case ActionMoveLeft:
		return "left"
	case ActionMoveRight:
		return "right"
	case ActionPickup:
		return "pickup"
	case ActionDrop:
		return "drop"
	default:
		return fmt.Sprintf("invalid(%d)", int(a))
	}
}
