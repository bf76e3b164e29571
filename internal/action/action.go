// Package action models editor actions and the cost gate in front of the
// Action Ledger, the external queue that owns budget and undo/redo history.
package action

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/hexedit/internal/world"
)

// Kind is the type of edit an action performs.
type Kind uint8

const (
	Place Kind = iota
	Remove
	Move
)

func (k Kind) String() string {
	switch k {
	case Place:
		return "place"
	case Remove:
		return "remove"
	case Move:
		return "move"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Step is one symmetry copy of an action.
type Step struct {
	// Occupant is the piece being added, removed or moved.
	Occupant world.Occupant

	From         world.AxialCoord
	FromRotation world.Rotation
	To           world.AxialCoord
	Rotation     world.Rotation
}

// Action is a single user intent expanded into its symmetry copies.
// The ledger accepts or rejects it as a whole.
type Action struct {
	ID    uuid.UUID
	Kind  Kind
	Steps []Step
}

// New builds an action with a fresh ID.
func New(kind Kind, steps ...Step) Action {
	return Action{ID: uuid.New(), Kind: kind, Steps: steps}
}

// Ledger is the external action queue. It prices actions, applies them and
// keeps undo/redo history.
type Ledger interface {
	QueryCost(a Action) float64
	IsAffordable(cost float64) bool
	Submit(a Action) error
	// NotifyMoveAvailabilityChanged is called whenever a move starts or ends,
	// since a pending move disables undo and redo.
	NotifyMoveAvailabilityChanged()
	// DoesActionEndInProgressAction reports whether a is allowed to conclude
	// a pending move.
	DoesActionEndInProgressAction(a Action) bool
}
