// Package move tracks the single piece being relocated in the editor.
//
// A move is two-phase: Start captures the piece, and the piece stays where it
// is until a validated target is committed through the ledger and Complete is
// called. Cancel abandons the move at any point.
package move

import (
	"log/slog"

	"github.com/talgya/hexedit/internal/action"
	"github.com/talgya/hexedit/internal/world"
)

// State is the machine state.
type State uint8

const (
	Idle State = iota
	MovePending
)

func (s State) String() string {
	if s == MovePending {
		return "move_pending"
	}
	return "idle"
}

// TargetValidator decides whether a piece may be moved to a target.
type TargetValidator interface {
	IsMoveTargetValid(o world.Occupant, to world.AxialCoord, rot world.Rotation) bool
}

// Notifier is told whenever a move starts or ends.
type Notifier interface {
	NotifyMoveAvailabilityChanged()
}

// Request is a validated move, ready to be turned into a ledger action.
type Request struct {
	Occupant     world.Occupant
	From         world.AxialCoord
	FromRotation world.Rotation
	To           world.AxialCoord
	Rotation     world.Rotation
}

// Action returns the ledger action that performs the move.
func (r Request) Action() action.Action {
	return action.New(action.Move, action.Step{
		Occupant:     r.Occupant,
		From:         r.From,
		FromRotation: r.FromRotation,
		To:           r.To,
		Rotation:     r.Rotation,
	})
}

// Machine holds at most one move in progress.
type Machine struct {
	validator TargetValidator
	notifier  Notifier

	moving world.Occupant
}

// NewMachine creates an idle machine. notifier may be nil.
func NewMachine(validator TargetValidator, notifier Notifier) *Machine {
	return &Machine{validator: validator, notifier: notifier}
}

// State returns the current state.
func (m *Machine) State() State {
	if m.moving != nil {
		return MovePending
	}
	return Idle
}

// Pending reports whether a move is in progress.
func (m *Machine) Pending() bool {
	return m.moving != nil
}

// Moving returns the piece being moved, or nil.
func (m *Machine) Moving() world.Occupant {
	return m.moving
}

// Start begins moving o. It is refused while another move is pending.
func (m *Machine) Start(o world.Occupant) error {
	if m.moving != nil {
		slog.Debug("move start blocked", "pending", m.moving.ID(), "requested", o.ID())
		return action.Blocked(action.MovePending, "already moving "+m.moving.ID().String())
	}
	m.begin(o)
	return nil
}

// MustStart is Start for callers that have already checked the state.
// Starting over a pending move is a programming error.
func (m *Machine) MustStart(o world.Occupant) {
	if m.moving != nil {
		panic("move: MustStart while a move is pending")
	}
	m.begin(o)
}

func (m *Machine) begin(o world.Occupant) {
	m.moving = o
	slog.Debug("move started", "id", o.ID(), "from", o.Position().String())
	m.notify()
}

// Validate checks a target for the pending move. The machine stays pending
// whatever the result; call Complete once the returned request is committed.
func (m *Machine) Validate(to world.AxialCoord, rot world.Rotation) (Request, error) {
	if m.moving == nil {
		return Request{}, action.Blocked(action.NoMovePending, "")
	}
	rot = rot.Normalize()
	if m.validator != nil && !m.validator.IsMoveTargetValid(m.moving, to, rot) {
		return Request{}, action.Blocked(action.InvalidTarget, to.String())
	}
	return Request{
		Occupant:     m.moving,
		From:         m.moving.Position(),
		FromRotation: m.moving.Rotation(),
		To:           to,
		Rotation:     rot,
	}, nil
}

// Complete ends the pending move after its action was accepted.
func (m *Machine) Complete() {
	if m.moving == nil {
		return
	}
	slog.Debug("move completed", "id", m.moving.ID(), "to", m.moving.Position().String())
	m.moving = nil
	m.notify()
}

// Cancel abandons the pending move. It returns false, and notifies nobody,
// when there was nothing to cancel.
func (m *Machine) Cancel() bool {
	if m.moving == nil {
		return false
	}
	slog.Debug("move cancelled", "id", m.moving.ID())
	m.moving = nil
	m.notify()
	return true
}

func (m *Machine) notify() {
	if m.notifier != nil {
		m.notifier.NotifyMoveAvailabilityChanged()
	}
}
