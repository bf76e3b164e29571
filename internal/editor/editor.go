// Package editor is the owning shell of the hex placement engine. It turns
// user intents into symmetry-expanded, cost-checked actions and drives the
// renderer once per frame.
package editor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/hexedit/internal/action"
	"github.com/talgya/hexedit/internal/move"
	"github.com/talgya/hexedit/internal/render"
	"github.com/talgya/hexedit/internal/symmetry"
	"github.com/talgya/hexedit/internal/world"
)

// ErrUnknownOccupant is returned when a restored session refers to a piece the domain does not have.
var ErrUnknownOccupant = errors.New("unknown occupant")

// Options configures a new Editor.
type Options struct {
	Pools    render.Pools
	Symmetry symmetry.Mode
	Kind     string      // kind of piece Place adds
	Shape    world.Shape // footprint of piece Place adds
}

// Editor holds the editing state for one session. All methods must be
// called from the frame loop's goroutine.
type Editor struct {
	domain   Domain
	renderer *render.Renderer
	moves    *move.Machine
	gate     *action.Gate

	mode     symmetry.Mode
	rotation world.Rotation
	kind     string
	shape    world.Shape

	hidePlaced bool
	frame      uint64
}

// New creates an editor over domain that submits actions to ledger.
func New(domain Domain, ledger action.Ledger, opts Options) *Editor {
	shape := opts.Shape
	if len(shape) == 0 {
		shape = world.SingleHex
	}

	e := &Editor{
		domain:   domain,
		renderer: render.NewRenderer(),
		mode:     opts.Symmetry,
		kind:     opts.Kind,
		shape:    shape,
	}
	e.renderer.Init(opts.Pools)
	e.moves = move.NewMachine(domain, ledger)
	e.gate = action.NewGate(ledger, e.moves)
	return e
}

// Mode returns the active symmetry mode.
func (e *Editor) Mode() symmetry.Mode { return e.mode }

// Rotation returns the current placement rotation.
func (e *Editor) Rotation() world.Rotation { return e.rotation }

// Renderer exposes the slot arenas for drawing.
func (e *Editor) Renderer() *render.Renderer { return e.renderer }

// Moves exposes the move state machine.
func (e *Editor) Moves() *move.Machine { return e.moves }

// FrameCount returns the number of frames run so far.
func (e *Editor) FrameCount() uint64 { return e.frame }

// SelectShape changes the piece Place adds.
func (e *Editor) SelectShape(kind string, shape world.Shape) {
	e.kind = kind
	e.shape = shape
}

// SetPlacedHidden hides or shows the placed-hex slots from the next frame on.
func (e *Editor) SetPlacedHidden(hidden bool) {
	e.hidePlaced = hidden
}

// CycleSymmetry advances to the next symmetry mode.
func (e *Editor) CycleSymmetry() symmetry.Mode {
	e.mode = symmetry.Cycle(e.mode)
	slog.Info("symmetry changed", "mode", e.mode.String())
	return e.mode
}

// RotateClockwise turns the placement rotation one step clockwise.
func (e *Editor) RotateClockwise() world.Rotation {
	e.rotation = e.rotation.Clockwise()
	return e.rotation
}

// RotateCounterclockwise turns the placement rotation one step counterclockwise.
func (e *Editor) RotateCounterclockwise() world.Rotation {
	e.rotation = e.rotation.Counterclockwise()
	return e.rotation
}

// ExpandWithSymmetry expands coord/rot with the active mode, or with
// override when it is not nil.
func (e *Editor) ExpandWithSymmetry(coord world.AxialCoord, rot world.Rotation, override *symmetry.Mode) []symmetry.Candidate {
	mode := e.mode
	if override != nil {
		mode = *override
	}
	return symmetry.Expand(coord, rot, mode)
}

// RenderHover previews the selected shape at each candidate with the given
// validity. It returns true if an invalid preview overlapped a placed hex.
func (e *Editor) RenderHover(candidates []symmetry.Candidate, valid bool) bool {
	conflict := false
	for _, c := range candidates {
		if e.renderOne(c, e.shape.Rotated(c.Rotation), valid) {
			conflict = true
		}
	}
	return conflict
}

// Hover previews what a click at cursor would do: the moved piece when a
// move is pending, otherwise every symmetry copy of the selected shape, each
// with its own validity.
func (e *Editor) Hover(cursor world.AxialCoord) bool {
	if moving := e.moves.Moving(); moving != nil {
		offsets := rotateOffsets(moving.Offsets(), e.rotation-moving.Rotation())
		valid := e.domain.IsMoveTargetValid(moving, cursor, e.rotation)
		return e.renderOne(symmetry.Candidate{Coord: cursor, Rotation: e.rotation}, offsets, valid)
	}

	conflict := false
	for _, c := range e.ExpandWithSymmetry(cursor, e.rotation, nil) {
		valid := e.domain.CanPlace(e.shape, c.Coord, c.Rotation)
		if e.renderOne(c, e.shape.Rotated(c.Rotation), valid) {
			conflict = true
		}
	}
	return conflict
}

func (e *Editor) renderOne(c symmetry.Candidate, offsets []world.AxialCoord, valid bool) bool {
	_, conflict := e.renderer.RenderCandidates(c.Coord, offsets, valid)
	e.renderer.RenderModel(c, valid)
	return conflict
}

func rotateOffsets(offsets []world.AxialCoord, delta world.Rotation) []world.AxialCoord {
	out := make([]world.AxialCoord, len(offsets))
	for i, o := range offsets {
		out[i] = o.RotateAroundOrigin(delta)
	}
	return out
}

// ReconcilePlacedSet refreshes the placed-hex slots from occupants.
func (e *Editor) ReconcilePlacedSet(occupants []world.Occupant, islands []world.AxialCoord, forceHide bool) render.ReconcileStats {
	return e.renderer.ReconcilePlacedSet(occupants, islands, forceHide)
}

// FrameResult summarises one frame.
type FrameResult struct {
	Frame    uint64
	Conflict bool
	Placed   render.ReconcileStats
}

// Frame runs one editor tick: per-frame state is reset, the placed slots are
// reconciled with the domain, and the hover preview is rebuilt at cursor.
// A nil cursor means the pointer is off the grid.
func (e *Editor) Frame(cursor *world.AxialCoord) FrameResult {
	e.frame++
	e.renderer.BeginFrame()

	res := FrameResult{Frame: e.frame}
	res.Placed = e.ReconcilePlacedSet(e.visibleOccupants(), e.domain.IslandHexes(), e.hidePlaced)
	if cursor != nil {
		res.Conflict = e.Hover(*cursor)
	}
	return res
}

// visibleOccupants leaves out the piece being moved; the hover preview stands in for it.
func (e *Editor) visibleOccupants() []world.Occupant {
	all := e.domain.Occupants()
	moving := e.moves.Moving()
	if moving == nil {
		return all
	}
	out := make([]world.Occupant, 0, len(all))
	for _, o := range all {
		if o.ID() != moving.ID() {
			out = append(out, o)
		}
	}
	return out
}

// Place adds the selected shape at coord and at every symmetry copy that fits.
func (e *Editor) Place(coord world.AxialCoord) error {
	if e.moves.Pending() {
		return action.Blocked(action.MovePending, "place")
	}

	claimed := make(map[world.AxialCoord]bool)
	var steps []action.Step
	for _, c := range e.ExpandWithSymmetry(coord, e.rotation, nil) {
		if !e.domain.CanPlace(e.shape, c.Coord, c.Rotation) {
			continue
		}
		cells := e.shape.Cells(c.Coord, c.Rotation)
		if anyClaimed(claimed, cells) {
			continue
		}
		for _, cell := range cells {
			claimed[cell] = true
		}
		o := e.domain.NewOccupant(e.kind, e.shape, c.Coord, c.Rotation)
		steps = append(steps, action.Step{Occupant: o, To: c.Coord, Rotation: c.Rotation})
	}

	if len(steps) == 0 {
		return action.Blocked(action.InvalidPlacement, coord.String())
	}
	return e.gate.Submit(action.New(action.Place, steps...))
}

func anyClaimed(claimed map[world.AxialCoord]bool, cells []world.AxialCoord) bool {
	for _, c := range cells {
		if claimed[c] {
			return true
		}
	}
	return false
}

// Remove takes away the pieces covering coord and its symmetry copies.
func (e *Editor) Remove(coord world.AxialCoord) error {
	if e.moves.Pending() {
		return action.Blocked(action.MovePending, "remove")
	}

	seen := make(map[uuid.UUID]bool)
	var steps []action.Step
	for _, c := range e.ExpandWithSymmetry(coord, e.rotation, nil) {
		o := e.domain.OccupantAt(c.Coord)
		if o == nil || seen[o.ID()] {
			continue
		}
		seen[o.ID()] = true
		steps = append(steps, action.Step{Occupant: o, From: o.Position(), FromRotation: o.Rotation()})
	}

	if len(steps) == 0 {
		return action.Blocked(action.NothingToRemove, coord.String())
	}
	return e.gate.Submit(action.New(action.Remove, steps...))
}

// StartMove picks up o. The placement rotation switches to the piece's own.
func (e *Editor) StartMove(o world.Occupant) error {
	if err := e.moves.Start(o); err != nil {
		return err
	}
	e.rotation = o.Rotation()
	return nil
}

// StartMoveAt picks up the piece covering coord.
func (e *Editor) StartMoveAt(coord world.AxialCoord) error {
	o := e.domain.OccupantAt(coord)
	if o == nil {
		return action.Blocked(action.NothingToMove, coord.String())
	}
	return e.StartMove(o)
}

// ConfirmMoveTarget drops the moving piece at coord with the current
// rotation. It returns false with a blocked error when the target is invalid
// or the move is unaffordable; the move then stays pending.
func (e *Editor) ConfirmMoveTarget(coord world.AxialCoord) (bool, error) {
	req, err := e.moves.Validate(coord, e.rotation)
	if err != nil {
		return false, err
	}
	if err := e.gate.Submit(req.Action()); err != nil {
		return false, err
	}
	e.moves.Complete()
	return true, nil
}

// CancelMove abandons the pending move, if any.
func (e *Editor) CancelMove() bool {
	return e.moves.Cancel()
}

// Session is the editor state that survives a save and reload.
type Session struct {
	Symmetry    symmetry.Mode  `json:"symmetry"`
	Rotation    world.Rotation `json:"rotation"`
	PendingMove uuid.UUID      `json:"pending_move"` // uuid.Nil when idle
}

// Snapshot returns the persistable session state.
func (e *Editor) Snapshot() Session {
	s := Session{Symmetry: e.mode, Rotation: e.rotation}
	if m := e.moves.Moving(); m != nil {
		s.PendingMove = m.ID()
	}
	return s
}

// Restore applies a saved session. A pending move in the session replaces
// any move currently in progress.
func (e *Editor) Restore(s Session) error {
	var moving world.Occupant
	if s.PendingMove != uuid.Nil {
		moving = e.domain.Lookup(s.PendingMove)
		if moving == nil {
			return fmt.Errorf("restore pending move %s: %w", s.PendingMove, ErrUnknownOccupant)
		}
	}

	e.moves.Cancel()
	e.mode = s.Symmetry
	e.rotation = s.Rotation.Normalize()
	if moving != nil {
		e.moves.MustStart(moving)
	}

	slog.Info("editor session restored",
		"symmetry", e.mode.String(),
		"rotation", int(e.rotation),
		"moving", s.PendingMove != uuid.Nil,
	)
	return nil
}
