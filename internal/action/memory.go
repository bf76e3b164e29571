package action

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexedit/internal/world"
)

// Costs prices the edits a MemoryLedger applies.
type Costs struct {
	Place  float64 // per placed piece
	Move   float64 // per moved pre-existing piece; session pieces move free
	Remove float64 // per removed pre-existing piece; session pieces are refunded
}

// DefaultCosts returns the stock pricing.
func DefaultCosts() Costs {
	return Costs{Place: 20, Move: 10, Remove: 10}
}

type entry struct {
	action Action
	cost   float64
}

// MemoryLedger is an in-process Ledger that applies actions to a
// world.Layout and keeps a linear undo/redo history.
type MemoryLedger struct {
	layout *world.Layout
	costs  Costs
	budget float64

	history []entry
	cursor  int // history[:cursor] is applied

	moves PendingChecker

	// OnAvailabilityChanged fires after a move starts or ends with the
	// current undo/redo availability.
	OnAvailabilityChanged func(canUndo, canRedo bool)
}

// NewMemoryLedger creates a ledger over layout with the given starting budget.
func NewMemoryLedger(layout *world.Layout, costs Costs, budget float64) *MemoryLedger {
	return &MemoryLedger{layout: layout, costs: costs, budget: budget}
}

// TrackMoves tells the ledger where to look up whether a move is pending.
func (l *MemoryLedger) TrackMoves(moves PendingChecker) {
	l.moves = moves
}

// Layout returns the layout the ledger edits.
func (l *MemoryLedger) Layout() *world.Layout {
	return l.layout
}

// Budget returns what is left to spend.
func (l *MemoryLedger) Budget() float64 {
	return l.budget
}

// QueryCost implements Ledger. Negative costs are refunds.
func (l *MemoryLedger) QueryCost(a Action) float64 {
	total := 0.0
	for _, s := range a.Steps {
		switch a.Kind {
		case Place:
			total += l.costs.Place
		case Move:
			if s.Occupant.PreExisting() {
				total += l.costs.Move
			}
		case Remove:
			if s.Occupant.PreExisting() {
				total += l.costs.Remove
			} else {
				total -= l.costs.Place
			}
		}
	}
	return total
}

// IsAffordable implements Ledger.
func (l *MemoryLedger) IsAffordable(cost float64) bool {
	return cost <= l.budget
}

// DoesActionEndInProgressAction implements Ledger. Only a move concludes a move.
func (l *MemoryLedger) DoesActionEndInProgressAction(a Action) bool {
	return a.Kind == Move
}

// NotifyMoveAvailabilityChanged implements Ledger.
func (l *MemoryLedger) NotifyMoveAvailabilityChanged() {
	canUndo, canRedo := l.CanUndo(), l.CanRedo()
	slog.Debug("undo availability changed", "can_undo", canUndo, "can_redo", canRedo)
	if l.OnAvailabilityChanged != nil {
		l.OnAvailabilityChanged(canUndo, canRedo)
	}
}

// Submit implements Ledger. All steps apply or none do.
func (l *MemoryLedger) Submit(a Action) error {
	cost := l.QueryCost(a)
	if !l.IsAffordable(cost) {
		return Blocked(Unaffordable, "cost "+humanize.Commaf(cost))
	}
	if err := l.apply(a); err != nil {
		return fmt.Errorf("apply %s: %w", a.Kind, err)
	}

	l.budget -= cost
	l.history = append(l.history[:l.cursor], entry{action: a, cost: cost})
	l.cursor = len(l.history)

	slog.Info("action applied",
		"kind", a.Kind.String(),
		"steps", len(a.Steps),
		"cost", humanize.Commaf(cost),
		"budget", humanize.Commaf(l.budget),
	)
	return nil
}

func (l *MemoryLedger) movePending() bool {
	return l.moves != nil && l.moves.Pending()
}

// CanUndo reports whether Undo would do anything.
func (l *MemoryLedger) CanUndo() bool {
	return !l.movePending() && l.cursor > 0
}

// CanRedo reports whether Redo would do anything.
func (l *MemoryLedger) CanRedo() bool {
	return !l.movePending() && l.cursor < len(l.history)
}

// Undo reverts the most recent applied action and refunds its cost.
func (l *MemoryLedger) Undo() error {
	if l.movePending() {
		return Blocked(MovePending, "undo")
	}
	if l.cursor == 0 {
		return errors.New("nothing to undo")
	}
	e := l.history[l.cursor-1]
	if err := l.revert(e.action); err != nil {
		return fmt.Errorf("undo %s: %w", e.action.Kind, err)
	}
	l.cursor--
	l.budget += e.cost
	return nil
}

// Redo reapplies the most recently undone action.
func (l *MemoryLedger) Redo() error {
	if l.movePending() {
		return Blocked(MovePending, "redo")
	}
	if l.cursor == len(l.history) {
		return errors.New("nothing to redo")
	}
	e := l.history[l.cursor]
	if !l.IsAffordable(e.cost) {
		return Blocked(Unaffordable, "cost "+humanize.Commaf(e.cost))
	}
	if err := l.apply(e.action); err != nil {
		return fmt.Errorf("redo %s: %w", e.action.Kind, err)
	}
	l.cursor++
	l.budget -= e.cost
	return nil
}

func (l *MemoryLedger) apply(a Action) error {
	for i, s := range a.Steps {
		if err := l.applyStep(a.Kind, s); err != nil {
			l.revertSteps(a.Kind, a.Steps[:i])
			return err
		}
	}
	return nil
}

func (l *MemoryLedger) revert(a Action) error {
	for i := len(a.Steps) - 1; i >= 0; i-- {
		if err := l.revertStep(a.Kind, a.Steps[i]); err != nil {
			// Put back what was already reverted so the layout stays consistent.
			for _, s := range a.Steps[i+1:] {
				_ = l.applyStep(a.Kind, s)
			}
			return err
		}
	}
	return nil
}

func (l *MemoryLedger) revertSteps(kind Kind, steps []Step) {
	for i := len(steps) - 1; i >= 0; i-- {
		_ = l.revertStep(kind, steps[i])
	}
}

func (l *MemoryLedger) applyStep(kind Kind, s Step) error {
	switch kind {
	case Place:
		p, ok := s.Occupant.(*world.Piece)
		if !ok {
			return fmt.Errorf("place: unsupported occupant %T", s.Occupant)
		}
		return l.layout.Add(p)
	case Remove:
		_, err := l.layout.Remove(s.Occupant.ID())
		return err
	case Move:
		return l.layout.Move(s.Occupant.ID(), s.To, s.Rotation)
	}
	return fmt.Errorf("unknown action kind %d", kind)
}

func (l *MemoryLedger) revertStep(kind Kind, s Step) error {
	switch kind {
	case Place:
		_, err := l.layout.Remove(s.Occupant.ID())
		return err
	case Remove:
		p, ok := s.Occupant.(*world.Piece)
		if !ok {
			return fmt.Errorf("remove: unsupported occupant %T", s.Occupant)
		}
		return l.layout.Add(p)
	case Move:
		return l.layout.Move(s.Occupant.ID(), s.From, s.FromRotation)
	}
	return fmt.Errorf("unknown action kind %d", kind)
}
