package action

import (
	"log/slog"

	"github.com/dustin/go-humanize"
)

// PendingChecker reports whether a move is in progress.
type PendingChecker interface {
	Pending() bool
}

// Gate checks budget and move compatibility before handing an action to the ledger.
type Gate struct {
	ledger Ledger
	moves  PendingChecker
}

// NewGate creates a gate in front of ledger. moves may be nil when the
// editor has no move support.
func NewGate(ledger Ledger, moves PendingChecker) *Gate {
	return &Gate{ledger: ledger, moves: moves}
}

// Check returns a BlockedError if a would be refused, without submitting it.
func (g *Gate) Check(a Action) error {
	if g.moves != nil && g.moves.Pending() && !g.ledger.DoesActionEndInProgressAction(a) {
		return Blocked(MovePending, a.Kind.String())
	}

	cost := g.ledger.QueryCost(a)
	if !g.ledger.IsAffordable(cost) {
		return Blocked(Unaffordable, "cost "+humanize.Commaf(cost))
	}
	return nil
}

// Submit checks a and forwards it to the ledger. Nothing reaches the ledger
// when a check fails.
func (g *Gate) Submit(a Action) error {
	if err := g.Check(a); err != nil {
		slog.Debug("action rejected", "kind", a.Kind.String(), "steps", len(a.Steps), "error", err)
		return err
	}
	if err := g.ledger.Submit(a); err != nil {
		return err
	}
	slog.Debug("action submitted", "id", a.ID, "kind", a.Kind.String(), "steps", len(a.Steps))
	return nil
}
