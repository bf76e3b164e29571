package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexedit/internal/world"
)

func newLedger(budget float64) *MemoryLedger {
	return NewMemoryLedger(world.NewLayout(0), DefaultCosts(), budget)
}

func placeAt(q, r int) Action {
	p := world.NewPiece("dot", world.SingleHex, world.AxialCoord{Q: q, R: r}, 0)
	return New(Place, Step{Occupant: p, To: p.Position()})
}

func TestMemoryLedger_PlaceSpendsBudget(t *testing.T) {
	l := newLedger(100)
	require.NoError(t, l.Submit(placeAt(0, 0)))

	assert.Equal(t, 80.0, l.Budget())
	assert.NotNil(t, l.Layout().At(world.AxialCoord{}))
	assert.True(t, l.CanUndo())
	assert.False(t, l.CanRedo())
}

func TestMemoryLedger_UndoRedo(t *testing.T) {
	l := newLedger(100)
	require.NoError(t, l.Submit(placeAt(0, 0)))

	require.NoError(t, l.Undo())
	assert.Equal(t, 100.0, l.Budget())
	assert.Nil(t, l.Layout().At(world.AxialCoord{}))
	assert.True(t, l.CanRedo())

	require.NoError(t, l.Redo())
	assert.Equal(t, 80.0, l.Budget())
	assert.NotNil(t, l.Layout().At(world.AxialCoord{}))

	assert.Error(t, l.Redo())
}

func TestMemoryLedger_SubmitTruncatesRedo(t *testing.T) {
	l := newLedger(100)
	require.NoError(t, l.Submit(placeAt(0, 0)))
	require.NoError(t, l.Undo())
	require.NoError(t, l.Submit(placeAt(1, 0)))
	assert.False(t, l.CanRedo())
}

func TestMemoryLedger_CombinedActionIsAtomic(t *testing.T) {
	l := newLedger(100)
	require.NoError(t, l.Submit(placeAt(1, 0)))

	a := world.NewPiece("dot", world.SingleHex, world.AxialCoord{Q: 0}, 0)
	b := world.NewPiece("dot", world.SingleHex, world.AxialCoord{Q: 1}, 0)
	err := l.Submit(New(Place, Step{Occupant: a}, Step{Occupant: b}))
	require.ErrorIs(t, err, world.ErrOccupied)

	assert.Nil(t, l.Layout().At(world.AxialCoord{}), "first step rolled back")
	assert.Equal(t, 80.0, l.Budget())
}

func TestMemoryLedger_Costs(t *testing.T) {
	l := newLedger(100)
	fresh := world.NewPiece("dot", world.SingleHex, world.AxialCoord{}, 0)
	old := world.NewPiece("dot", world.SingleHex, world.AxialCoord{Q: 1}, 0)
	old.Existing = true

	assert.Equal(t, 0.0, l.QueryCost(New(Move, Step{Occupant: fresh})))
	assert.Equal(t, 10.0, l.QueryCost(New(Move, Step{Occupant: old})))
	assert.Equal(t, -20.0, l.QueryCost(New(Remove, Step{Occupant: fresh})))
	assert.Equal(t, 10.0, l.QueryCost(New(Remove, Step{Occupant: old})))
	assert.Equal(t, 40.0, l.QueryCost(New(Place, Step{}, Step{})))
}

func TestMemoryLedger_MoveAndUndo(t *testing.T) {
	l := newLedger(100)
	p := world.NewPiece("dot", world.SingleHex, world.AxialCoord{}, 0)
	p.Existing = true
	require.NoError(t, l.Layout().Add(p))

	mv := New(Move, Step{Occupant: p, From: p.Position(), To: world.AxialCoord{Q: 2, R: 2}, Rotation: 3})
	require.NoError(t, l.Submit(mv))
	assert.Equal(t, world.AxialCoord{Q: 2, R: 2}, p.Position())
	assert.Equal(t, world.Rotation(3), p.Rotation())
	assert.Equal(t, 90.0, l.Budget())

	require.NoError(t, l.Undo())
	assert.Equal(t, world.AxialCoord{}, p.Position())
	assert.Equal(t, world.Rotation(0), p.Rotation())
}

func TestMemoryLedger_RemoveRefundsSessionPieces(t *testing.T) {
	l := newLedger(100)
	a := placeAt(0, 0)
	require.NoError(t, l.Submit(a))

	require.NoError(t, l.Submit(New(Remove, Step{Occupant: a.Steps[0].Occupant})))
	assert.Equal(t, 100.0, l.Budget())
	assert.Nil(t, l.Layout().At(world.AxialCoord{}))
}

func TestMemoryLedger_UndoBlockedWhileMovePending(t *testing.T) {
	l := newLedger(100)
	require.NoError(t, l.Submit(placeAt(0, 0)))

	var got []bool
	l.OnAvailabilityChanged = func(canUndo, canRedo bool) { got = append(got, canUndo) }
	l.TrackMoves(pending(true))
	l.NotifyMoveAvailabilityChanged()

	assert.False(t, l.CanUndo())
	assert.ErrorIs(t, l.Undo(), ErrBlocked)
	assert.Equal(t, []bool{false}, got)
}

func TestMemoryLedger_RejectsUnaffordable(t *testing.T) {
	l := newLedger(10)
	err := l.Submit(placeAt(0, 0))
	assert.ErrorIs(t, err, ErrBlocked)
	assert.Equal(t, 0, l.Layout().HexCount())
}
