package move

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexedit/internal/action"
	"github.com/talgya/hexedit/internal/world"
)

type counter struct{ n int }

func (c *counter) NotifyMoveAvailabilityChanged() { c.n++ }

type onlyEven struct{}

func (onlyEven) IsMoveTargetValid(_ world.Occupant, to world.AxialCoord, _ world.Rotation) bool {
	return to.Q%2 == 0
}

func piece() *world.Piece {
	return world.NewPiece("dot", world.SingleHex, world.AxialCoord{Q: 1, R: 1}, 2)
}

func TestStart(t *testing.T) {
	n := &counter{}
	m := NewMachine(onlyEven{}, n)
	p := piece()

	require.NoError(t, m.Start(p))
	assert.Equal(t, MovePending, m.State())
	assert.Same(t, p, m.Moving())
	assert.Equal(t, 1, n.n)
}

func TestStart_WhilePendingIsBlocked(t *testing.T) {
	n := &counter{}
	m := NewMachine(onlyEven{}, n)
	first, second := piece(), piece()
	require.NoError(t, m.Start(first))

	err := m.Start(second)
	require.ErrorIs(t, err, action.ErrBlocked)
	reason, _ := action.ReasonOf(err)
	assert.Equal(t, action.MovePending, reason)
	assert.Same(t, first, m.Moving(), "state unchanged")
	assert.Equal(t, 1, n.n)
}

func TestMustStart_WhilePendingPanics(t *testing.T) {
	m := NewMachine(nil, nil)
	m.MustStart(piece())
	assert.Panics(t, func() { m.MustStart(piece()) })
}

func TestValidate(t *testing.T) {
	m := NewMachine(onlyEven{}, nil)
	p := piece()
	require.NoError(t, m.Start(p))

	_, err := m.Validate(world.AxialCoord{Q: 3}, 0)
	reason, ok := action.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, action.InvalidTarget, reason)
	assert.True(t, m.Pending(), "invalid target keeps the move pending")

	req, err := m.Validate(world.AxialCoord{Q: 2}, 7)
	require.NoError(t, err)
	assert.Equal(t, Request{
		Occupant:     p,
		From:         world.AxialCoord{Q: 1, R: 1},
		FromRotation: 2,
		To:           world.AxialCoord{Q: 2},
		Rotation:     1,
	}, req)
	assert.Equal(t, world.AxialCoord{Q: 1, R: 1}, p.Position(), "piece not detached before commit")
	assert.True(t, m.Pending())

	a := req.Action()
	assert.Equal(t, action.Move, a.Kind)
	require.Len(t, a.Steps, 1)
	assert.Equal(t, world.AxialCoord{Q: 2}, a.Steps[0].To)
}

func TestValidate_Idle(t *testing.T) {
	_, err := NewMachine(nil, nil).Validate(world.AxialCoord{}, 0)
	reason, _ := action.ReasonOf(err)
	assert.Equal(t, action.NoMovePending, reason)
}

func TestComplete(t *testing.T) {
	n := &counter{}
	m := NewMachine(nil, n)
	require.NoError(t, m.Start(piece()))
	m.Complete()
	assert.Equal(t, Idle, m.State())
	assert.Equal(t, 2, n.n)

	m.Complete()
	assert.Equal(t, 2, n.n)
}

func TestCancel_NotifiesOncePerCancel(t *testing.T) {
	n := &counter{}
	m := NewMachine(nil, n)

	require.NoError(t, m.Start(piece()))
	before := n.n
	assert.True(t, m.Cancel())
	assert.Equal(t, Idle, m.State())
	assert.Equal(t, before+1, n.n)

	assert.False(t, m.Cancel())
	assert.Equal(t, before+1, n.n)

	require.NoError(t, m.Start(piece()), "a new move can start after cancel")
}
