package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexedit/internal/action"
	"github.com/talgya/hexedit/internal/editor"
	"github.com/talgya/hexedit/internal/render"
	"github.com/talgya/hexedit/internal/symmetry"
	"github.com/talgya/hexedit/internal/world"
)

func TestCursorRing(t *testing.T) {
	ring := cursorRing(2)
	require.Len(t, ring, 12)
	seen := make(map[world.AxialCoord]bool)
	for _, c := range ring {
		assert.Equal(t, 2, world.Distance(world.AxialCoord{}, c))
		assert.False(t, seen[c])
		seen[c] = true
	}
	assert.Equal(t, []world.AxialCoord{{}}, cursorRing(0))
}

func TestScript_RunsInOrder(t *testing.T) {
	layout := world.NewLayout(8)
	require.NoError(t, layout.Add(&world.Piece{
		PieceID:   [16]byte{1},
		Kind:      "preset",
		Footprint: world.SingleHex,
		Existing:  true,
	}))
	ledger := action.NewMemoryLedger(layout, action.DefaultCosts(), 1000)
	ed := editor.New(editor.LayoutDomain{Layout: layout}, ledger, editor.Options{
		Pools: render.DefaultPools(),
		Kind:  "cell",
	})
	ledger.TrackMoves(ed.Moves())

	s := newScript(ed, ledger)
	for f := uint64(1); f <= 130; f++ {
		s.run(f)
	}

	assert.Equal(t, len(s.intents), s.next)
	assert.Equal(t, 1, s.blocked, "placing during a move is blocked")
	assert.Equal(t, symmetry.SixWay, ed.Mode())
	assert.False(t, ed.Moves().Pending())
	assert.Equal(t, world.AxialCoord{Q: 0, R: -4}, layout.Get([16]byte{1}).Position())
}
