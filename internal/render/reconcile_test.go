package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexedit/internal/world"
)

func dots(n int) []world.Occupant {
	out := make([]world.Occupant, n)
	for i := range out {
		out[i] = dot(i, 0, false)
	}
	return out
}

func TestReconcile_ShrinksPool(t *testing.T) {
	r := newRenderer(t, 4)

	first := r.ReconcilePlacedSet(dots(8), nil, false)
	assert.Equal(t, ReconcileStats{Created: 8}, first)

	second := r.ReconcilePlacedSet(dots(5), nil, false)
	assert.Equal(t, ReconcileStats{Recycled: 5, Removed: 3}, second)
	assert.Len(t, r.PlacedSlots(), 5)
}

func TestReconcile_GrowsPool(t *testing.T) {
	r := newRenderer(t, 4)
	r.ReconcilePlacedSet(dots(2), nil, false)

	stats := r.ReconcilePlacedSet(dots(5), nil, false)
	assert.Equal(t, ReconcileStats{Recycled: 2, Created: 3}, stats)
	assert.Equal(t, coord(4, 0), r.PlacedSlots()[4].Coord)
}

func TestReconcile_Materials(t *testing.T) {
	r := newRenderer(t, 4)
	occupants := []world.Occupant{dot(0, 0, false), dot(1, 0, true), dot(5, 5, false)}

	r.ReconcilePlacedSet(occupants, []world.AxialCoord{coord(5, 5)}, false)

	slots := r.PlacedSlots()
	require.Len(t, slots, 3)
	assert.Equal(t, Valid, slots[0].Material)
	assert.Equal(t, PreExisting, slots[1].Material)
	assert.Equal(t, Invalid, slots[2].Material)
	for _, s := range slots {
		assert.True(t, s.Visible)
	}
}

func TestReconcile_ForceHide(t *testing.T) {
	r := newRenderer(t, 4)
	r.ReconcilePlacedSet(dots(3), nil, true)
	for _, s := range r.PlacedSlots() {
		assert.False(t, s.Visible)
	}
}

func TestReconcile_MultiHexOccupant(t *testing.T) {
	r := newRenderer(t, 4)
	bar := world.NewPiece("bar", world.Shape{{Q: 0, R: 0}, {Q: 1, R: 0}}, coord(2, 2), 1)

	r.ReconcilePlacedSet([]world.Occupant{bar}, nil, false)

	slots := r.PlacedSlots()
	require.Len(t, slots, 2)
	assert.Equal(t, coord(2, 2), slots[0].Coord)
	assert.Equal(t, coord(2, 3), slots[1].Coord)
}

func TestReconcile_DropsStaleConflictRestore(t *testing.T) {
	r := newRenderer(t, 4)
	r.ReconcilePlacedSet([]world.Occupant{dot(0, 0, true)}, nil, false)

	r.BeginFrame()
	_, conflict := r.RenderCandidates(coord(0, 0), world.SingleHex, false)
	require.True(t, conflict)

	// The piece became an island mid-frame; the new material must survive the reset.
	r.ReconcilePlacedSet([]world.Occupant{dot(0, 0, true)}, []world.AxialCoord{coord(0, 0)}, false)
	r.BeginFrame()
	assert.Equal(t, Invalid, r.PlacedSlots()[0].Material)
}
