// Package render decides what the editor shows for hover previews and placed
// hexes. It works on index-addressed slot arenas that are allocated once and
// recycled every frame; drawing the slots is left to the host.
package render

import (
	"fmt"

	"github.com/talgya/hexedit/internal/world"
)

// MaterialState is the visual state of a slot.
type MaterialState uint8

const (
	Valid       MaterialState = iota // Placeable / placed this session
	Invalid                          // Blocked placement or island hex
	PreExisting                      // Placed before the session started
	Conflicted                       // Temporarily flagged under an invalid hover
)

func (m MaterialState) String() string {
	switch m {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case PreExisting:
		return "pre_existing"
	case Conflicted:
		return "conflicted"
	}
	return fmt.Sprintf("MaterialState(%d)", m)
}

// Slot is one renderable hex handle.
type Slot struct {
	Coord    world.AxialCoord
	Position world.Vec
	Rotation world.Rotation // used by model slots only
	Visible  bool
	Material MaterialState
}

// Pools sizes the fixed slot arenas.
type Pools struct {
	MaxHoverSlots int
	MaxSymmetry   int // preview model slots, one per symmetry copy

	// PositionTolerance is the squared world distance under which two hex
	// centres count as the same hex.
	PositionTolerance float64
}

// DefaultPools returns pool sizes that cover a six-way edit of a mid-sized piece.
func DefaultPools() Pools {
	return Pools{
		MaxHoverSlots:     64,
		MaxSymmetry:       6,
		PositionTolerance: 0.001,
	}
}
