package editor

import (
	"github.com/google/uuid"

	"github.com/talgya/hexedit/internal/world"
)

// Domain supplies what the editor needs to know about the pieces being edited.
type Domain interface {
	// CanPlace reports whether a new piece of shape fits at coord/rot.
	CanPlace(shape world.Shape, coord world.AxialCoord, rot world.Rotation) bool
	IsMoveTargetValid(o world.Occupant, to world.AxialCoord, rot world.Rotation) bool

	Occupants() []world.Occupant
	OccupantAt(coord world.AxialCoord) world.Occupant
	Lookup(id uuid.UUID) world.Occupant
	IslandHexes() []world.AxialCoord

	// NewOccupant builds, but does not place, the piece a place action adds.
	NewOccupant(kind string, shape world.Shape, coord world.AxialCoord, rot world.Rotation) world.Occupant
}

// LayoutDomain adapts a world.Layout to Domain.
type LayoutDomain struct {
	Layout *world.Layout
}

func (d LayoutDomain) CanPlace(shape world.Shape, coord world.AxialCoord, rot world.Rotation) bool {
	return d.Layout.CanPlace(shape, coord, rot, uuid.Nil)
}

func (d LayoutDomain) IsMoveTargetValid(o world.Occupant, to world.AxialCoord, rot world.Rotation) bool {
	p := d.Layout.Get(o.ID())
	if p == nil {
		return false
	}
	if to == p.Pos && rot.Normalize() == p.Rot {
		return false
	}
	return d.Layout.CanPlace(p.Footprint, to, rot, p.PieceID)
}

func (d LayoutDomain) Occupants() []world.Occupant {
	return d.Layout.Occupants()
}

func (d LayoutDomain) OccupantAt(coord world.AxialCoord) world.Occupant {
	if p := d.Layout.At(coord); p != nil {
		return p
	}
	return nil
}

func (d LayoutDomain) Lookup(id uuid.UUID) world.Occupant {
	if p := d.Layout.Get(id); p != nil {
		return p
	}
	return nil
}

func (d LayoutDomain) IslandHexes() []world.AxialCoord {
	return d.Layout.IslandHexes()
}

func (d LayoutDomain) NewOccupant(kind string, shape world.Shape, coord world.AxialCoord, rot world.Rotation) world.Occupant {
	return world.NewPiece(kind, shape, coord, rot)
}
