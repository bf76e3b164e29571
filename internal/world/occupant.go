package world

import "github.com/google/uuid"

// Occupant is anything that sits on the grid and covers one or more hexes.
// The editor only reads occupants; their lifecycle belongs to the domain.
type Occupant interface {
	ID() uuid.UUID
	Position() AxialCoord
	Rotation() Rotation
	// Offsets returns the covered hexes relative to Position, rotation applied.
	Offsets() []AxialCoord
	// PreExisting reports whether the occupant was placed before this editing session.
	PreExisting() bool
}

// Shape is the set of hexes a piece covers at rotation 0, relative to its base hex.
type Shape []AxialCoord

// SingleHex is the shape of a piece covering only its base position.
var SingleHex = Shape{{Q: 0, R: 0}}

// Rotated returns the shape turned by rot steps around its base hex.
func (s Shape) Rotated(rot Rotation) []AxialCoord {
	out := make([]AxialCoord, len(s))
	for i, h := range s {
		out[i] = h.RotateAroundOrigin(rot)
	}
	return out
}

// Cells returns the absolute hexes the shape covers at pos and rot.
func (s Shape) Cells(pos AxialCoord, rot Rotation) []AxialCoord {
	out := s.Rotated(rot)
	for i := range out {
		out[i] = out[i].Add(pos)
	}
	return out
}

// Piece is the concrete Occupant used by Layout.
type Piece struct {
	PieceID   uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Pos       AxialCoord `json:"pos"`
	Rot       Rotation   `json:"rot"`
	Footprint Shape      `json:"shape"`

	// Existing is set for pieces loaded or generated before the session started.
	Existing bool `json:"existing"`
}

// NewPiece creates a piece with a fresh ID.
func NewPiece(kind string, shape Shape, pos AxialCoord, rot Rotation) *Piece {
	return &Piece{
		PieceID:   uuid.New(),
		Kind:      kind,
		Pos:       pos,
		Rot:       rot.Normalize(),
		Footprint: shape,
	}
}

func (p *Piece) ID() uuid.UUID         { return p.PieceID }
func (p *Piece) Position() AxialCoord  { return p.Pos }
func (p *Piece) Rotation() Rotation    { return p.Rot }
func (p *Piece) Offsets() []AxialCoord { return p.Footprint.Rotated(p.Rot) }
func (p *Piece) PreExisting() bool     { return p.Existing }

// Cells returns the absolute hexes the piece currently covers.
func (p *Piece) Cells() []AxialCoord {
	return p.Footprint.Cells(p.Pos, p.Rot)
}
