package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrOutOfBounds is returned when a piece would cover a hex outside the layout radius.
	ErrOutOfBounds = errors.New("outside layout bounds")
	// ErrOccupied is returned when a piece would overlap another piece.
	ErrOccupied = errors.New("hex already occupied")
	// ErrUnknownPiece is returned for IDs not in the layout.
	ErrUnknownPiece = errors.New("unknown piece")
)

// Layout holds the pieces currently placed on the grid.
// Pieces keep their insertion order so rendering and island detection are stable.
type Layout struct {
	Radius int `json:"radius"` // <= 0 means unbounded

	pieces   []*Piece
	index    map[uuid.UUID]*Piece
	occupied map[AxialCoord]*Piece
}

// NewLayout creates an empty layout with the given radius.
// A layout of radius R accepts hexes where max(|q|, |r|, |s|) <= R.
func NewLayout(radius int) *Layout {
	return &Layout{
		Radius:   radius,
		index:    make(map[uuid.UUID]*Piece),
		occupied: make(map[AxialCoord]*Piece),
	}
}

// InBounds returns true if the coordinate is within the layout radius.
func (l *Layout) InBounds(coord AxialCoord) bool {
	if l.Radius <= 0 {
		return true
	}
	return maxAbs(coord.Q, coord.R, coord.S()) <= l.Radius
}

// Pieces returns the placed pieces in insertion order. The slice must not be modified.
func (l *Layout) Pieces() []*Piece {
	return l.pieces
}

// Occupants returns the placed pieces as Occupants.
func (l *Layout) Occupants() []Occupant {
	out := make([]Occupant, len(l.pieces))
	for i, p := range l.pieces {
		out[i] = p
	}
	return out
}

// Get returns the piece with the given ID, or nil.
func (l *Layout) Get(id uuid.UUID) *Piece {
	return l.index[id]
}

// At returns the piece covering coord, or nil if the hex is free.
func (l *Layout) At(coord AxialCoord) *Piece {
	return l.occupied[coord]
}

// CanPlace reports whether shape fits at pos/rot. Hexes covered by the piece
// with ID ignore count as free, so a piece can be checked against its own move target.
func (l *Layout) CanPlace(shape Shape, pos AxialCoord, rot Rotation, ignore uuid.UUID) bool {
	return l.check(shape.Cells(pos, rot), ignore) == nil
}

func (l *Layout) check(cells []AxialCoord, ignore uuid.UUID) error {
	for _, c := range cells {
		if !l.InBounds(c) {
			return fmt.Errorf("%s: %w", c, ErrOutOfBounds)
		}
		if p := l.occupied[c]; p != nil && p.PieceID != ignore {
			return fmt.Errorf("%s: %w", c, ErrOccupied)
		}
	}
	return nil
}

// Add places a piece on the layout.
func (l *Layout) Add(p *Piece) error {
	if _, ok := l.index[p.PieceID]; ok {
		return fmt.Errorf("piece %s already placed", p.PieceID)
	}
	if err := l.check(p.Cells(), uuid.Nil); err != nil {
		return err
	}
	l.pieces = append(l.pieces, p)
	l.index[p.PieceID] = p
	for _, c := range p.Cells() {
		l.occupied[c] = p
	}
	return nil
}

// Remove takes a piece off the layout and returns it.
func (l *Layout) Remove(id uuid.UUID) (*Piece, error) {
	p, ok := l.index[id]
	if !ok {
		return nil, fmt.Errorf("remove %s: %w", id, ErrUnknownPiece)
	}
	for _, c := range p.Cells() {
		delete(l.occupied, c)
	}
	delete(l.index, id)
	for i, q := range l.pieces {
		if q == p {
			l.pieces = append(l.pieces[:i], l.pieces[i+1:]...)
			break
		}
	}
	return p, nil
}

// Move relocates a piece. The piece keeps its old position if the target does not fit.
func (l *Layout) Move(id uuid.UUID, pos AxialCoord, rot Rotation) error {
	p, ok := l.index[id]
	if !ok {
		return fmt.Errorf("move %s: %w", id, ErrUnknownPiece)
	}
	rot = rot.Normalize()
	if err := l.check(p.Footprint.Cells(pos, rot), id); err != nil {
		return err
	}
	for _, c := range p.Cells() {
		delete(l.occupied, c)
	}
	p.Pos = pos
	p.Rot = rot
	for _, c := range p.Cells() {
		l.occupied[c] = p
	}
	return nil
}

// IslandHexes returns occupied hexes that are not connected, through
// neighbouring occupied hexes, to the first placed piece.
func (l *Layout) IslandHexes() []AxialCoord {
	if len(l.pieces) == 0 {
		return nil
	}

	visited := make(map[AxialCoord]bool, len(l.occupied))
	queue := append([]AxialCoord(nil), l.pieces[0].Cells()...)
	for _, c := range queue {
		visited[c] = true
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if visited[n] || l.occupied[n] == nil {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}

	var islands []AxialCoord
	for _, p := range l.pieces {
		for _, c := range p.Cells() {
			if !visited[c] {
				islands = append(islands, c)
			}
		}
	}
	return islands
}

// HexCount returns the number of occupied hexes.
func (l *Layout) HexCount() int {
	return len(l.occupied)
}

// String returns a summary of the layout.
func (l *Layout) String() string {
	return fmt.Sprintf("Layout(radius=%d, pieces=%d, hexes=%d)", l.Radius, len(l.pieces), l.HexCount())
}
