// Package world provides the hex grid geometry and the placed-piece layout.
// Uses axial coordinates (q, r) on a flat-topped hex grid.
package world

import (
	"fmt"
	"math"
)

// HexSize is the distance from a hex centre to any of its corners, in world units.
const HexSize = 0.75

var sqrt3 = math.Sqrt(3.0)

// AxialCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type AxialCoord struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// S returns the implicit third cube coordinate.
func (h AxialCoord) S() int {
	return -h.Q - h.R
}

// Add returns the component-wise sum of two coordinates.
func (h AxialCoord) Add(o AxialCoord) AxialCoord {
	return AxialCoord{Q: h.Q + o.Q, R: h.R + o.R}
}

// Sub returns h - o.
func (h AxialCoord) Sub(o AxialCoord) AxialCoord {
	return AxialCoord{Q: h.Q - o.Q, R: h.R - o.R}
}

// RotateAroundOrigin turns the coordinate by steps 60° increments around (0, 0).
// One step maps (q, r) to (-r, r+q).
func (h AxialCoord) RotateAroundOrigin(steps Rotation) AxialCoord {
	c := h
	for i := 0; i < int(steps.Normalize()); i++ {
		c = AxialCoord{Q: -c.R, R: c.R + c.Q}
	}
	return c
}

func (h AxialCoord) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates.
var HexNeighborDirections = [6]AxialCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h AxialCoord) Neighbors() [6]AxialCoord {
	var result [6]AxialCoord
	for i, dir := range HexNeighborDirections {
		result[i] = h.Add(dir)
	}
	return result
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b AxialCoord) int {
	d := a.Sub(b)
	return maxAbs(d.Q, d.R, d.S())
}

// Vec is a world-space position on the editing plane. Y is up and unused by the grid.
type Vec struct {
	X float64
	Z float64
}

// DistanceSquared returns the squared planar distance between two positions.
func (v Vec) DistanceSquared(o Vec) float64 {
	dx := v.X - o.X
	dz := v.Z - o.Z
	return dx*dx + dz*dz
}

// AxialToWorld converts a hex coordinate to the world position of its centre.
func AxialToWorld(h AxialCoord) Vec {
	q := float64(h.Q)
	r := float64(h.R)
	return Vec{
		X: q * HexSize * 3.0 / 2.0,
		Z: r*HexSize*sqrt3 + q*HexSize*sqrt3/2.0,
	}
}

// WorldToAxial returns the hex containing the given world position.
func WorldToAxial(v Vec) AxialCoord {
	q := (2.0 / 3.0 * v.X) / HexSize
	r := (-1.0/3.0*v.X + sqrt3/3.0*v.Z) / HexSize
	return cubeRound(q, r, -q-r)
}

// cubeRound snaps fractional cube coordinates to the nearest hex, fixing up
// the component with the largest rounding error so q+r+s stays zero.
func cubeRound(q, r, s float64) AxialCoord {
	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)

	dq := math.Abs(rq - q)
	dr := math.Abs(rr - r)
	ds := math.Abs(rs - s)

	if dq > dr && dq > ds {
		rq = -rr - rs
	} else if dr > ds {
		rr = -rq - rs
	}

	return AxialCoord{Q: int(rq), R: int(rr)}
}

func maxAbs(vals ...int) int {
	m := 0
	for _, v := range vals {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}
