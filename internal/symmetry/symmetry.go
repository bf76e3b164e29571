// Package symmetry expands one edit at a hex into its mirrored and rotated copies.
package symmetry

import (
	"fmt"

	"github.com/talgya/hexedit/internal/world"
)

// Mode selects how an edit is replicated across the grid.
type Mode uint8

const (
	None    Mode = iota // Edit applies to the hovered hex only
	MirrorX             // Mirror across the vertical axis
	FourWay             // Mirror across both axes
	SixWay              // One copy per 60° turn around the origin
)

var modeNames = [...]string{"none", "mirror_x", "four_way", "six_way"}

// Cycle returns the mode after m: None → MirrorX → FourWay → SixWay → None.
func Cycle(m Mode) Mode {
	if m >= SixWay {
		return None
	}
	return m + 1
}

// Copies returns the largest number of candidates Expand can produce for m.
func (m Mode) Copies() int {
	switch m {
	case MirrorX:
		return 2
	case FourWay:
		return 4
	case SixWay:
		return 6
	}
	return 1
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if int(m) >= len(modeNames) {
		return nil, fmt.Errorf("unknown symmetry mode %d", m)
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return None, fmt.Errorf("unknown symmetry mode %q", s)
}

// Candidate is one position an expanded edit applies to.
type Candidate struct {
	Coord    world.AxialCoord
	Rotation world.Rotation
}

// Expand returns the candidates an edit at base with rotation rot applies to
// under mode. No two candidates share a coordinate; when two transforms land
// on the same hex the earlier one is kept, so the origin always yields one.
func Expand(base world.AxialCoord, rot world.Rotation, mode Mode) []Candidate {
	q, r := base.Q, base.R
	rot = rot.Normalize()

	raw := make([]Candidate, 0, mode.Copies())
	add := func(q, r int, rot world.Rotation) {
		raw = append(raw, Candidate{Coord: world.AxialCoord{Q: q, R: r}, Rotation: rot.Normalize()})
	}

	add(q, r, rot)

	switch mode {
	case MirrorX:
		add(-q, r+q, 6-rot)
	case FourWay:
		if q != 0 {
			add(-q, r+q, 6-rot)
			add(-q, -r, rot+3)
			add(q, -(r + q), 9-rot)
		} else {
			// Mirror pair collapses onto the base; only the half turn remains.
			add(-q, -r, rot+3)
		}
	case SixWay:
		add(-r, r+q, rot+1)
		add(-(r + q), q, rot+2)
		add(-q, -r, rot+3)
		add(r, -(r + q), rot+4)
		add(r+q, -q, rot+5)
	}

	return dedupe(raw)
}

func dedupe(in []Candidate) []Candidate {
	out := in[:0]
	for _, c := range in {
		dup := false
		for _, kept := range out {
			if kept.Coord == c.Coord {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}
