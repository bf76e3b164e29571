package symmetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexedit/internal/world"
)

func coord(q, r int) world.AxialCoord { return world.AxialCoord{Q: q, R: r} }

func TestCycleOrder(t *testing.T) {
	assert.Equal(t, MirrorX, Cycle(None))
	assert.Equal(t, FourWay, Cycle(MirrorX))
	assert.Equal(t, SixWay, Cycle(FourWay))
	assert.Equal(t, None, Cycle(SixWay))
}

func TestExpand_None(t *testing.T) {
	got := Expand(coord(3, -2), 4, None)
	assert.Equal(t, []Candidate{{Coord: coord(3, -2), Rotation: 4}}, got)
}

func TestExpand_MirrorX(t *testing.T) {
	got := Expand(coord(2, 1), 1, MirrorX)
	assert.Equal(t, []Candidate{
		{Coord: coord(2, 1), Rotation: 1},
		{Coord: coord(-2, 3), Rotation: 5},
	}, got)
}

func TestExpand_MirrorXRotationZeroWraps(t *testing.T) {
	got := Expand(coord(1, 0), 0, MirrorX)
	require.Len(t, got, 2)
	assert.Equal(t, world.Rotation(0), got[1].Rotation)
}

func TestExpand_MirrorXOnAxisIsSingle(t *testing.T) {
	for rot := world.Rotation(0); rot < world.RotationSteps; rot++ {
		assert.Len(t, Expand(coord(0, 0), rot, MirrorX), 1)
		assert.Len(t, Expand(coord(0, 3), rot, MirrorX), 1)
	}
}

func TestExpand_FourWayPinnedRotations(t *testing.T) {
	got := Expand(coord(1, -1), 0, FourWay)
	assert.Equal(t, []Candidate{
		{Coord: coord(1, -1), Rotation: 0},
		{Coord: coord(-1, 0), Rotation: 0},
		{Coord: coord(-1, 1), Rotation: 3},
		{Coord: coord(1, 0), Rotation: 3},
	}, got)
}

func TestExpand_FourWayRotationFormula(t *testing.T) {
	got := Expand(coord(2, 1), 2, FourWay)
	assert.Equal(t, []Candidate{
		{Coord: coord(2, 1), Rotation: 2},
		{Coord: coord(-2, 3), Rotation: 4},
		{Coord: coord(-2, -1), Rotation: 5},
		{Coord: coord(2, -3), Rotation: 1},
	}, got)
}

func TestExpand_FourWayDegenerateMirror(t *testing.T) {
	got := Expand(coord(0, 2), 1, FourWay)
	assert.Equal(t, []Candidate{
		{Coord: coord(0, 2), Rotation: 1},
		{Coord: coord(0, -2), Rotation: 4},
	}, got)

	assert.Len(t, Expand(coord(0, 0), 1, FourWay), 1)
}

func TestExpand_FourWayCoincidingTransformsAreDropped(t *testing.T) {
	// q == -2r puts the mirror on the half turn and the last copy on the base.
	got := Expand(coord(2, -1), 0, FourWay)
	assert.Equal(t, []Candidate{
		{Coord: coord(2, -1), Rotation: 0},
		{Coord: coord(-2, 1), Rotation: 0},
	}, got)
}

func TestExpand_SixWay(t *testing.T) {
	for q := -4; q <= 4; q++ {
		for r := -4; r <= 4; r++ {
			if q == 0 && r == 0 {
				continue
			}
			for rot := world.Rotation(0); rot < world.RotationSteps; rot++ {
				base := coord(q, r)
				got := Expand(base, rot, SixWay)
				require.Len(t, got, 6, "base %s", base)

				seen := make(map[world.AxialCoord]bool)
				for k, c := range got {
					assert.False(t, seen[c.Coord], "duplicate %s for base %s", c.Coord, base)
					seen[c.Coord] = true
					assert.Equal(t, base.RotateAroundOrigin(world.Rotation(k)), c.Coord)
					assert.Equal(t, (rot+world.Rotation(k)).Normalize(), c.Rotation)
				}
			}
		}
	}
}

func TestExpand_SixWayOrigin(t *testing.T) {
	got := Expand(coord(0, 0), 4, SixWay)
	assert.Equal(t, []Candidate{{Coord: coord(0, 0), Rotation: 4}}, got)
}

func TestExpand_NeverReturnsDuplicateCoords(t *testing.T) {
	for _, mode := range []Mode{None, MirrorX, FourWay, SixWay} {
		for q := -3; q <= 3; q++ {
			for r := -3; r <= 3; r++ {
				seen := make(map[world.AxialCoord]bool)
				for _, c := range Expand(coord(q, r), 0, mode) {
					assert.False(t, seen[c.Coord], "mode %s base (%d,%d)", mode, q, r)
					seen[c.Coord] = true
					assert.Less(t, int(c.Rotation), world.RotationSteps)
					assert.GreaterOrEqual(t, int(c.Rotation), 0)
				}
			}
		}
	}
}

func TestModeText(t *testing.T) {
	for _, m := range []Mode{None, MirrorX, FourWay, SixWay} {
		text, err := m.MarshalText()
		require.NoError(t, err)

		var back Mode
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, m, back)
	}

	_, err := ParseMode("eight_way")
	assert.Error(t, err)
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
