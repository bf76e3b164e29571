package render

import (
	"log/slog"

	"github.com/talgya/hexedit/internal/world"
)

// ReconcileStats counts what ReconcilePlacedSet did to the placed pool.
type ReconcileStats struct {
	Recycled int
	Created  int
	Removed  int
}

// ReconcilePlacedSet brings the placed pool in line with the occupants'
// covered hexes: existing slots are reused in order, missing ones created,
// and leftovers removed. Island hexes are drawn Invalid, pre-existing
// occupants PreExisting, everything else Valid.
func (r *Renderer) ReconcilePlacedSet(occupants []world.Occupant, islands []world.AxialCoord, forceHide bool) ReconcileStats {
	islandSet := make(map[world.AxialCoord]struct{}, len(islands))
	for _, c := range islands {
		islandSet[c] = struct{}{}
	}

	var stats ReconcileStats
	next := 0
	for _, o := range occupants {
		base := o.Position()
		for _, off := range o.Offsets() {
			c := base.Add(off)

			if next < len(r.placed) {
				stats.Recycled++
			} else {
				r.placed = append(r.placed, Slot{})
				stats.Created++
			}

			// The slot gets an authoritative material; a pending conflict restore would clobber it.
			delete(r.overridden, next)

			s := &r.placed[next]
			s.Coord = c
			s.Position = world.AxialToWorld(c)
			s.Visible = !forceHide
			switch {
			case hasCoord(islandSet, c):
				s.Material = Invalid
			case o.PreExisting():
				s.Material = PreExisting
			default:
				s.Material = Valid
			}
			next++
		}
	}

	stats.Removed = len(r.placed) - next
	for i := next; i < len(r.placed); i++ {
		delete(r.overridden, i)
	}
	clear(r.placed[next:])
	r.placed = r.placed[:next]

	slog.Debug("placed set reconciled",
		"hexes", next,
		"recycled", stats.Recycled,
		"created", stats.Created,
		"removed", stats.Removed,
	)
	return stats
}

func hasCoord(set map[world.AxialCoord]struct{}, c world.AxialCoord) bool {
	_, ok := set[c]
	return ok
}
