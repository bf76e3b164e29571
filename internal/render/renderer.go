package render

import (
	"log/slog"

	"github.com/talgya/hexedit/internal/symmetry"
	"github.com/talgya/hexedit/internal/world"
)

// OutcomeKind says what happened to one hover candidate.
type OutcomeKind uint8

const (
	Claimed   OutcomeKind = iota // A hover slot now shows the candidate
	Occupied                     // A placed hex already sits there; nothing drawn
	Conflict                     // Invalid hover over a placed hex; that hex is flagged
	Duplicate                    // Another candidate this frame already claimed the hex
	Overflow                     // Hover pool exhausted; candidate dropped
)

// Outcome is the result for one candidate. Slot indexes the hover arena for
// Claimed, the placed arena for Occupied and Conflict, and is -1 otherwise.
type Outcome struct {
	Coord world.AxialCoord
	Kind  OutcomeKind
	Slot  int
}

// Renderer owns the hover, model and placed slot arenas plus the materials
// temporarily overridden for conflict display. It is not safe for concurrent use.
type Renderer struct {
	pools       Pools
	initialized bool

	hover     []Slot
	usedHover int

	models     []Slot
	usedModels int

	placed []Slot

	// Placed slot index → material to restore at the next BeginFrame.
	overridden map[int]MaterialState

	overflowLogged bool
}

// NewRenderer returns a renderer with empty pools. Call Init before use.
func NewRenderer() *Renderer {
	return &Renderer{overridden: make(map[int]MaterialState)}
}

// Init allocates the hover and model pools. Initialising twice is a programming error.
func (r *Renderer) Init(p Pools) {
	if r.initialized || len(r.hover) > 0 || len(r.models) > 0 {
		panic("render: slot pools already initialized")
	}
	if p.MaxHoverSlots <= 0 || p.MaxSymmetry <= 0 {
		panic("render: slot pool sizes must be positive")
	}
	r.pools = p
	r.hover = make([]Slot, p.MaxHoverSlots)
	r.models = make([]Slot, p.MaxSymmetry)
	r.initialized = true
}

// BeginFrame resets the per-frame state: hover and model cursors go back to
// zero, their slots are hidden, and every conflict-flagged placed slot gets
// its remembered material back.
func (r *Renderer) BeginFrame() {
	for i := 0; i < r.usedHover; i++ {
		r.hover[i].Visible = false
	}
	for i := 0; i < r.usedModels; i++ {
		r.models[i].Visible = false
	}
	r.usedHover = 0
	r.usedModels = 0

	for idx, mat := range r.overridden {
		if idx < len(r.placed) {
			r.placed[idx].Material = mat
		}
	}
	clear(r.overridden)
	r.overflowLogged = false
}

// RenderCandidates evaluates the hexes base+offset for each offset, in order.
// Placed hexes win over hover previews, and the first candidate to claim a
// hex wins over later ones. When valid is false, hovering a placed hex flags
// it Conflicted until the next BeginFrame and the returned bool is true.
func (r *Renderer) RenderCandidates(base world.AxialCoord, offsets []world.AxialCoord, valid bool) ([]Outcome, bool) {
	outcomes := make([]Outcome, 0, len(offsets))
	conflict := false

	for _, off := range offsets {
		c := base.Add(off)
		pos := world.AxialToWorld(c)

		if idx := r.findPlaced(pos); idx >= 0 {
			kind := Occupied
			if !valid {
				r.markConflicted(idx)
				conflict = true
				kind = Conflict
			}
			outcomes = append(outcomes, Outcome{Coord: c, Kind: kind, Slot: idx})
			continue
		}

		if r.findHover(pos) >= 0 {
			outcomes = append(outcomes, Outcome{Coord: c, Kind: Duplicate, Slot: -1})
			continue
		}

		if r.usedHover >= len(r.hover) {
			r.logOverflow("hover", c)
			outcomes = append(outcomes, Outcome{Coord: c, Kind: Overflow, Slot: -1})
			continue
		}

		idx := r.usedHover
		r.usedHover++
		s := &r.hover[idx]
		s.Coord = c
		s.Position = pos
		s.Visible = true
		s.Material = Invalid
		if valid {
			s.Material = Valid
		}
		outcomes = append(outcomes, Outcome{Coord: c, Kind: Claimed, Slot: idx})
	}

	return outcomes, conflict
}

// RenderModel claims a preview model slot for one symmetry copy. It returns
// false once all MaxSymmetry slots are in use this frame.
func (r *Renderer) RenderModel(c symmetry.Candidate, valid bool) (int, bool) {
	if r.usedModels >= len(r.models) {
		r.logOverflow("model", c.Coord)
		return -1, false
	}
	idx := r.usedModels
	r.usedModels++
	s := &r.models[idx]
	s.Coord = c.Coord
	s.Position = world.AxialToWorld(c.Coord)
	s.Rotation = c.Rotation
	s.Visible = true
	s.Material = Invalid
	if valid {
		s.Material = Valid
	}
	return idx, true
}

func (r *Renderer) markConflicted(idx int) {
	if _, ok := r.overridden[idx]; !ok {
		r.overridden[idx] = r.placed[idx].Material
	}
	r.placed[idx].Material = Conflicted
}

func (r *Renderer) findPlaced(pos world.Vec) int {
	for i := range r.placed {
		if r.placed[i].Position.DistanceSquared(pos) < r.pools.PositionTolerance {
			return i
		}
	}
	return -1
}

func (r *Renderer) findHover(pos world.Vec) int {
	for i := 0; i < r.usedHover; i++ {
		if r.hover[i].Position.DistanceSquared(pos) < r.pools.PositionTolerance {
			return i
		}
	}
	return -1
}

func (r *Renderer) logOverflow(pool string, c world.AxialCoord) {
	if r.overflowLogged {
		return
	}
	r.overflowLogged = true
	slog.Warn("slot pool exhausted, dropping candidates",
		"pool", pool,
		"coord", c.String(),
		"hover_slots", len(r.hover),
		"model_slots", len(r.models),
	)
}

// HoverSlots returns the hover slots claimed this frame.
func (r *Renderer) HoverSlots() []Slot {
	return r.hover[:r.usedHover]
}

// ModelSlots returns the model slots claimed this frame.
func (r *Renderer) ModelSlots() []Slot {
	return r.models[:r.usedModels]
}

// PlacedSlots returns the placed-hex slots. The slice must not be modified.
func (r *Renderer) PlacedSlots() []Slot {
	return r.placed
}

// HoverCapacity returns the fixed hover pool size.
func (r *Renderer) HoverCapacity() int {
	return len(r.hover)
}
