// Preset layout generation using layered simplex noise.
// Fills a hex disc with pre-existing pieces wherever the noise field peaks.
package world

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds preset generation parameters.
type GenConfig struct {
	Radius    int     // Hex radius of the generated disc
	Seed      int64   // Random seed (0 = random)
	Threshold float64 // Noise level (0.0–1.0) above which a piece is seeded
	Frequency float64 // Base noise frequency
	Kind      string  // Kind assigned to generated pieces
	Shape     Shape   // Footprint of generated pieces
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:    4,
		Seed:      0,
		Threshold: 0.55,
		Frequency: 0.35,
		Kind:      "preset",
		Shape:     SingleHex,
	}
}

// GenerateLayout creates a layout whose pieces are all marked pre-existing.
// Same config and seed always produce the same layout, IDs included.
func GenerateLayout(cfg GenConfig) *Layout {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	shape := cfg.Shape
	if len(shape) == 0 {
		shape = SingleHex
	}

	rng := rand.New(rand.NewSource(seed))
	noise := opensimplex.NewNormalized(seed)

	l := NewLayout(cfg.Radius)
	for q := -cfg.Radius; q <= cfg.Radius; q++ {
		for r := -cfg.Radius; r <= cfg.Radius; r++ {
			coord := AxialCoord{Q: q, R: r}
			if !l.InBounds(coord) {
				continue
			}

			pos := AxialToWorld(coord)
			if octaveNoise(noise, pos.X, pos.Z, 3, cfg.Frequency, 0.5) < cfg.Threshold {
				continue
			}

			rot := Rotation(rng.Intn(RotationSteps))
			if !l.CanPlace(shape, coord, rot, uuid.Nil) {
				continue
			}

			id, err := uuid.NewRandomFromReader(rng)
			if err != nil {
				id = uuid.New()
			}
			_ = l.Add(&Piece{
				PieceID:   id,
				Kind:      cfg.Kind,
				Pos:       coord,
				Rot:       rot,
				Footprint: shape,
				Existing:  true,
			})
		}
	}
	return l
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return math.Min(total/maxVal, 1.0)
}
