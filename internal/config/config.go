// Package config loads the editor configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hexedit/internal/action"
	"github.com/talgya/hexedit/internal/render"
	"github.com/talgya/hexedit/internal/symmetry"
	"github.com/talgya/hexedit/internal/world"
)

// Config is the full editor configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`
	DBPath   string `yaml:"db_path"`

	GridRadius int           `yaml:"grid_radius"`
	Symmetry   symmetry.Mode `yaml:"symmetry"`

	Pools  Pools   `yaml:"pools"`
	Costs  Costs   `yaml:"costs"`
	Budget float64 `yaml:"budget"`

	Frames        uint64 `yaml:"frames"`
	FrameRateHz   int    `yaml:"frame_rate_hz"`
	AutosaveEvery uint64 `yaml:"autosave_every"`

	Preset Preset `yaml:"preset"`
}

type Pools struct {
	MaxHoverSlots     int     `yaml:"max_hover_slots"`
	MaxSymmetry       int     `yaml:"max_symmetry"`
	PositionTolerance float64 `yaml:"position_tolerance"`
}

type Costs struct {
	Place  float64 `yaml:"place"`
	Move   float64 `yaml:"move"`
	Remove float64 `yaml:"remove"`
}

type Preset struct {
	Seed      int64   `yaml:"seed"`
	Radius    int     `yaml:"radius"`
	Threshold float64 `yaml:"threshold"`
	Frequency float64 `yaml:"frequency"`
}

// Default returns the stock configuration.
func Default() Config {
	pools := render.DefaultPools()
	costs := action.DefaultCosts()
	gen := world.DefaultGenConfig()
	return Config{
		LogLevel:   "info",
		DBPath:     "data/hexedit.db",
		GridRadius: 8,
		Symmetry:   symmetry.None,
		Pools: Pools{
			MaxHoverSlots:     pools.MaxHoverSlots,
			MaxSymmetry:       pools.MaxSymmetry,
			PositionTolerance: pools.PositionTolerance,
		},
		Costs:         Costs{Place: costs.Place, Move: costs.Move, Remove: costs.Remove},
		Budget:        100,
		Frames:        600,
		FrameRateHz:   60,
		AutosaveEvery: 300,
		Preset: Preset{
			Seed:      42,
			Radius:    gen.Radius,
			Threshold: gen.Threshold,
			Frequency: gen.Frequency,
		},
	}
}

// Load reads path over the defaults and applies HEXEDIT_* environment
// overrides. An empty path uses defaults and the environment only.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return c, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	c.LogLevel = envOrDefault("HEXEDIT_LOG_LEVEL", c.LogLevel)
	c.DBPath = envOrDefault("HEXEDIT_DB_PATH", c.DBPath)

	if v := os.Getenv("HEXEDIT_SYMMETRY"); v != "" {
		m, err := symmetry.ParseMode(v)
		if err != nil {
			return fmt.Errorf("HEXEDIT_SYMMETRY: %w", err)
		}
		c.Symmetry = m
	}
	if v := os.Getenv("HEXEDIT_FRAMES"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("HEXEDIT_FRAMES: %w", err)
		}
		c.Frames = n
	}
	if v := os.Getenv("HEXEDIT_BUDGET"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("HEXEDIT_BUDGET: %w", err)
		}
		c.Budget = f
	}
	return nil
}

// Validate rejects configurations the editor cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Pools.MaxHoverSlots <= 0 {
		errs = append(errs, errors.New("pools.max_hover_slots must be positive"))
	}
	if c.Pools.MaxSymmetry < symmetry.SixWay.Copies() {
		errs = append(errs, fmt.Errorf("pools.max_symmetry must be at least %d", symmetry.SixWay.Copies()))
	}
	if c.Pools.PositionTolerance <= 0 {
		errs = append(errs, errors.New("pools.position_tolerance must be positive"))
	}
	if c.FrameRateHz < 0 {
		errs = append(errs, errors.New("frame_rate_hz must not be negative"))
	}
	if c.Preset.Radius > c.GridRadius && c.GridRadius > 0 {
		errs = append(errs, errors.New("preset.radius exceeds grid_radius"))
	}
	return errors.Join(errs...)
}

// RenderPools converts the pool settings for the renderer.
func (c Config) RenderPools() render.Pools {
	return render.Pools{
		MaxHoverSlots:     c.Pools.MaxHoverSlots,
		MaxSymmetry:       c.Pools.MaxSymmetry,
		PositionTolerance: c.Pools.PositionTolerance,
	}
}

// LedgerCosts converts the cost settings for the ledger.
func (c Config) LedgerCosts() action.Costs {
	return action.Costs{Place: c.Costs.Place, Move: c.Costs.Move, Remove: c.Costs.Remove}
}

// GenConfig converts the preset settings for layout generation.
func (c Config) GenConfig() world.GenConfig {
	g := world.DefaultGenConfig()
	g.Seed = c.Preset.Seed
	g.Radius = c.Preset.Radius
	g.Threshold = c.Preset.Threshold
	g.Frequency = c.Preset.Frequency
	return g
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
