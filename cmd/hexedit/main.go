// Command hexedit runs a headless hex editing session: it loads or seeds a
// layout, replays a scripted set of edits frame by frame and saves the result.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexedit/internal/action"
	"github.com/talgya/hexedit/internal/config"
	"github.com/talgya/hexedit/internal/editor"
	"github.com/talgya/hexedit/internal/engine"
	"github.com/talgya/hexedit/internal/persistence"
	"github.com/talgya/hexedit/internal/world"
)

func main() {
	cfgPath := flag.String("config", envOrDefault("HEXEDIT_CONFIG", ""), "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	slog.Info("hexedit: headless hex editor session",
		"config", *cfgPath,
		"symmetry", cfg.Symmetry.String(),
		"grid_radius", cfg.GridRadius,
	)

	// ── Database ──────────────────────────────────────────────────────
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		slog.Error("failed to create data dir", "error", err)
		os.Exit(1)
	}
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Layout (saved pieces, or a generated preset) ──────────────────
	var layout *world.Layout
	if db.HasPieces() {
		layout, err = db.LoadLayout(cfg.GridRadius)
		if err != nil {
			slog.Error("failed to load layout", "error", err)
			os.Exit(1)
		}
		slog.Info("layout restored", "layout", layout.String())
	} else {
		layout = world.GenerateLayout(cfg.GenConfig())
		layout.Radius = cfg.GridRadius
		slog.Info("preset layout generated", "layout", layout.String(), "seed", cfg.Preset.Seed)
	}

	// ── Editor ────────────────────────────────────────────────────────
	ledger := action.NewMemoryLedger(layout, cfg.LedgerCosts(), cfg.Budget)
	ed := editor.New(editor.LayoutDomain{Layout: layout}, ledger, editor.Options{
		Pools:    cfg.RenderPools(),
		Symmetry: cfg.Symmetry,
		Kind:     "cell",
		Shape:    world.SingleHex,
	})
	ledger.TrackMoves(ed.Moves())
	ledger.OnAvailabilityChanged = func(canUndo, canRedo bool) {
		slog.Debug("undo/redo availability", "undo", canUndo, "redo", canRedo)
	}

	if s, ok, err := db.LoadSession(); err != nil {
		slog.Warn("ignoring unreadable session", "error", err)
	} else if ok {
		if err := ed.Restore(s); err != nil {
			slog.Warn("session not restored", "error", err)
		}
	}

	save := func() {
		if err := db.SaveEditorState(layout, ed.Snapshot()); err != nil {
			slog.Error("save failed", "error", err)
		}
	}

	// ── Frame loop ────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.MaxFrames = cfg.Frames
	eng.AutosaveEvery = cfg.AutosaveEvery
	eng.Interval = 0
	if cfg.FrameRateHz > 0 {
		eng.Interval = time.Second / time.Duration(cfg.FrameRateHz)
	}

	script := newScript(ed, ledger)
	path := cursorRing(2)
	conflictFrames := 0

	eng.OnFrame = func(frame uint64) {
		script.run(frame)

		cursor := path[int(frame)%len(path)]
		if res := ed.Frame(&cursor); res.Conflict {
			conflictFrames++
		}
	}
	eng.OnAutosave = func(frame uint64) {
		slog.Info("autosave", "frame", frame)
		save()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("frame loop failed", "error", err)
	}

	save()
	slog.Info("session finished",
		"frames", humanize.Comma(int64(eng.Frame)),
		"pieces", len(layout.Pieces()),
		"budget", humanize.Commaf(ledger.Budget()),
		"conflict_frames", conflictFrames,
		"blocked_intents", script.blocked,
	)
}

// cursorRing returns the hexes at distance radius from the origin, walking
// the ring once.
func cursorRing(radius int) []world.AxialCoord {
	if radius <= 0 {
		return []world.AxialCoord{{}}
	}
	dirs := world.HexNeighborDirections
	c := world.AxialCoord{Q: dirs[4].Q * radius, R: dirs[4].R * radius}

	var ring []world.AxialCoord
	for i := 0; i < 6; i++ {
		for j := 0; j < radius; j++ {
			ring = append(ring, c)
			c = c.Add(dirs[i])
		}
	}
	return ring
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
