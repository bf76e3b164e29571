// Package engine provides the frame loop that drives the editor.
package engine

import (
	"context"
	"log/slog"
	"time"
)

// DefaultFrameInterval targets 60 frames per second.
const DefaultFrameInterval = time.Second / 60

// Engine drives the editor forward one frame at a time.
type Engine struct {
	Frame     uint64        // Current frame counter (monotonic, never resets)
	Interval  time.Duration // Target frame interval; 0 runs frames back to back
	MaxFrames uint64        // Stop after this many frames; 0 runs until cancelled

	// Callbacks for each frame layer, populated during setup.
	OnFrame    func(frame uint64) // Every frame
	OnAutosave func(frame uint64) // Every AutosaveEvery frames

	AutosaveEvery uint64
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Interval: DefaultFrameInterval,
	}
}

// Run steps frames until ctx is cancelled or MaxFrames is reached.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("frame loop started", "frame", e.Frame, "interval", e.Interval, "max_frames", e.MaxFrames)

	for {
		if e.MaxFrames > 0 && e.Frame >= e.MaxFrames {
			slog.Info("frame loop finished", "frame", e.Frame)
			return nil
		}
		if err := ctx.Err(); err != nil {
			slog.Info("frame loop stopped", "frame", e.Frame)
			return err
		}

		start := time.Now()
		e.Step()

		// Sleep for the remainder of the frame interval.
		if e.Interval <= 0 {
			continue
		}
		if wait := e.Interval - time.Since(start); wait > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(wait):
			}
		}
	}
}

// Step advances the editor by one frame.
func (e *Engine) Step() {
	e.Frame++

	if e.OnFrame != nil {
		e.OnFrame(e.Frame)
	}

	if e.AutosaveEvery > 0 && e.Frame%e.AutosaveEvery == 0 && e.OnAutosave != nil {
		e.OnAutosave(e.Frame)
	}
}
