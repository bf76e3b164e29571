package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_Layers(t *testing.T) {
	e := NewEngine()
	e.AutosaveEvery = 3

	var frames, saves []uint64
	e.OnFrame = func(f uint64) { frames = append(frames, f) }
	e.OnAutosave = func(f uint64) { saves = append(saves, f) }

	for i := 0; i < 7; i++ {
		e.Step()
	}
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7}, frames)
	assert.Equal(t, []uint64{3, 6}, saves)
}

func TestRun_StopsAtMaxFrames(t *testing.T) {
	e := NewEngine()
	e.Interval = 0
	e.MaxFrames = 5

	n := 0
	e.OnFrame = func(uint64) { n++ }
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 5, n)
	assert.Equal(t, uint64(5), e.Frame)
}

func TestRun_Cancelled(t *testing.T) {
	e := NewEngine()
	e.Interval = 0

	ctx, cancel := context.WithCancel(context.Background())
	e.OnFrame = func(f uint64) {
		if f == 3 {
			cancel()
		}
	}
	err := e.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(3), e.Frame)
}
