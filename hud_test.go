package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpticalFlyer/vengine/input"
	"github.com/OpticalFlyer/vengine/tween"
	"github.com/OpticalFlyer/vengine/ui"
)

func center(e *ui.Element) mgl32.Vec2 {
	b := e.Bounds()
	return mgl32.Vec2{b.X + b.Width/2, b.Y + b.Height/2}
}

func TestHUD_Labels(t *testing.T) {
	ctx, w, _ := newTestWorld(t)
	h := buildHUD(ctx, w, nil)
	w.cam.Scale = 2

	// The interface updates before the screen, so the tile range shows up
	// one frame later.
	step(t, ctx, input.Snapshot{Cursor: mgl32.Vec2{700, 500}}, 0.016)
	step(t, ctx, input.Snapshot{Cursor: mgl32.Vec2{700, 500}}, 0.016)
	assert.Equal(t, "Zoom: x2.00", h.zoom.Content.(*ui.Label).Text)
	assert.Equal(t, "Tiles: 0,0 - 6,4", h.tiles.Content.(*ui.Label).Text)
}

func TestHUD_Buttons(t *testing.T) {
	ctx, w, _ := newTestWorld(t)
	h := buildHUD(ctx, w, nil)
	step(t, ctx, input.Snapshot{Cursor: mgl32.Vec2{700, 500}}, 0.016)

	children := h.panel.Body.Children()
	require.Len(t, children, 7)
	pulse, quit := children[4], children[6]

	click := func(e *ui.Element) {
		p := center(e)
		s := pressAt(p.X(), p.Y())
		step(t, ctx, s, 0.016)
		step(t, ctx, releaseAt(p.X(), p.Y()), 0.016)
	}

	click(pulse)
	assert.Equal(t, tween.Running, h.pulse.State())
	step(t, ctx, input.Snapshot{}, 0.4)
	assert.NotEqual(t, swatchFrom, h.swatch.Content.(*ui.Pane).Color)

	click(pulse)
	assert.Equal(t, tween.Stopped, h.pulse.State())
	assert.Equal(t, swatchFrom, h.swatch.Content.(*ui.Pane).Color)

	assert.False(t, ctx.Quitting())
	click(quit)
	assert.True(t, ctx.Quitting())
}
