package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpticalFlyer/vengine/config"
	"github.com/OpticalFlyer/vengine/engine"
	"github.com/OpticalFlyer/vengine/input"
	"github.com/OpticalFlyer/vengine/render/rendertest"
	"github.com/OpticalFlyer/vengine/ui"
)

func newTestWorld(t *testing.T) (*engine.Context, *world, *rendertest.Backend) {
	t.Helper()
	s := config.Default()
	s.Resources.Root = t.TempDir()
	s.Resources.Watch = false
	backend := &rendertest.Backend{}
	ctx, err := engine.New(s, backend)
	require.NoError(t, err)
	t.Cleanup(func() { ctx.Close() })

	w := newWorld()
	ctx.SetScreen(w)
	require.NoError(t, ctx.Update(input.Snapshot{}, 0.5))
	return ctx, w, backend
}

func step(t *testing.T, ctx *engine.Context, s input.Snapshot, dt float32) {
	t.Helper()
	require.NoError(t, ctx.Update(s, dt))
}

func pressAt(x, y float32) input.Snapshot {
	s := input.Snapshot{Cursor: mgl32.Vec2{x, y}}
	s.Buttons[input.MouseLeft] = true
	s.ButtonsPressed[input.MouseLeft] = true
	return s
}

func releaseAt(x, y float32) input.Snapshot {
	s := input.Snapshot{Cursor: mgl32.Vec2{x, y}}
	s.ButtonsReleased[input.MouseLeft] = true
	return s
}

func TestWorld_KeyboardPan(t *testing.T) {
	ctx, w, _ := newTestWorld(t)

	step(t, ctx, input.Snapshot{Down: []input.Key{"D", "S"}}, 0.5)
	assert.Equal(t, mgl32.Vec2{-200, -200}, w.cam.Offset)
}

func TestWorld_DragPans(t *testing.T) {
	ctx, w, _ := newTestWorld(t)

	step(t, ctx, pressAt(400, 300), 0.016)
	hold := input.Snapshot{Cursor: mgl32.Vec2{450, 320}, CursorDelta: mgl32.Vec2{50, 20}}
	hold.Buttons[input.MouseLeft] = true
	step(t, ctx, hold, 0.016)
	step(t, ctx, releaseAt(450, 320), 0.016)
	step(t, ctx, input.Snapshot{Cursor: mgl32.Vec2{460, 330}, CursorDelta: mgl32.Vec2{10, 10}}, 0.016)

	assert.Equal(t, mgl32.Vec2{50, 20}, w.cam.Offset)
	assert.False(t, w.dragging)
}

func TestWorld_SelectDropsMarker(t *testing.T) {
	ctx, w, _ := newTestWorld(t)
	w.cam = camera{Offset: mgl32.Vec2{100, 0}, Scale: 2}

	step(t, ctx, pressAt(300, 200), 0.016)
	require.Len(t, w.markers, 1)
	assert.InDelta(t, 100, w.markers[0].X(), 1e-3)
	assert.InDelta(t, 100, w.markers[0].Y(), 1e-3)

	// Holding does not add more.
	hold := input.Snapshot{Cursor: mgl32.Vec2{300, 200}}
	hold.Buttons[input.MouseLeft] = true
	step(t, ctx, hold, 0.016)
	assert.Len(t, w.markers, 1)
}

func TestWorld_InterfaceBlocksPointer(t *testing.T) {
	ctx, w, _ := newTestWorld(t)
	blocker := ui.NewPane(ctx.Canvas.Root(), mgl32.Vec4{0, 0, 0, 1})
	blocker.Size = mgl32.Vec2{100, 100}

	step(t, ctx, input.Snapshot{Cursor: mgl32.Vec2{50, 50}}, 0.016)
	step(t, ctx, pressAt(50, 50), 0.016)
	assert.False(t, w.dragging)
	assert.Empty(t, w.markers)

	wheel := input.Snapshot{Cursor: mgl32.Vec2{50, 50}, Wheel: mgl32.Vec2{0, 1}}
	step(t, ctx, wheel, 0.5)
	assert.Equal(t, float32(1), w.cam.Scale)
}

func TestWorld_WheelZoomThrottled(t *testing.T) {
	ctx, w, _ := newTestWorld(t)
	wheel := input.Snapshot{Cursor: mgl32.Vec2{400, 300}, Wheel: mgl32.Vec2{0, 1}}

	step(t, ctx, wheel, 0.016)
	assert.InDelta(t, zoomStep, w.cam.Scale, 1e-6)
	step(t, ctx, wheel, 0.016)
	assert.InDelta(t, zoomStep, w.cam.Scale, 1e-6, "too soon")
	step(t, ctx, wheel, 0.2)
	assert.InDelta(t, zoomStep*zoomStep, w.cam.Scale, 1e-5)
}

func TestWorld_DoublePressResetsView(t *testing.T) {
	ctx, w, _ := newTestWorld(t)
	w.cam = camera{Offset: mgl32.Vec2{300, -120}, Scale: 3}

	step(t, ctx, input.Snapshot{Pressed: []input.Key{"Space"}}, 0.05)
	step(t, ctx, input.Snapshot{}, 0.05)
	step(t, ctx, input.Snapshot{Pressed: []input.Key{"Space"}}, 0.05)
	require.NotNil(t, w.reset)

	for i := 0; i < 20; i++ {
		step(t, ctx, input.Snapshot{}, 0.05)
	}
	assert.InDelta(t, 0, w.cam.Offset.X(), 1e-4)
	assert.InDelta(t, 0, w.cam.Offset.Y(), 1e-4)
	assert.InDelta(t, 1, w.cam.Scale, 1e-6)
}

func TestWorld_RenderDrawsVisibleTiles(t *testing.T) {
	ctx, w, backend := newTestWorld(t)
	w.markers = []mgl32.Vec2{{10, 10}}
	step(t, ctx, input.Snapshot{}, 0.016)
	backend.Reset()

	ctx.Render()
	assert.Equal(t, 13*10+1, backend.Quads())
}
