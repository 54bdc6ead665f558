package main

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpticalFlyer/vengine/engine"
	"github.com/OpticalFlyer/vengine/input"
	"github.com/OpticalFlyer/vengine/logx"
	"github.com/OpticalFlyer/vengine/proj"
	"github.com/OpticalFlyer/vengine/render"
	"github.com/OpticalFlyer/vengine/tween"
)

const (
	tileSize     = 64
	worldTiles   = 32
	zoomInterval = 0.1 // seconds between wheel zoom steps
	maxMarkers   = 64
	spritePath   = "crate.png"
	resetTime    = 0.6
)

var (
	tileDark   = mgl32.Vec4{0.18, 0.2, 0.24, 1}
	tileLight  = mgl32.Vec4{0.22, 0.25, 0.3, 1}
	markerTint = mgl32.Vec4{0.9, 0.2, 0.2, 1}
)

// world is a pannable, zoomable checkerboard. Selecting with the mouse
// drops markers; double pressing the dash key animates the camera home.
type world struct {
	cam   camera
	batch *render.Batch
	tiles tileRange

	hasSprite bool
	markers   []mgl32.Vec2

	dragging bool
	lastZoom float64
	selected bool
	reset    *tween.Tween

	move *input.Axis2DBinding
	zoom *input.Axis1DBinding
}

var _ engine.Screen = (*world)(nil)

func newWorld() *world {
	return &world{cam: newCamera()}
}

// lookup returns the binding called name, or nil when the settings do not
// define it.
func lookup[T input.Binding](ctx *engine.Context, name string) T {
	b, err := input.Lookup[T](ctx.Input, name)
	if err != nil {
		logx.Logger().Warn("world: binding unavailable", "name", name, "err", err)
	}
	return b
}

func (w *world) Enter(ctx *engine.Context) error {
	batch, err := render.NewBatch(ctx.Backend, ctx.Settings.UI.BatchQuads, ctx.Settings.UI.TextureSlots)
	if err != nil {
		return err
	}
	w.batch = batch

	if _, err := ctx.LoadTexture(spritePath); err != nil {
		logx.Logger().Warn("world: no sprite", "path", spritePath, "err", err)
	} else {
		w.hasSprite = true
	}

	w.move = lookup[*input.Axis2DBinding](ctx, "move")
	w.zoom = lookup[*input.Axis1DBinding](ctx, "zoom")
	if sel := lookup[*input.MouseActionBinding](ctx, "select"); sel != nil {
		sel.OnChange(func(_, down bool) {
			if down {
				w.selected = true
			}
		})
	}
	if dash := lookup[*input.ActionBinding](ctx, "dash"); dash != nil {
		dash.OnChange(func(_, fired bool) {
			if fired {
				w.resetView(ctx)
			}
		})
	}
	return nil
}

// resetView animates the camera back to the origin at scale 1.
func (w *world) resetView(ctx *engine.Context) {
	if w.reset != nil {
		w.reset.Stop()
	}
	from := w.cam
	w.reset = tween.New(resetTime, tween.OutCubic, func(v float32) {
		w.cam.Offset = from.Offset.Mul(1 - v)
		w.cam.Scale = tween.Lerp(from.Scale, 1, v)
	})
	ctx.Tweens.Play(w.reset)
}

func (w *world) Update(ctx *engine.Context, dt float32) error {
	snap := ctx.Input.Snapshot()
	screen := ctx.Canvas.Size
	now := ctx.Time.Elapsed

	if w.move != nil {
		if v := w.move.Get(); v != (mgl32.Vec2{}) {
			w.cam.PanBy(v.Mul(-panSpeed * dt))
		}
	}
	if w.zoom != nil && w.zoom.Get() != 0 && now-w.lastZoom > zoomInterval {
		w.cam.ZoomAtPoint(w.zoom.Get() > 0, screen.Mul(0.5), screen)
		w.lastZoom = now
	}

	// Pointer input belongs to the interface while it is in use.
	if !ctx.Canvas.IsInteracting() {
		if snap.Wheel.Y() != 0 && now-w.lastZoom > zoomInterval {
			w.cam.ZoomAtPoint(snap.Wheel.Y() > 0, snap.Cursor, screen)
			w.lastZoom = now
		}
		if snap.ButtonsPressed[input.MouseLeft] {
			w.dragging = true
		}
		if w.selected {
			w.addMarker(w.cam.ScreenToWorld(snap.Cursor, screen))
		}
	}
	w.selected = false

	if w.dragging {
		if snap.ButtonDown(input.MouseLeft) {
			w.cam.PanBy(snap.CursorDelta)
		} else {
			w.dragging = false
		}
	}

	w.tiles = w.cam.visibleTiles(screen, tileSize, worldTiles)
	return nil
}

func (w *world) addMarker(p mgl32.Vec2) {
	if len(w.markers) == maxMarkers {
		w.markers = append(w.markers[:0], w.markers[1:]...)
	}
	w.markers = append(w.markers, p)
}

func (w *world) Render(ctx *engine.Context) {
	screen := ctx.Canvas.Size
	w.batch.Begin(render.Camera{
		Projection: proj.Screen(screen.X(), screen.Y()),
		View:       w.cam.View(),
	})

	if !w.tiles.Empty() {
		for y := w.tiles.MinY; y <= w.tiles.MaxY; y++ {
			for x := w.tiles.MinX; x <= w.tiles.MaxX; x++ {
				c := tileDark
				if (x+y)%2 == 0 {
					c = tileLight
				}
				w.batch.Add(render.NewColorQuad(
					mgl32.Vec2{float32(x * tileSize), float32(y * tileSize)},
					mgl32.Vec2{tileSize, tileSize},
					c,
				))
			}
		}
	}

	// Resolved every frame so hot reloads show up.
	if w.hasSprite {
		if tex, ok := ctx.Textures.Get(spritePath); ok {
			center := float32(worldTiles * tileSize / 2)
			w.batch.Add(render.NewTextureQuad(
				mgl32.Vec2{center - tileSize, center - tileSize},
				mgl32.Vec2{2 * tileSize, 2 * tileSize},
				tex, render.White,
			))
		}
	}

	for _, m := range w.markers {
		w.batch.Add(render.NewColorQuad(m.Sub(mgl32.Vec2{4, 4}), mgl32.Vec2{8, 8}, markerTint))
	}

	w.batch.End()
	w.batch.Flush()
}

func (w *world) Leave(ctx *engine.Context) {
	if w.reset != nil {
		w.reset.Stop()
		w.reset = nil
	}
	if w.hasSprite {
		if err := ctx.UnloadTexture(spritePath); err != nil {
			logx.Logger().Warn("world: unload sprite", "err", err)
		}
		w.hasSprite = false
	}
	w.batch.Dispose()
	w.batch = nil
}
