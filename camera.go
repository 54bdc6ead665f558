package main

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpticalFlyer/vengine/proj"
)

const (
	minScale = 0.25
	maxScale = 8
	zoomStep = 1.25
	panSpeed = 400 // pixels per second
)

// camera pans and zooms the world. A world point w appears on screen at
// Offset + w*Scale.
type camera struct {
	Offset mgl32.Vec2
	Scale  float32
}

func newCamera() camera {
	return camera{Scale: 1}
}

func (c *camera) View() mgl32.Mat4 {
	return proj.View(c.Offset, c.Scale)
}

// ScreenToWorld converts a pixel on a screen of the given size to world
// coordinates.
func (c *camera) ScreenToWorld(p, screen mgl32.Vec2) mgl32.Vec2 {
	projView := proj.Screen(screen.X(), screen.Y()).Mul4(c.View())
	return proj.PixelsToWorld(projView, p.X(), p.Y(), screen.X(), screen.Y())
}

// PanBy moves the view by d pixels.
func (c *camera) PanBy(d mgl32.Vec2) {
	c.Offset = c.Offset.Add(d)
}

// ZoomAtPoint zooms one step while keeping the world point under p at the
// same screen location.
func (c *camera) ZoomAtPoint(zoomIn bool, p, screen mgl32.Vec2) {
	scale := c.Scale / zoomStep
	if zoomIn {
		scale = c.Scale * zoomStep
	}
	scale = math32.Max(minScale, math32.Min(maxScale, scale))
	if scale == c.Scale {
		return
	}
	w := c.ScreenToWorld(p, screen)
	c.Scale = scale
	c.Offset = p.Sub(w.Mul(scale))
}

// tileRange is an inclusive range of tile coordinates.
type tileRange struct {
	MinX, MinY, MaxX, MaxY int
}

func (r tileRange) Empty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// visibleTiles returns the tiles of a tiles x tiles grid that intersect a
// screen of the given size.
func (c *camera) visibleTiles(screen mgl32.Vec2, tileSize float32, tiles int) tileRange {
	topLeft := c.ScreenToWorld(mgl32.Vec2{}, screen)
	bottomRight := c.ScreenToWorld(screen, screen)

	clamp := func(v float32) int {
		return max(0, min(tiles-1, int(math32.Floor(v/tileSize))))
	}
	r := tileRange{
		MinX: clamp(topLeft.X()),
		MinY: clamp(topLeft.Y()),
		MaxX: clamp(bottomRight.X()),
		MaxY: clamp(bottomRight.Y()),
	}
	gridSize := float32(tiles) * tileSize
	if bottomRight.X() < 0 || bottomRight.Y() < 0 || topLeft.X() >= gridSize || topLeft.Y() >= gridSize {
		return tileRange{MinX: 0, MinY: 0, MaxX: -1, MaxY: -1}
	}
	return r
}
