package ui

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/OpticalFlyer/vengine/input"
	"github.com/OpticalFlyer/vengine/render"
	"github.com/OpticalFlyer/vengine/render/rendertest"
)

// monoFont is a fixed width font: every rune is half as wide as the text
// size and draws as one quad.
type monoFont struct{}

func (monoFont) CalculateWidth(text string, size float32) float32 {
	return float32(len([]rune(text))) * size / 2
}

func (monoFont) AppendQuads(dst []render.Quad, text string, pos mgl32.Vec2, size float32, color mgl32.Vec4) []render.Quad {
	for i := range []rune(text) {
		p := pos.Add(mgl32.Vec2{float32(i) * size / 2, 0})
		dst = append(dst, render.NewColorQuad(p, mgl32.Vec2{size / 2, size}, color))
	}
	return dst
}

func newTestCanvas(t *testing.T) (*Canvas, *rendertest.Backend) {
	t.Helper()
	backend := &rendertest.Backend{}
	c, err := NewCanvas(backend, 800, 600, 100, 8)
	require.NoError(t, err)
	return c, backend
}

func box(parent *Element, x, y, w, h float32) *Element {
	e := NewElement(parent)
	e.Position = mgl32.Vec2{x, y}
	e.Size = mgl32.Vec2{w, h}
	return e
}

// frame builds a snapshot with the cursor at (x, y).
func frame(x, y float32) *input.Snapshot {
	return &input.Snapshot{Cursor: mgl32.Vec2{x, y}}
}

func press(x, y float32) *input.Snapshot {
	s := frame(x, y)
	s.Buttons[input.MouseLeft] = true
	s.ButtonsPressed[input.MouseLeft] = true
	return s
}

func hold(x, y float32) *input.Snapshot {
	s := frame(x, y)
	s.Buttons[input.MouseLeft] = true
	return s
}

func release(x, y float32) *input.Snapshot {
	s := frame(x, y)
	s.ButtonsReleased[input.MouseLeft] = true
	return s
}
