// Package ui is a retained mode interface toolkit: a tree of elements laid
// out by pluggable strategies, driven by per-frame input snapshots and drawn
// as batched quads.
package ui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpticalFlyer/vengine/render"
)

// Rectangle represents the bounds of an element
type Rectangle struct {
	X, Y          float32
	Width, Height float32
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rectangle) Contains(p mgl32.Vec2) bool {
	return p.X() >= r.X && p.X() < r.X+r.Width &&
		p.Y() >= r.Y && p.Y() < r.Y+r.Height
}

// Margin is the space kept free around an element by layouts.
type Margin struct {
	Left, Top, Right, Bottom float32
}

// Uniform returns a margin of v on every side.
func Uniform(v float32) Margin {
	return Margin{v, v, v, v}
}

func (m Margin) start(axis int) float32 {
	if axis == 0 {
		return m.Left
	}
	return m.Top
}

func (m Margin) end(axis int) float32 {
	if axis == 0 {
		return m.Right
	}
	return m.Bottom
}

// Size returns the total horizontal and vertical margin.
func (m Margin) Size() mgl32.Vec2 {
	return mgl32.Vec2{m.Left + m.Right, m.Top + m.Bottom}
}

// Layout defines how an element arranges its children
type Layout interface {
	// PreferredSize returns the size e needs to fit its children.
	PreferredSize(e *Element) mgl32.Vec2
	// ArrangeChildren positions and sizes the children of e inside e.Size.
	ArrangeChildren(e *Element)
}

// Alignment places a child along one axis. Start is left or top, End is
// right or bottom.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignStretch
	AlignEnd
)

func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignStretch:
		return "stretch"
	case AlignEnd:
		return "end"
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// Orientation is the primary axis of a stack.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Font measures and lays out text for labels.
type Font interface {
	CalculateWidth(text string, size float32) float32
	AppendQuads(dst []render.Quad, text string, position mgl32.Vec2, size float32, color mgl32.Vec4) []render.Quad
}
