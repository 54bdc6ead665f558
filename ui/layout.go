package ui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// align places an element of the given size along one axis of a container.
func align(a Alignment, container, size, marginStart, marginEnd float32) (pos, newSize float32) {
	switch a {
	case AlignStart:
		return marginStart, size
	case AlignCenter:
		return marginStart + (container-marginStart-marginEnd-size)/2, size
	case AlignEnd:
		return container - size - marginEnd, size
	case AlignStretch:
		return marginStart, max(container-marginStart-marginEnd, 0)
	default:
		panic(fmt.Sprintf("ui: invalid alignment %d", a))
	}
}

// AlignLayout places every child at the same spot, aligned on each axis.
type AlignLayout struct {
	Horizontal Alignment
	Vertical   Alignment
}

var _ Layout = AlignLayout{}

func (l AlignLayout) alignment(axis int) Alignment {
	if axis == 0 {
		return l.Horizontal
	}
	return l.Vertical
}

// PreferredSize is the largest child including its margins.
func (l AlignLayout) PreferredSize(e *Element) mgl32.Vec2 {
	var size mgl32.Vec2
	for _, child := range e.layoutChildren() {
		total := child.PreferredSize().Add(child.Margin.Size())
		size = mgl32.Vec2{max(size.X(), total.X()), max(size.Y(), total.Y())}
	}
	return size
}

func (l AlignLayout) ArrangeChildren(e *Element) {
	for _, child := range e.layoutChildren() {
		pref := child.PreferredSize()
		var pos, size mgl32.Vec2
		for axis := 0; axis < 2; axis++ {
			pos[axis], size[axis] = align(l.alignment(axis), e.Size[axis], pref[axis],
				child.Margin.start(axis), child.Margin.end(axis))
		}
		child.Position = pos
		child.resize(size)
	}
}

// StackLayout lines children up along one axis with Spacing between them.
//
// The alignment of the primary axis places the whole block of children;
// Stretch behaves like Center there. The alignment of the secondary axis
// places each child on its own.
type StackLayout struct {
	Orientation Orientation
	Spacing     float32
	Horizontal  Alignment
	Vertical    Alignment
}

var _ Layout = StackLayout{}

func (l StackLayout) axes() (primary, secondary int) {
	switch l.Orientation {
	case Horizontal:
		return 0, 1
	case Vertical:
		return 1, 0
	default:
		panic(fmt.Sprintf("ui: invalid orientation %d", l.Orientation))
	}
}

func (l StackLayout) alignment(axis int) Alignment {
	if axis == 0 {
		return l.Horizontal
	}
	return l.Vertical
}

// PreferredSize sums the children along the primary axis, spacing
// included, and takes the largest child on the secondary axis.
func (l StackLayout) PreferredSize(e *Element) mgl32.Vec2 {
	a1, a2 := l.axes()
	var size mgl32.Vec2
	for i, child := range e.layoutChildren() {
		total := child.PreferredSize().Add(child.Margin.Size())
		if i > 0 {
			size[a1] += l.Spacing
		}
		size[a1] += total[a1]
		size[a2] = max(size[a2], total[a2])
	}
	return size
}

func (l StackLayout) ArrangeChildren(e *Element) {
	a1, a2 := l.axes()
	preferred := l.PreferredSize(e)

	var pos1 float32
	switch l.alignment(a1) {
	case AlignStart:
	case AlignCenter, AlignStretch:
		pos1 = (e.Size[a1] - preferred[a1]) / 2
	case AlignEnd:
		pos1 = e.Size[a1] - preferred[a1]
	default:
		panic(fmt.Sprintf("ui: invalid alignment %d", l.alignment(a1)))
	}

	for i, child := range e.layoutChildren() {
		if i > 0 {
			pos1 += l.Spacing
		}
		pref := child.PreferredSize()

		var pos, size mgl32.Vec2
		pos[a1] = pos1 + child.Margin.start(a1)
		size[a1] = pref[a1]
		pos[a2], size[a2] = align(l.alignment(a2), e.Size[a2], pref[a2],
			child.Margin.start(a2), child.Margin.end(a2))
		pos1 += child.Margin.start(a1) + pref[a1] + child.Margin.end(a1)

		child.Position = pos
		child.resize(size)
	}
}
