package ui

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpticalFlyer/vengine/input"
	"github.com/OpticalFlyer/vengine/render"
)

// Element is a node of the interface tree. An element owns its children;
// its parent pointer is a back reference only.
type Element struct {
	// Events holds the element's handlers and pointer state.
	Events Emitter

	Name string
	// Position is relative to the parent.
	Position mgl32.Vec2
	Size     mgl32.Vec2
	Margin   Margin

	// Hidden elements are neither drawn, laid out nor hit tested, and
	// neither are their descendants.
	Visible bool
	// IgnoreLayout leaves the element where it is when the parent's layout
	// runs.
	IgnoreLayout bool
	// IgnoreInput makes hit testing look through the element. Its children
	// still receive input.
	IgnoreInput bool

	Layout  Layout
	Content Drawable

	// OnUpdate runs once per frame before layout.
	OnUpdate func(e *Element, snap *input.Snapshot, dt float32)

	parent   *Element
	canvas   *Canvas
	children []*Element
}

// NewElement creates a visible element and appends it to parent. Only a
// Canvas may exist without a parent.
func NewElement(parent *Element) *Element {
	if parent == nil {
		panic("ui: element needs a parent")
	}
	e := &Element{Visible: true}
	parent.AddChild(e)
	return e
}

func (e *Element) Parent() *Element { return e.parent }

// Canvas returns the canvas the element is attached to, or nil.
func (e *Element) Canvas() *Canvas { return e.canvas }

// Children returns the child list. Callers must not modify it.
func (e *Element) Children() []*Element { return e.children }

// AddChild appends child, detaching it from its previous parent first.
func (e *Element) AddChild(child *Element) {
	e.InsertChild(len(e.children), child)
}

// InsertChild inserts child at index i of the child list.
func (e *Element) InsertChild(i int, child *Element) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	i = min(max(i, 0), len(e.children))
	e.children = slices.Insert(e.children, i, child)
	child.parent = e
	child.setCanvas(e.canvas)
}

// RemoveChild removes child if it is a direct child of e.
func (e *Element) RemoveChild(child *Element) {
	i := e.IndexOf(child)
	if i < 0 {
		return
	}
	e.children = slices.Delete(e.children, i, i+1)
	child.parent = nil
	child.setCanvas(nil)
}

// IndexOf returns the position of child in the child list, or -1.
func (e *Element) IndexOf(child *Element) int {
	return slices.Index(e.children, child)
}

// Detach removes e from its parent.
func (e *Element) Detach() {
	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

func (e *Element) setCanvas(c *Canvas) {
	e.canvas = c
	for _, child := range e.children {
		child.setCanvas(c)
	}
}

// SetVisibleRecursive sets Visible on e and all its descendants.
func (e *Element) SetVisibleRecursive(v bool) {
	e.Visible = v
	for _, child := range e.children {
		child.SetVisibleRecursive(v)
	}
}

// AbsolutePosition returns the position of e in canvas coordinates.
func (e *Element) AbsolutePosition() mgl32.Vec2 {
	pos := e.Position
	for p := e.parent; p != nil; p = p.parent {
		pos = pos.Add(p.Position)
	}
	return pos
}

// Bounds returns the absolute rectangle of e.
func (e *Element) Bounds() Rectangle {
	pos := e.AbsolutePosition()
	return Rectangle{X: pos.X(), Y: pos.Y(), Width: e.Size.X(), Height: e.Size.Y()}
}

// TotalSize returns the size including margins.
func (e *Element) TotalSize() mgl32.Vec2 {
	return e.Size.Add(e.Margin.Size())
}

// ContainsAbsolute reports whether the canvas point p is inside e.
func (e *Element) ContainsAbsolute(p mgl32.Vec2) bool {
	return e.Bounds().Contains(p)
}

// ContainsRelative reports whether p, given in the parent's coordinates,
// is inside e.
func (e *Element) ContainsRelative(p mgl32.Vec2) bool {
	r := Rectangle{X: e.Position.X(), Y: e.Position.Y(), Width: e.Size.X(), Height: e.Size.Y()}
	return r.Contains(p)
}

// PreferredSize is the size the parent's layout gives e: the layout's
// answer when e has one, the text extent for labels, Size otherwise.
func (e *Element) PreferredSize() mgl32.Vec2 {
	if e.Layout != nil {
		return e.Layout.PreferredSize(e)
	}
	if l, ok := e.Content.(*Label); ok && l.Font != nil {
		return l.measure()
	}
	return e.Size
}

// UpdateLayout lays out the children of e and then arranges them with e's
// own layout. Every call reflows the whole subtree.
func (e *Element) UpdateLayout() {
	for _, child := range e.children {
		child.UpdateLayout()
	}
	if e.Layout != nil {
		e.Layout.ArrangeChildren(e)
	}
}

// resize sets the size chosen by a parent layout and re-lays out e when it
// changed.
func (e *Element) resize(size mgl32.Vec2) {
	if e.Size == size {
		return
	}
	e.Size = size
	if e.Layout != nil {
		e.UpdateLayout()
	}
}

// layoutChildren returns the children a layout arranges.
func (e *Element) layoutChildren() []*Element {
	out := make([]*Element, 0, len(e.children))
	for _, child := range e.children {
		if child.Visible && !child.IgnoreLayout {
			out = append(out, child)
		}
	}
	return out
}

// AppendDescendants appends every descendant of e in depth first pre-order.
func (e *Element) AppendDescendants(dst []*Element) []*Element {
	for _, child := range e.children {
		dst = append(dst, child)
		dst = child.AppendDescendants(dst)
	}
	return dst
}

func (e *Element) appendVisibleDescendants(dst []*Element) []*Element {
	for _, child := range e.children {
		if !child.Visible {
			continue
		}
		dst = append(dst, child)
		dst = child.appendVisibleDescendants(dst)
	}
	return dst
}

// AppendQuads appends the quads of e and its visible descendants in paint
// order.
func (e *Element) AppendQuads(dst []render.Quad) []render.Quad {
	if !e.Visible {
		return dst
	}
	dst = appendContent(dst, e)
	for _, child := range e.children {
		dst = child.AppendQuads(dst)
	}
	return dst
}

// update runs the OnUpdate hooks of the visible subtree.
func (e *Element) update(snap *input.Snapshot, dt float32) {
	if !e.Visible {
		return
	}
	if e.OnUpdate != nil {
		e.OnUpdate(e, snap, dt)
	}
	// Hooks may add or remove children.
	for _, child := range slices.Clone(e.children) {
		child.update(snap, dt)
	}
}
