package ui

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpticalFlyer/vengine/input"
)

// MouseEvent describes a pointer transition. Button is only meaningful for
// press, release and click.
type MouseEvent struct {
	Position mgl32.Vec2
	Button   input.MouseButton
}

// ScrollEvent carries the wheel offset of one frame.
type ScrollEvent struct {
	Position mgl32.Vec2
	Offset   mgl32.Vec2
}

// FocusEvent names the element on the other side of a focus change, which
// may be nil.
type FocusEvent struct {
	Other *Element
}

type KeyEvent struct {
	Key input.Key
}

type TextEvent struct {
	Char rune
}

// Handlers is a list of callbacks for one event.
type Handlers[E any] struct {
	fns []func(e *Element, ev E)
}

// Add registers fn.
func (h *Handlers[E]) Add(fn func(e *Element, ev E)) {
	h.fns = append(h.fns, fn)
}

// Len returns the number of registered handlers.
func (h *Handlers[E]) Len() int { return len(h.fns) }

func (h *Handlers[E]) fire(e *Element, ev E) {
	for _, fn := range h.fns {
		fn(e, ev)
	}
}

// Emitter is the event surface of an element: the handlers an EventSystem
// invokes and the pointer and focus state it keeps.
type Emitter struct {
	Entered       Handlers[MouseEvent]
	Left          Handlers[MouseEvent]
	MousePressed  Handlers[MouseEvent]
	MouseReleased Handlers[MouseEvent]
	Clicked       Handlers[MouseEvent]
	Scrolled      Handlers[ScrollEvent]
	GainedFocus   Handlers[FocusEvent]
	LostFocus     Handlers[FocusEvent]
	KeyPressed    Handlers[KeyEvent]
	KeyReleased   Handlers[KeyEvent]
	TextInput     Handlers[TextEvent]

	mouseOver      bool
	mouseDown      bool
	clickInitiated bool
	focused        bool
}

func (em *Emitter) MouseOver() bool { return em.mouseOver }
func (em *Emitter) MouseDown() bool { return em.mouseDown }
func (em *Emitter) Focused() bool   { return em.focused }

// ClickInitiated reports whether the last press landed on this element and
// has not been released yet.
func (em *Emitter) ClickInitiated() bool { return em.clickInitiated }
