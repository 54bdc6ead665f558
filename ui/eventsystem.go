package ui

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpticalFlyer/vengine/input"
)

// EventSystem turns input snapshots into element events for one canvas.
type EventSystem struct {
	canvas  *Canvas
	focused *Element
	// pressed holds the click latch of the last press.
	pressed *Element
	cursor  mgl32.Vec2

	walk []*Element
	// hovered holds the elements under the cursor after the last update.
	hovered, spare []*Element
}

func newEventSystem(c *Canvas) *EventSystem {
	return &EventSystem{canvas: c}
}

// Focused returns the element receiving keyboard input, or nil.
func (s *EventSystem) Focused() *Element {
	s.dropDetached()
	return s.focused
}

// Focus moves keyboard focus to e. Passing nil clears focus.
func (s *EventSystem) Focus(e *Element) {
	if e == s.focused {
		return
	}
	old := s.focused
	if old != nil {
		old.Events.focused = false
		old.Events.LostFocus.fire(old, FocusEvent{Other: e})
	}
	s.focused = e
	if e != nil {
		e.Events.focused = true
		e.Events.GainedFocus.fire(e, FocusEvent{Other: old})
	}
}

// dropDetached clears focus and the click latch when their elements left
// the canvas.
func (s *EventSystem) dropDetached() {
	if s.focused != nil && s.focused.canvas != s.canvas {
		s.Focus(nil)
	}
	if s.pressed != nil && s.pressed.canvas != s.canvas {
		s.pressed.Events.clickInitiated = false
		s.pressed = nil
	}
}

// Topmost returns the element that receives a press at p: the last element
// of a depth first walk over the visible tree whose bounds contain p.
// Later siblings and deeper descendants win. The canvas itself is never
// returned.
func (s *EventSystem) Topmost(p mgl32.Vec2) *Element {
	s.walk = s.canvas.appendVisibleDescendants(s.walk[:0])
	return s.topmost(p)
}

func (s *EventSystem) topmost(p mgl32.Vec2) *Element {
	for i := len(s.walk) - 1; i >= 0; i-- {
		e := s.walk[i]
		if !e.IgnoreInput && e.ContainsAbsolute(p) {
			return e
		}
	}
	return nil
}

// Hovering reports whether the cursor was over an input receiving element
// in the last update, or a press is still held.
func (s *EventSystem) Hovering() bool {
	return s.pressed != nil || s.topmost(s.cursor) != nil
}

// Update dispatches the events of one frame. Nothing is dispatched while
// the mouse is captured.
func (s *EventSystem) Update(snap *input.Snapshot) {
	if snap.MouseCaptured {
		return
	}
	s.dropDetached()
	s.cursor = snap.Cursor
	s.walk = s.canvas.appendVisibleDescendants(s.walk[:0])

	s.mouseMove(snap)
	for b := input.MouseLeft; b < input.MouseButtonCount; b++ {
		if snap.ButtonsPressed[b] {
			s.mouseDown(b)
		}
	}
	for b := input.MouseLeft; b < input.MouseButtonCount; b++ {
		if snap.ButtonsReleased[b] {
			s.mouseUp(b)
		}
	}
	if snap.Wheel != (mgl32.Vec2{}) {
		// Press handlers may have changed the tree.
		s.walk = s.canvas.appendVisibleDescendants(s.walk[:0])
		if top := s.topmost(s.cursor); top != nil {
			top.Events.Scrolled.fire(top, ScrollEvent{Position: s.cursor, Offset: snap.Wheel})
		}
	}

	if s.focused == nil {
		return
	}
	for _, k := range snap.Pressed {
		s.focused.Events.KeyPressed.fire(s.focused, KeyEvent{Key: k})
	}
	for _, k := range snap.Released {
		s.focused.Events.KeyReleased.fire(s.focused, KeyEvent{Key: k})
	}
	for _, r := range snap.Text {
		s.focused.Events.TextInput.fire(s.focused, TextEvent{Char: r})
	}
}

func (s *EventSystem) mouseMove(snap *input.Snapshot) {
	anyDown := snap.AnyButtonDown()
	ev := MouseEvent{Position: s.cursor}
	over := s.spare[:0]
	for _, e := range s.walk {
		if e.IgnoreInput {
			continue
		}
		inside := e.ContainsAbsolute(s.cursor)
		switch {
		case inside && !e.Events.mouseOver:
			e.Events.mouseOver = true
			if anyDown {
				e.Events.mouseDown = true
			}
			e.Events.Entered.fire(e, ev)
		case !inside && e.Events.mouseOver:
			e.Events.mouseOver = false
			e.Events.mouseDown = false
			e.Events.Left.fire(e, ev)
		}
		if inside {
			over = append(over, e)
		}
	}

	// Elements hidden, detached or made to ignore input since the last
	// update are no longer walked; the cursor has left them too.
	for _, e := range s.hovered {
		if !e.Events.mouseOver || slices.Contains(over, e) {
			continue
		}
		e.Events.mouseOver = false
		e.Events.mouseDown = false
		e.Events.Left.fire(e, ev)
	}
	clear(s.hovered)
	s.hovered, s.spare = over, s.hovered
}

func (s *EventSystem) mouseDown(b input.MouseButton) {
	top := s.topmost(s.cursor)
	if s.pressed != nil {
		s.pressed.Events.clickInitiated = false
		s.pressed = nil
	}
	s.Focus(top)
	if top == nil {
		return
	}
	top.Events.clickInitiated = true
	top.Events.mouseDown = true
	s.pressed = top
	top.Events.MousePressed.fire(top, MouseEvent{Position: s.cursor, Button: b})
}

func (s *EventSystem) mouseUp(b input.MouseButton) {
	top := s.topmost(s.cursor)
	ev := MouseEvent{Position: s.cursor, Button: b}
	if top != nil {
		top.Events.mouseDown = false
		top.Events.MouseReleased.fire(top, ev)
		if top.Events.clickInitiated {
			top.Events.Clicked.fire(top, ev)
		}
	}
	if s.pressed != nil {
		s.pressed.Events.clickInitiated = false
		s.pressed.Events.mouseDown = false
		s.pressed = nil
	}
}
