// Package input turns per-frame input snapshots into named bindings.
package input

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Key names a keyboard key. Names follow the host's key naming ("A",
// "Digit1", "ArrowLeft", "Space", "F1", ...).
type Key string

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle

	MouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	}
	return fmt.Sprintf("MouseButton(%d)", int(b))
}

// ParseMouseButton is the inverse of MouseButton.String.
func ParseMouseButton(s string) (MouseButton, error) {
	for b := MouseLeft; b < MouseButtonCount; b++ {
		if strings.EqualFold(s, b.String()) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("input: unknown mouse button %q", s)
}

// Snapshot is the input state of one frame.
type Snapshot struct {
	// Keys held down, keys that went down this frame and keys that went up
	// this frame.
	Down     []Key
	Pressed  []Key
	Released []Key

	Cursor      mgl32.Vec2
	CursorDelta mgl32.Vec2
	// Wheel is the scroll offset of this frame.
	Wheel mgl32.Vec2

	Buttons         [MouseButtonCount]bool
	ButtonsPressed  [MouseButtonCount]bool
	ButtonsReleased [MouseButtonCount]bool

	// Text holds the characters typed this frame.
	Text []rune

	// MouseCaptured is set while the cursor is locked to the window for
	// relative motion. UI events are suppressed while it is set.
	MouseCaptured bool
}

func (s *Snapshot) KeyDown(k Key) bool     { return slices.Contains(s.Down, k) }
func (s *Snapshot) KeyPressed(k Key) bool  { return slices.Contains(s.Pressed, k) }
func (s *Snapshot) KeyReleased(k Key) bool { return slices.Contains(s.Released, k) }

func (s *Snapshot) ButtonDown(b MouseButton) bool { return s.Buttons[b] }

// AnyButtonDown reports whether any mouse button is held.
func (s *Snapshot) AnyButtonDown() bool {
	for _, down := range s.Buttons {
		if down {
			return true
		}
	}
	return false
}
