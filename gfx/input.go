package gfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/OpticalFlyer/vengine/input"
)

// pinchStep is the distance ratio between two touches that counts as one
// wheel step.
const pinchStep = 1.1

var mouseButtons = [input.MouseButtonCount]ebiten.MouseButton{
	input.MouseLeft:   ebiten.MouseButtonLeft,
	input.MouseRight:  ebiten.MouseButtonRight,
	input.MouseMiddle: ebiten.MouseButtonMiddle,
}

// InputPoller reads ebiten's input state into snapshots. The first touch
// acts as the left mouse button and a two finger pinch scrolls the wheel.
//
// Slices in a snapshot are reused by the next Poll.
type InputPoller struct {
	keys     []ebiten.Key
	down     []input.Key
	pressed  []input.Key
	released []input.Key
	chars    []rune
	touches  []ebiten.TouchID

	lastCursor mgl32.Vec2
	hasCursor  bool

	// Primary touch state
	touch      ebiten.TouchID
	touching   bool
	touchPos   mgl32.Vec2
	pinchStart float64
}

// Poll returns the input of the current tick.
func (p *InputPoller) Poll() input.Snapshot {
	var s input.Snapshot
	s.Down = p.appendKeys(p.down[:0], inpututil.AppendPressedKeys(p.keys[:0]))
	s.Pressed = p.appendKeys(p.pressed[:0], inpututil.AppendJustPressedKeys(p.keys[:0]))
	s.Released = p.appendKeys(p.released[:0], inpututil.AppendJustReleasedKeys(p.keys[:0]))
	p.down, p.pressed, p.released = s.Down, s.Pressed, s.Released

	p.chars = ebiten.AppendInputChars(p.chars[:0])
	s.Text = p.chars

	x, y := ebiten.CursorPosition()
	s.Cursor = mgl32.Vec2{float32(x), float32(y)}
	for b, eb := range mouseButtons {
		s.Buttons[b] = ebiten.IsMouseButtonPressed(eb)
		s.ButtonsPressed[b] = inpututil.IsMouseButtonJustPressed(eb)
		s.ButtonsReleased[b] = inpututil.IsMouseButtonJustReleased(eb)
	}
	wx, wy := ebiten.Wheel()
	s.Wheel = mgl32.Vec2{float32(wx), float32(wy)}
	s.MouseCaptured = ebiten.CursorMode() == ebiten.CursorModeCaptured

	p.pollTouches(&s)

	if p.hasCursor {
		s.CursorDelta = s.Cursor.Sub(p.lastCursor)
	}
	p.lastCursor = s.Cursor
	p.hasCursor = true
	return s
}

func (p *InputPoller) appendKeys(dst []input.Key, keys []ebiten.Key) []input.Key {
	p.keys = keys
	for _, k := range keys {
		dst = append(dst, input.Key(k.String()))
	}
	return dst
}

func (p *InputPoller) pollTouches(s *input.Snapshot) {
	p.touches = ebiten.AppendTouchIDs(p.touches[:0])

	if p.touching {
		if inpututil.IsTouchJustReleased(p.touch) || !containsTouchID(p.touches, p.touch) {
			p.touching = false
			s.Cursor = p.touchPos
			s.ButtonsReleased[input.MouseLeft] = true
		} else {
			x, y := ebiten.TouchPosition(p.touch)
			p.touchPos = mgl32.Vec2{float32(x), float32(y)}
			s.Cursor = p.touchPos
			s.Buttons[input.MouseLeft] = true
		}
	} else if len(p.touches) > 0 && !s.AnyButtonDown() {
		p.touch = p.touches[0]
		p.touching = true
		x, y := ebiten.TouchPosition(p.touch)
		p.touchPos = mgl32.Vec2{float32(x), float32(y)}
		s.Cursor = p.touchPos
		s.Buttons[input.MouseLeft] = true
		s.ButtonsPressed[input.MouseLeft] = true
	}

	if len(p.touches) != 2 {
		p.pinchStart = 0
		return
	}
	x1, y1 := ebiten.TouchPosition(p.touches[0])
	x2, y2 := ebiten.TouchPosition(p.touches[1])
	dist := distance(float64(x1), float64(y1), float64(x2), float64(y2))
	switch {
	case p.pinchStart == 0:
		p.pinchStart = dist
	case dist > p.pinchStart*pinchStep:
		s.Wheel[1]++
		p.pinchStart = dist
	case dist < p.pinchStart/pinchStep:
		s.Wheel[1]--
		p.pinchStart = dist
	}
}

func containsTouchID(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, tid := range ids {
		if tid == id {
			return true
		}
	}
	return false
}

func distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}
