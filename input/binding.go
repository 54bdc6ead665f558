package input

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Binding is updated once per frame from the current snapshot.
type Binding interface {
	Update(s *Snapshot, dt float32)
}

// Value holds a binding's current value and notifies listeners when it
// changes.
type Value[T comparable] struct {
	current   T
	listeners []func(old, new T)
}

// Get returns the current value.
func (v *Value[T]) Get() T { return v.current }

// OnChange registers fn to run whenever the value changes.
func (v *Value[T]) OnChange(fn func(old, new T)) {
	v.listeners = append(v.listeners, fn)
}

func (v *Value[T]) set(x T) {
	if x == v.current {
		return
	}
	old := v.current
	v.current = x
	for _, fn := range v.listeners {
		fn(old, x)
	}
}

// ActionType selects when an ActionBinding is active.
type ActionType int

const (
	// Hold is active while the key is down.
	Hold ActionType = iota
	// Press is active on the frame the key went down.
	Press
	// Release is active on the frame the key went up.
	Release
	// DoublePress is active on the second press within the double press
	// window.
	DoublePress
)

var actionNames = [...]string{
	Hold:        "hold",
	Press:       "press",
	Release:     "release",
	DoublePress: "double_press",
}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionNames) {
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
	return actionNames[t]
}

// ParseActionType is the inverse of ActionType.String.
func ParseActionType(s string) (ActionType, error) {
	for i, name := range actionNames {
		if name == s {
			return ActionType(i), nil
		}
	}
	return 0, fmt.Errorf("input: unknown action type %q", s)
}

// ActionBinding is a boolean bound to one key.
type ActionBinding struct {
	Value[bool]
	Key  Key
	Type ActionType
	// Window is the longest gap between two presses, in seconds, that
	// still counts as a double press.
	Window float32

	armed     bool
	sinceLast float32
}

var _ Binding = (*ActionBinding)(nil)

func NewActionBinding(key Key, typ ActionType) *ActionBinding {
	return &ActionBinding{Key: key, Type: typ, Window: DefaultDoublePressWindow}
}

func (a *ActionBinding) Update(s *Snapshot, dt float32) {
	switch a.Type {
	case Hold:
		a.set(s.KeyDown(a.Key))
	case Press:
		a.set(s.KeyPressed(a.Key))
	case Release:
		a.set(s.KeyReleased(a.Key))
	case DoublePress:
		a.set(a.doublePress(s, dt))
	default:
		panic(fmt.Sprintf("input: invalid action type %d", a.Type))
	}
}

func (a *ActionBinding) doublePress(s *Snapshot, dt float32) bool {
	if a.armed {
		a.sinceLast += dt
	}
	if !s.KeyPressed(a.Key) {
		return false
	}
	// Each press opens a new window, so a quick third press fires again.
	fired := a.armed && a.sinceLast <= a.Window
	a.armed = true
	a.sinceLast = 0
	return fired
}

// MouseActionBinding is a boolean bound to a held mouse button.
type MouseActionBinding struct {
	Value[bool]
	Button MouseButton
}

var _ Binding = (*MouseActionBinding)(nil)

func NewMouseActionBinding(b MouseButton) *MouseActionBinding {
	return &MouseActionBinding{Button: b}
}

func (m *MouseActionBinding) Update(s *Snapshot, _ float32) {
	m.set(s.ButtonDown(m.Button))
}

// KeyPair is the negative and positive key of one axis.
type KeyPair struct {
	Negative, Positive Key
}

func (p KeyPair) value(s *Snapshot) float32 {
	var v float32
	if s.KeyDown(p.Positive) {
		v++
	}
	if s.KeyDown(p.Negative) {
		v--
	}
	return v
}

// Axis1DBinding is -1, 0 or +1 depending on which of its keys are held.
type Axis1DBinding struct {
	Value[float32]
	Keys KeyPair
}

var _ Binding = (*Axis1DBinding)(nil)

func NewAxis1DBinding(negative, positive Key) *Axis1DBinding {
	return &Axis1DBinding{Keys: KeyPair{negative, positive}}
}

func (a *Axis1DBinding) Update(s *Snapshot, _ float32) {
	a.set(a.Keys.value(s))
}

// Axis2DBinding combines two key pairs into a vector.
type Axis2DBinding struct {
	Value[mgl32.Vec2]
	X, Y KeyPair
}

var _ Binding = (*Axis2DBinding)(nil)

func NewAxis2DBinding(x, y KeyPair) *Axis2DBinding {
	return &Axis2DBinding{X: x, Y: y}
}

func (a *Axis2DBinding) Update(s *Snapshot, _ float32) {
	a.set(mgl32.Vec2{a.X.value(s), a.Y.value(s)})
}

// Axis3DBinding combines three key pairs into a vector.
type Axis3DBinding struct {
	Value[mgl32.Vec3]
	X, Y, Z KeyPair
}

var _ Binding = (*Axis3DBinding)(nil)

func NewAxis3DBinding(x, y, z KeyPair) *Axis3DBinding {
	return &Axis3DBinding{X: x, Y: y, Z: z}
}

func (a *Axis3DBinding) Update(s *Snapshot, _ float32) {
	a.set(mgl32.Vec3{a.X.value(s), a.Y.value(s), a.Z.value(s)})
}
