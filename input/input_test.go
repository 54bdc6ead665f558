package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpticalFlyer/vengine/config"
)

func keysDown(keys ...Key) *Snapshot {
	return &Snapshot{Down: keys}
}

func TestActionBinding_Hold(t *testing.T) {
	a := NewActionBinding("Space", Hold)
	var changes []bool
	a.OnChange(func(_, v bool) { changes = append(changes, v) })

	a.Update(keysDown("Space"), 0.016)
	assert.True(t, a.Get())
	a.Update(keysDown("Space"), 0.016)
	a.Update(keysDown(), 0.016)
	assert.False(t, a.Get())

	assert.Equal(t, []bool{true, false}, changes, "listeners fire on change only")
}

func TestActionBinding_PressAndRelease(t *testing.T) {
	press := NewActionBinding("E", Press)
	release := NewActionBinding("E", Release)

	frames := []Snapshot{
		{Down: []Key{"E"}, Pressed: []Key{"E"}},
		{Down: []Key{"E"}},
		{Released: []Key{"E"}},
		{},
	}
	var gotPress, gotRelease []bool
	for i := range frames {
		press.Update(&frames[i], 0.016)
		release.Update(&frames[i], 0.016)
		gotPress = append(gotPress, press.Get())
		gotRelease = append(gotRelease, release.Get())
	}
	assert.Equal(t, []bool{true, false, false, false}, gotPress)
	assert.Equal(t, []bool{false, false, true, false}, gotRelease)
}

func TestActionBinding_DoublePress(t *testing.T) {
	pressed := &Snapshot{Pressed: []Key{"Space"}}
	idle := &Snapshot{}

	t.Run("within window", func(t *testing.T) {
		a := NewActionBinding("Space", DoublePress)
		a.Window = 0.25
		a.Update(pressed, 0.1)
		assert.False(t, a.Get())
		a.Update(idle, 0.1)
		a.Update(pressed, 0.1)
		assert.True(t, a.Get())
		a.Update(idle, 0.1)
		assert.False(t, a.Get())
	})

	t.Run("too slow", func(t *testing.T) {
		a := NewActionBinding("Space", DoublePress)
		a.Window = 0.25
		a.Update(pressed, 0.1)
		a.Update(idle, 0.2)
		a.Update(pressed, 0.1)
		assert.False(t, a.Get(), "0.3s gap is outside the window")
		a.Update(pressed, 0.1)
		assert.True(t, a.Get(), "the late press re-armed the binding")
	})

	t.Run("every quick press fires", func(t *testing.T) {
		a := NewActionBinding("Space", DoublePress)
		a.Window = 0.25
		a.Update(pressed, 0.05)
		a.Update(pressed, 0.05)
		require.True(t, a.Get())
		a.Update(pressed, 0.2)
		assert.True(t, a.Get(), "third press is within the window of the second")
		a.Update(idle, 0.2)
		a.Update(pressed, 0.1)
		assert.False(t, a.Get(), "0.3s after the third press")
	})
}

func TestAxisBindings(t *testing.T) {
	x := NewAxis1DBinding("A", "D")
	x.Update(keysDown("D"), 0)
	assert.Equal(t, float32(1), x.Get())
	x.Update(keysDown("A"), 0)
	assert.Equal(t, float32(-1), x.Get())
	x.Update(keysDown("A", "D"), 0)
	assert.Equal(t, float32(0), x.Get())

	xy := NewAxis2DBinding(KeyPair{"A", "D"}, KeyPair{"W", "S"})
	xy.Update(keysDown("D", "W"), 0)
	assert.Equal(t, mgl32.Vec2{1, -1}, xy.Get())

	xyz := NewAxis3DBinding(KeyPair{"A", "D"}, KeyPair{"W", "S"}, KeyPair{"Q", "E"})
	xyz.Update(keysDown("S", "Q"), 0)
	assert.Equal(t, mgl32.Vec3{0, 1, -1}, xyz.Get())
}

func TestMouseActionBinding(t *testing.T) {
	m := NewMouseActionBinding(MouseRight)
	s := &Snapshot{}
	s.Buttons[MouseRight] = true
	m.Update(s, 0)
	assert.True(t, m.Get())
	m.Update(&Snapshot{}, 0)
	assert.False(t, m.Get())
}

func TestManager_RegisterAndLookup(t *testing.T) {
	m := NewManager()
	jump := NewActionBinding("Space", Press)
	require.NoError(t, m.Register("jump", jump))
	assert.ErrorIs(t, m.Register("jump", jump), ErrDuplicateBinding)

	got, err := Lookup[*ActionBinding](m, "jump")
	require.NoError(t, err)
	assert.Same(t, jump, got)

	_, err = Lookup[*Axis1DBinding](m, "jump")
	assert.Error(t, err)
	_, err = Lookup[*ActionBinding](m, "fly")
	assert.ErrorIs(t, err, ErrUnknownBinding)

	m.Update(Snapshot{Pressed: []Key{"Space"}}, 0.016)
	assert.True(t, jump.Get())
	assert.True(t, m.Snapshot().KeyPressed("Space"))

	m.Unregister("jump")
	assert.Empty(t, m.Names())
}

func TestManager_Configure(t *testing.T) {
	m := NewManager()
	in := config.Default().Input
	require.NoError(t, m.Configure(in))

	assert.Equal(t, []string{"debug", "move", "zoom", "dash", "select"}, m.Names())

	dash, err := Lookup[*ActionBinding](m, "dash")
	require.NoError(t, err)
	assert.Equal(t, DoublePress, dash.Type)
	assert.Equal(t, in.DoublePressWindow, dash.Window)

	move, err := Lookup[*Axis2DBinding](m, "move")
	require.NoError(t, err)
	m.Update(Snapshot{Down: []Key{"A", "S"}}, 0.016)
	assert.Equal(t, mgl32.Vec2{-1, 1}, move.Get())

	sel, err := Lookup[*MouseActionBinding](m, "select")
	require.NoError(t, err)
	assert.Equal(t, MouseLeft, sel.Button)
}

func TestFromConfig_Errors(t *testing.T) {
	tests := []config.Binding{
		{Name: "a", Kind: config.KindAction, Keys: []string{"A"}, Action: "tap"},
		{Name: "b", Kind: config.KindMouse, Button: "thumb"},
		{Name: "c", Kind: "gamepad"},
		{Name: "d", Kind: config.KindAxis2D, Keys: []string{"A"}},
	}
	for _, def := range tests {
		t.Run(def.Name, func(t *testing.T) {
			_, err := FromConfig(def, 0.25)
			assert.Error(t, err)
		})
	}
}

func TestParseNames(t *testing.T) {
	for typ := Hold; typ <= DoublePress; typ++ {
		got, err := ParseActionType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	for b := MouseLeft; b < MouseButtonCount; b++ {
		got, err := ParseMouseButton(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
}
