package input

import (
	"errors"
	"fmt"

	"github.com/OpticalFlyer/vengine/config"
	"github.com/OpticalFlyer/vengine/logx"
)

// DefaultDoublePressWindow is used by action bindings created without an
// explicit window, in seconds.
const DefaultDoublePressWindow = 0.25

var (
	ErrDuplicateBinding = errors.New("input: duplicate binding")
	ErrUnknownBinding   = errors.New("input: unknown binding")
)

// Manager owns the named bindings and the latest snapshot.
type Manager struct {
	bindings map[string]Binding
	order    []string
	snapshot Snapshot
}

func NewManager() *Manager {
	return &Manager{bindings: make(map[string]Binding)}
}

// Register adds b under name. Bindings update in registration order.
func (m *Manager) Register(name string, b Binding) error {
	if _, ok := m.bindings[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBinding, name)
	}
	m.bindings[name] = b
	m.order = append(m.order, name)
	logx.Logger().Debug("input: binding registered", "name", name, "type", fmt.Sprintf("%T", b))
	return nil
}

// Unregister removes the binding called name, if any.
func (m *Manager) Unregister(name string) {
	if _, ok := m.bindings[name]; !ok {
		return
	}
	delete(m.bindings, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Binding returns the binding called name.
func (m *Manager) Binding(name string) (Binding, bool) {
	b, ok := m.bindings[name]
	return b, ok
}

// Names returns the binding names in registration order.
func (m *Manager) Names() []string {
	return append([]string(nil), m.order...)
}

// Lookup returns the binding called name as a T.
func Lookup[T Binding](m *Manager, name string) (T, error) {
	var zero T
	b, ok := m.bindings[name]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrUnknownBinding, name)
	}
	t, ok := b.(T)
	if !ok {
		return zero, fmt.Errorf("input: binding %q is %T, not %T", name, b, zero)
	}
	return t, nil
}

// Update stores s as the current snapshot and updates every binding.
func (m *Manager) Update(s Snapshot, dt float32) {
	m.snapshot = s
	for _, name := range m.order {
		m.bindings[name].Update(&m.snapshot, dt)
	}
}

// Snapshot returns the snapshot of the current frame.
func (m *Manager) Snapshot() *Snapshot {
	return &m.snapshot
}

// FromConfig builds a binding for one settings entry.
func FromConfig(def config.Binding, doublePressWindow float32) (Binding, error) {
	keys := make([]Key, len(def.Keys))
	for i, k := range def.Keys {
		keys[i] = Key(k)
	}

	need := map[string]int{
		config.KindAction: 1,
		config.KindAxis1D: 2,
		config.KindAxis2D: 4,
		config.KindAxis3D: 6,
	}
	if n := need[def.Kind]; len(keys) < n {
		return nil, fmt.Errorf("binding %q: %s needs %d keys, got %d", def.Name, def.Kind, n, len(keys))
	}

	switch def.Kind {
	case config.KindAction:
		typ, err := ParseActionType(def.Action)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", def.Name, err)
		}
		a := NewActionBinding(keys[0], typ)
		a.Window = doublePressWindow
		return a, nil
	case config.KindAxis1D:
		return NewAxis1DBinding(keys[0], keys[1]), nil
	case config.KindAxis2D:
		return NewAxis2DBinding(KeyPair{keys[0], keys[1]}, KeyPair{keys[2], keys[3]}), nil
	case config.KindAxis3D:
		return NewAxis3DBinding(KeyPair{keys[0], keys[1]}, KeyPair{keys[2], keys[3]}, KeyPair{keys[4], keys[5]}), nil
	case config.KindMouse:
		b, err := ParseMouseButton(def.Button)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", def.Name, err)
		}
		return NewMouseActionBinding(b), nil
	}
	return nil, fmt.Errorf("binding %q: unknown kind %q", def.Name, def.Kind)
}

// Configure registers every binding of settings on m.
func (m *Manager) Configure(settings config.Input) error {
	for _, def := range settings.Bindings {
		b, err := FromConfig(def, settings.DoublePressWindow)
		if err != nil {
			return fmt.Errorf("input: %w", err)
		}
		if err := m.Register(def.Name, b); err != nil {
			return err
		}
	}
	return nil
}
