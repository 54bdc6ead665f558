// Package config loads the engine settings file.
//
// Settings are stored as TOML. LoadOrDefault creates the file with default
// values the first time a game runs so players have something to edit.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// MaxBatchQuads is the largest batch a 16 bit index buffer can address.
const MaxBatchQuads = 65536/4 - 1

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid settings")

// Settings is the root of the settings file.
type Settings struct {
	Window    Window    `toml:"window"`
	Display   Display   `toml:"display"`
	UI        UI        `toml:"ui"`
	Input     Input     `toml:"input"`
	Resources Resources `toml:"resources"`
	Log       Log       `toml:"log"`
}

type Window struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
	VSync     bool   `toml:"vsync"`
}

// Display controls the frame loop. An update frequency of zero keeps the
// host default.
type Display struct {
	UpdateFrequency int `toml:"update_frequency"`
}

type UI struct {
	BatchQuads   int     `toml:"batch_quads"`
	TextureSlots int     `toml:"texture_slots"`
	FontSize     float32 `toml:"font_size"`
	// Font is a TTF/OTF path below the resource root. Empty selects the
	// built in Go Regular face.
	Font string `toml:"font"`
}

type Input struct {
	// DoublePressWindow is in seconds.
	DoublePressWindow float32   `toml:"double_press_window"`
	Bindings          []Binding `toml:"bindings"`
}

// Binding describes one named input binding.
//
// Keys holds key names in axis order: negative then positive for each axis
// (one pair for axis1d, two for axis2d, three for axis3d, a single key for
// action). Button names the mouse button of a mouse binding.
type Binding struct {
	Name   string   `toml:"name"`
	Kind   string   `toml:"kind"`
	Keys   []string `toml:"keys,omitempty"`
	Action string   `toml:"action,omitempty"`
	Button string   `toml:"button,omitempty"`
}

type Resources struct {
	Root  string `toml:"root"`
	Watch bool   `toml:"watch"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		Window: Window{
			Title:     "vengine",
			Width:     800,
			Height:    600,
			Resizable: true,
			VSync:     true,
		},
		Display: Display{UpdateFrequency: 60},
		UI: UI{
			BatchQuads:   1000,
			TextureSlots: 16,
			FontSize:     16,
		},
		Input: Input{
			DoublePressWindow: 0.25,
			Bindings: []Binding{
				{Name: "debug", Kind: KindAction, Keys: []string{"F1"}, Action: "press"},
				{Name: "move", Kind: KindAxis2D, Keys: []string{"A", "D", "W", "S"}},
				{Name: "zoom", Kind: KindAxis1D, Keys: []string{"Minus", "Equal"}},
				{Name: "dash", Kind: KindAction, Keys: []string{"Space"}, Action: "double_press"},
				{Name: "select", Kind: KindMouse, Button: "left"},
			},
		},
		Resources: Resources{Root: "assets", Watch: true},
		Log:       Log{Level: "info"},
	}
}

// Binding kinds.
const (
	KindAction = "action"
	KindAxis1D = "axis1d"
	KindAxis2D = "axis2d"
	KindAxis3D = "axis3d"
	KindMouse  = "mouse"
)

var keysPerKind = map[string]int{
	KindAction: 1,
	KindAxis1D: 2,
	KindAxis2D: 4,
	KindAxis3D: 6,
	KindMouse:  0,
}

// Validate reports the first problem found in s.
func (s Settings) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	case s.Display.UpdateFrequency < 0:
		return fmt.Errorf("%w: update frequency %d", ErrInvalid, s.Display.UpdateFrequency)
	case s.UI.BatchQuads <= 0 || s.UI.BatchQuads > MaxBatchQuads:
		return fmt.Errorf("%w: batch_quads must be in [1, %d], got %d", ErrInvalid, MaxBatchQuads, s.UI.BatchQuads)
	case s.UI.TextureSlots < 2:
		return fmt.Errorf("%w: texture_slots must be at least 2, got %d", ErrInvalid, s.UI.TextureSlots)
	case s.UI.FontSize <= 0:
		return fmt.Errorf("%w: font_size %v", ErrInvalid, s.UI.FontSize)
	case s.Input.DoublePressWindow < 0:
		return fmt.Errorf("%w: double_press_window %v", ErrInvalid, s.Input.DoublePressWindow)
	}

	seen := make(map[string]bool, len(s.Input.Bindings))
	for _, b := range s.Input.Bindings {
		if b.Name == "" {
			return fmt.Errorf("%w: binding without name", ErrInvalid)
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: duplicate binding %q", ErrInvalid, b.Name)
		}
		seen[b.Name] = true

		n, ok := keysPerKind[b.Kind]
		if !ok {
			return fmt.Errorf("%w: binding %q has unknown kind %q", ErrInvalid, b.Name, b.Kind)
		}
		if len(b.Keys) != n {
			return fmt.Errorf("%w: binding %q of kind %s needs %d keys, got %d", ErrInvalid, b.Name, b.Kind, n, len(b.Keys))
		}
		if b.Kind == KindMouse && b.Button == "" {
			return fmt.Errorf("%w: mouse binding %q without button", ErrInvalid, b.Name)
		}
	}
	return nil
}

// Load reads settings from path. Fields missing from the file keep their
// default values; unknown fields are rejected.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses TOML settings on top of the defaults.
func Decode(data []byte) (Settings, error) {
	s := Default()
	// Decoding into a prefilled slice appends, so the file's bindings
	// replace the default ones wholesale.
	s.Input.Bindings = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("config: decode: %w", err)
	}
	if s.Input.Bindings == nil {
		s.Input.Bindings = Default().Input.Bindings
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes s to path, creating parent directories.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// LoadOrDefault loads path, writing the default settings there first when
// the file does not exist yet.
func LoadOrDefault(path string) (Settings, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := Save(path, Default()); err != nil {
			return Settings{}, err
		}
	} else if err != nil {
		return Settings{}, fmt.Errorf("config: stat %s: %w", path, err)
	}
	return Load(path)
}
