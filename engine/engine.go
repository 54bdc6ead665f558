// Package engine ties the subsystems of a running game together behind one
// explicit context that the host advances once per frame.
package engine

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/OpticalFlyer/vengine/config"
	"github.com/OpticalFlyer/vengine/fonts"
	"github.com/OpticalFlyer/vengine/input"
	"github.com/OpticalFlyer/vengine/logx"
	"github.com/OpticalFlyer/vengine/render"
	"github.com/OpticalFlyer/vengine/resource"
	"github.com/OpticalFlyer/vengine/tween"
	"github.com/OpticalFlyer/vengine/ui"
)

// Screen is one state of the game, such as a menu or a level. The active
// screen is updated and rendered by the context.
type Screen interface {
	// Enter is called when the screen becomes active.
	Enter(ctx *Context) error
	Update(ctx *Context, dt float32) error
	// Render draws the world beneath the interface.
	Render(ctx *Context)
	// Leave is called when another screen replaces this one or the context
	// closes.
	Leave(ctx *Context)
}

// FrameTime tracks frame timing.
type FrameTime struct {
	Frame   uint64
	Delta   float32
	Elapsed float64
	// FPS is smoothed over recent frames.
	FPS float32
}

func (f *FrameTime) advance(dt float32) {
	f.Frame++
	f.Delta = dt
	f.Elapsed += float64(dt)
	if dt <= 0 {
		return
	}
	fps := 1 / dt
	if f.FPS == 0 {
		f.FPS = fps
		return
	}
	f.FPS += (fps - f.FPS) * 0.1
}

// Context owns every subsystem of a running game.
type Context struct {
	Settings config.Settings
	Backend  render.Backend

	Input    *input.Manager
	Tweens   *tween.Scheduler
	Textures *resource.Cache[render.Texture]
	Fonts    *resource.Cache[*fonts.Atlas]
	Canvas   *ui.Canvas
	Time     FrameTime

	font    *fonts.Atlas
	watcher *resource.Watcher
	screen  Screen
	next    Screen
	quit    bool
}

// New creates a context drawing through backend.
func New(settings config.Settings, backend render.Backend) (*Context, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	ctx := &Context{
		Settings: settings,
		Backend:  backend,
		Input:    input.NewManager(),
		Tweens:   tween.NewScheduler(),
	}
	if err := ctx.Input.Configure(settings.Input); err != nil {
		return nil, err
	}

	root := settings.Resources.Root
	ctx.Textures = resource.NewCache("texture", root, ctx.loadTexture, func(t render.Texture) { t.Dispose() })
	ctx.Fonts = resource.NewCache("font", root, ctx.loadFont, func(a *fonts.Atlas) { a.Dispose() })
	// Reloads update resources in place so labels and images that hold
	// them keep drawing the current contents.
	ctx.Textures.SetSwap(func(cur, fresh render.Texture) bool {
		s, ok := cur.(render.Swapper)
		return ok && s.Swap(fresh)
	})
	ctx.Fonts.SetSwap(func(cur, fresh *fonts.Atlas) bool {
		cur.Swap(fresh)
		return true
	})

	canvas, err := ui.NewCanvas(backend,
		float32(settings.Window.Width), float32(settings.Window.Height),
		settings.UI.BatchQuads, settings.UI.TextureSlots)
	if err != nil {
		return nil, err
	}
	ctx.Canvas = canvas

	if err := ctx.setupFont(); err != nil {
		canvas.Dispose()
		return nil, err
	}

	if settings.Resources.Watch {
		w, err := resource.NewWatcher(root)
		if err != nil {
			logx.Logger().Warn("engine: hot reload disabled", "root", root, "err", err)
		} else {
			w.Register(ctx.Textures)
			w.Register(ctx.Fonts)
			ctx.watcher = w
		}
	}
	logx.Logger().Info("engine: context created",
		"width", settings.Window.Width, "height", settings.Window.Height, "resources", root)
	return ctx, nil
}

func (ctx *Context) setupFont() error {
	if ctx.Settings.UI.Font == "" {
		atlas, err := fonts.Default(ctx.Backend, ctx.Settings.UI.FontSize)
		if err != nil {
			return err
		}
		ctx.font = atlas
		return nil
	}
	h, err := ctx.Fonts.Load(ctx.Settings.UI.Font)
	if err != nil {
		return err
	}
	ctx.font, err = ctx.Fonts.Resolve(h)
	return err
}

func (ctx *Context) loadTexture(path string) (render.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	logx.Logger().Debug("engine: image decoded", "path", path, "format", format, "size", img.Bounds().Size())
	return ctx.Backend.NewTexture(img)
}

func (ctx *Context) loadFont(path string) (*fonts.Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fonts.LoadTTF(ctx.Backend, data, ctx.Settings.UI.FontSize)
}

// Font returns the interface font.
func (ctx *Context) Font() *fonts.Atlas { return ctx.font }

// LoadTexture loads the image at path below the resource root, or shares
// the texture when it is already loaded. Each call must be paired with
// UnloadTexture. Hot reloads update the returned texture in place.
func (ctx *Context) LoadTexture(path string) (render.Texture, error) {
	h, err := ctx.Textures.Load(path)
	if err != nil {
		return nil, err
	}
	return ctx.Textures.Resolve(h)
}

// UnloadTexture gives back one reference taken by LoadTexture.
func (ctx *Context) UnloadTexture(path string) error {
	return ctx.Textures.Unload(path)
}

// SetScreen makes s the active screen at the start of the next update.
func (ctx *Context) SetScreen(s Screen) {
	ctx.next = s
}

// Screen returns the active screen.
func (ctx *Context) Screen() Screen { return ctx.screen }

// Quit asks the host to stop after the current frame.
func (ctx *Context) Quit() { ctx.quit = true }

// Quitting reports whether Quit was called.
func (ctx *Context) Quitting() bool { return ctx.quit }

// Resize follows the host window size.
func (ctx *Context) Resize(width, height int) {
	if ctx.Canvas.Size == (mgl32.Vec2{float32(width), float32(height)}) {
		return
	}
	ctx.Canvas.Resize(float32(width), float32(height))
}

// Update advances one frame of dt seconds with the input of snap.
//
// Order: file reloads, input bindings, the interface, tweens, then the
// screen. The screen sees the interface state of this frame and can use
// Canvas.IsInteracting to ignore pointer input meant for it.
func (ctx *Context) Update(snap input.Snapshot, dt float32) error {
	ctx.Time.advance(dt)
	if ctx.watcher != nil {
		if n := ctx.watcher.Poll(); n > 0 {
			logx.Logger().Info("engine: resources reloaded", "count", n)
		}
	}
	if err := ctx.switchScreen(); err != nil {
		return err
	}

	ctx.Input.Update(snap, dt)
	ctx.Canvas.Update(ctx.Input.Snapshot(), dt)
	ctx.Tweens.Update(dt)

	if ctx.screen == nil {
		return nil
	}
	if err := ctx.screen.Update(ctx, dt); err != nil {
		return fmt.Errorf("engine: screen update: %w", err)
	}
	return nil
}

func (ctx *Context) switchScreen() error {
	if ctx.next == nil {
		return nil
	}
	next := ctx.next
	ctx.next = nil
	if ctx.screen != nil {
		ctx.screen.Leave(ctx)
	}
	ctx.screen = next
	if err := next.Enter(ctx); err != nil {
		return fmt.Errorf("engine: enter screen %T: %w", next, err)
	}
	logx.Logger().Debug("engine: screen changed", "screen", fmt.Sprintf("%T", next))
	return nil
}

// Render draws the active screen, then the interface on top.
func (ctx *Context) Render() {
	if ctx.screen != nil {
		ctx.screen.Render(ctx)
	}
	ctx.Canvas.Render()
}

// Close leaves the active screen and releases every resource. Resources
// still loaded at this point are logged as leaks.
func (ctx *Context) Close() error {
	if ctx.screen != nil {
		ctx.screen.Leave(ctx)
		ctx.screen = nil
	}
	ctx.next = nil
	ctx.Tweens.StopAll()

	var err error
	if ctx.watcher != nil {
		err = ctx.watcher.Close()
		ctx.watcher = nil
	}
	if ctx.Settings.UI.Font == "" && ctx.font != nil {
		ctx.font.Dispose()
	} else if ctx.font != nil {
		err = errors.Join(err, ctx.Fonts.Unload(ctx.Settings.UI.Font))
	}
	ctx.font = nil
	ctx.Textures.UnloadAll()
	ctx.Fonts.UnloadAll()
	ctx.Canvas.Dispose()
	logx.Logger().Info("engine: context closed", "frames", ctx.Time.Frame)
	return err
}
