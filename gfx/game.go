package gfx

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/OpticalFlyer/vengine/config"
	"github.com/OpticalFlyer/vengine/engine"
	"github.com/OpticalFlyer/vengine/input"
	"github.com/OpticalFlyer/vengine/ui"
)

// DebugBinding names the action that toggles the debug overlay.
const DebugBinding = "debug"

const defaultTPS = 60

// Game hosts an engine context in ebiten's loop.
type Game struct {
	ctx     *engine.Context
	backend *Backend
	input   InputPoller

	debugMode bool
}

var _ ebiten.Game = (*Game)(nil)

// NewGame returns a host for ctx, which must draw through backend.
func NewGame(ctx *engine.Context, backend *Backend) *Game {
	return &Game{ctx: ctx, backend: backend}
}

// ConfigureWindow applies the window and display settings.
func ConfigureWindow(w config.Window, d config.Display) {
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	if w.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetVsyncEnabled(w.VSync)
	if d.UpdateFrequency > 0 {
		ebiten.SetTPS(d.UpdateFrequency)
	}
}

func (g *Game) Update() error {
	if g.ctx.Quitting() {
		return ebiten.Termination
	}
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = defaultTPS
	}
	if err := g.ctx.Update(g.input.Poll(), 1/float32(tps)); err != nil {
		return err
	}
	if b, err := input.Lookup[*input.ActionBinding](g.ctx.Input, DebugBinding); err == nil && b.Get() {
		g.debugMode = !g.debugMode
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.SetTarget(screen)
	g.ctx.Render()
	g.backend.SetTarget(nil)

	if g.debugMode {
		g.drawDebug(screen)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	redColor := color.RGBA{R: 255, A: 255}
	events := g.ctx.Canvas.EventSystem()
	cursor := g.ctx.Input.Snapshot().Cursor
	if e := events.Topmost(cursor); e != nil {
		outline(screen, e, redColor)
	}
	if e := events.Focused(); e != nil {
		outline(screen, e, color.RGBA{G: 255, A: 255})
	}

	stats := g.ctx.Canvas.Batch().Stats()
	t := g.ctx.Time
	debugText := fmt.Sprintf("FPS: %.1f TPS: %.1f\nFrame: %d\nQuads: %d Draws: %d Flushes: %d\nTweens: %d Textures: %d\nCursor: %.0f,%.0f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), t.Frame,
		stats.Quads, stats.DrawCalls, stats.ImplicitFlushes,
		g.ctx.Tweens.Len(), g.ctx.Textures.Len(),
		cursor.X(), cursor.Y())
	ebitenutil.DebugPrint(screen, debugText)
}

func outline(screen *ebiten.Image, e *ui.Element, clr color.Color) {
	b := e.Bounds()
	vector.StrokeRect(screen, b.X, b.Y, b.Width, b.Height, 1, clr, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ctx.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
