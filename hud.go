package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpticalFlyer/vengine/engine"
	"github.com/OpticalFlyer/vengine/input"
	"github.com/OpticalFlyer/vengine/tween"
	"github.com/OpticalFlyer/vengine/ui"
)

const (
	hudTextSize   = 14
	titleTextSize = 22
	hintText      = "WASD pan   -/= zoom   wheel zoom   drag pan   click mark   F1 debug"
)

var (
	swatchFrom = mgl32.Vec4{0.13, 0.59, 0.95, 1}
	swatchTo   = mgl32.Vec4{0.96, 0.26, 0.21, 1}
	hintColor  = mgl32.Vec4{1, 1, 1, 0.7}
)

// hud is the demo's interface: a dockable control panel and a hint line.
type hud struct {
	panel  *ui.Panel
	zoom   *ui.Element
	tiles  *ui.Element
	swatch *ui.Element
	pulse  *tween.Sequence
}

// buildHUD creates the interface on ctx's canvas. title may be nil, in
// which case the panel's font is used for the heading.
func buildHUD(ctx *engine.Context, w *world, title ui.Font) *hud {
	font := ctx.Font()
	root := ctx.Canvas.Root()
	h := &hud{}

	// The hint layer covers the canvas and lets input through.
	overlay := ui.NewElement(root)
	overlay.IgnoreInput = true
	overlay.Layout = ui.AlignLayout{Horizontal: ui.AlignEnd, Vertical: ui.AlignEnd}
	overlay.OnUpdate = func(e *ui.Element, _ *input.Snapshot, _ float32) {
		e.Size = e.Canvas().Size
	}
	hint := ui.NewLabel(overlay, font, hintText, hudTextSize)
	hint.IgnoreInput = true
	hint.Margin = ui.Uniform(8)
	hint.Content.(*ui.Label).Color = hintColor

	h.panel = ui.NewPanel(root, font, "Controls", hudTextSize, mgl32.Vec2{10, 10}, mgl32.Vec2{220, 300})
	body := h.panel.Body

	if title == nil {
		title = font
	}
	heading := ui.NewLabel(body, title, "vengine", titleTextSize)
	heading.IgnoreInput = true
	heading.Margin = ui.Margin{Left: 8, Top: 6, Right: 8}

	h.zoom = ui.NewLabel(body, font, "", hudTextSize)
	h.zoom.Margin = ui.Margin{Left: 8, Right: 8}
	h.tiles = ui.NewLabel(body, font, "", hudTextSize)
	h.tiles.Margin = ui.Margin{Left: 8, Right: 8}
	h.zoom.OnUpdate = func(e *ui.Element, _ *input.Snapshot, _ float32) {
		e.SetText(fmt.Sprintf("Zoom: x%.2f", w.cam.Scale))
	}
	h.tiles.OnUpdate = func(e *ui.Element, _ *input.Snapshot, _ float32) {
		t := w.tiles
		if t.Empty() {
			e.SetText("Tiles: none")
			return
		}
		e.SetText(fmt.Sprintf("Tiles: %d,%d - %d,%d", t.MinX, t.MinY, t.MaxX, t.MaxY))
	}

	h.swatch = ui.NewPane(body, swatchFrom)
	h.swatch.Size = mgl32.Vec2{0, 16}
	h.swatch.Margin = ui.Margin{Left: 8, Right: 8}
	h.pulse = tween.NewSequence(
		tween.New(0.8, tween.InOutSine, h.tint),
		tween.Delay(0.2),
	)
	h.pulse.Direction = tween.Alternate
	h.pulse.Iterations = tween.Infinite

	pulse := ui.NewButton(body, font, "Pulse", hudTextSize, nil)
	pulse.OnClick(func() {
		if h.pulse.State() == tween.Running {
			h.pulse.Stop()
			h.tint(0)
			pulse.Label.SetText("Pulse")
			return
		}
		ctx.Tweens.Play(h.pulse)
		pulse.Label.SetText("Stop")
	})
	ui.NewButton(body, font, "Reset view", hudTextSize, func() { w.resetView(ctx) })
	ui.NewButton(body, font, "Quit", hudTextSize, ctx.Quit)
	return h
}

func (h *hud) tint(v float32) {
	h.swatch.Content.(*ui.Pane).Color = swatchFrom.Add(swatchTo.Sub(swatchFrom).Mul(v))
}
