package ui

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpticalFlyer/vengine/input"
)

func TestButton_ColorsAndClick(t *testing.T) {
	c, _ := newTestCanvas(t)
	clicks := 0
	b := NewButton(c.Root(), monoFont{}, "ok", 12, func() { clicks++ })
	b.Position = mgl32.Vec2{10, 10}
	pane := b.Content.(*Pane)
	assert.Equal(t, ButtonNormal, pane.Color)

	c.Update(frame(20, 20), 0.016)
	assert.Equal(t, ButtonHovered, pane.Color)

	c.Update(press(20, 20), 0.016)
	assert.Equal(t, ButtonPressed, pane.Color)
	assert.Same(t, b.Element, c.EventSystem().Focused(), "label ignores input")

	c.Update(release(20, 20), 0.016)
	assert.Equal(t, ButtonHovered, pane.Color)
	assert.Equal(t, 1, clicks)

	c.Update(frame(500, 500), 0.016)
	assert.Equal(t, ButtonNormal, pane.Color)
}

func TestButton_HiddenWhileHoveredResets(t *testing.T) {
	c, _ := newTestCanvas(t)
	b := NewButton(c.Root(), monoFont{}, "ok", 12, nil)
	b.Position = mgl32.Vec2{10, 10}
	pane := b.Content.(*Pane)

	c.Update(frame(20, 20), 0.016)
	require.Equal(t, ButtonHovered, pane.Color)

	b.SetVisibleRecursive(false)
	c.Update(frame(20, 20), 0.016)
	assert.False(t, b.Events.MouseOver())
	assert.Equal(t, ButtonNormal, pane.Color)

	b.SetVisibleRecursive(true)
	c.Update(frame(20, 20), 0.016)
	assert.Equal(t, ButtonHovered, pane.Color)
}

func TestButton_CentersLabel(t *testing.T) {
	c, _ := newTestCanvas(t)
	b := NewButton(c.Root(), monoFont{}, "ab", 10, nil)
	c.UpdateLayout()
	// Label is 10x10 inside a 100x30 button with margins 8/6/8/6.
	assert.Equal(t, mgl32.Vec2{45, 10}, b.Label.Position)
}

func TestPanel_DragAndDock(t *testing.T) {
	c, _ := newTestCanvas(t)
	p := NewPanel(c.Root(), monoFont{}, "tools", 12, mgl32.Vec2{100, 100}, mgl32.Vec2{200, 150})

	c.Update(press(150, 110), 0.016)
	assert.True(t, p.IsDragging())
	assert.True(t, c.IsInteracting())

	c.Update(hold(300, 300), 0.016)
	assert.Equal(t, mgl32.Vec2{250, 290}, p.Position)

	c.Update(hold(5, 300), 0.016)
	assert.Equal(t, mgl32.Vec2{0, 0}, p.Position, "dock preview snaps to the edge")
	assert.Equal(t, previewColor, p.Content.(*Pane).Color)

	released := release(5, 300)
	c.Update(released, 0.016)
	assert.False(t, p.IsDragging())
	assert.True(t, p.Docked())
	assert.Equal(t, mgl32.Vec2{dockedSize, 600}, p.Size)
	assert.Equal(t, panelColor, p.Content.(*Pane).Color)

	c.Resize(800, 400)
	c.Update(frame(700, 300), 0.016)
	assert.Equal(t, float32(400), p.Size.Y(), "docked panels follow the canvas")

	// Dragging the title bar undocks and restores the old size.
	c.Update(press(50, 10), 0.016)
	assert.False(t, p.Docked())
	c.Update(hold(400, 300), 0.016)
	assert.False(t, p.Docked())
	assert.Equal(t, mgl32.Vec2{200, 150}, p.Size)
	assert.Equal(t, mgl32.Vec2{350, 290}, p.Position)
}

func TestPanel_ResizeEdges(t *testing.T) {
	tests := []struct {
		name     string
		from, to mgl32.Vec2
		pos      mgl32.Vec2
		size     mgl32.Vec2
	}{
		{"right edge", mgl32.Vec2{298, 200}, mgl32.Vec2{348, 260}, mgl32.Vec2{100, 100}, mgl32.Vec2{250, 150}},
		{"bottom edge", mgl32.Vec2{200, 248}, mgl32.Vec2{180, 298}, mgl32.Vec2{100, 100}, mgl32.Vec2{200, 200}},
		{"left edge keeps the right edge", mgl32.Vec2{102, 200}, mgl32.Vec2{52, 200}, mgl32.Vec2{50, 100}, mgl32.Vec2{250, 150}},
		{"bottom right corner", mgl32.Vec2{297, 247}, mgl32.Vec2{327, 277}, mgl32.Vec2{100, 100}, mgl32.Vec2{230, 180}},
		{"top left corner", mgl32.Vec2{101, 101}, mgl32.Vec2{81, 91}, mgl32.Vec2{80, 90}, mgl32.Vec2{220, 160}},
		{"clamped to the minimum", mgl32.Vec2{298, 248}, mgl32.Vec2{0, 0}, mgl32.Vec2{100, 100}, mgl32.Vec2{minPanelWidth, minPanelHeight}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCanvas(t)
			p := NewPanel(c.Root(), monoFont{}, "tools", 12, mgl32.Vec2{100, 100}, mgl32.Vec2{200, 150})

			c.Update(press(tt.from.X(), tt.from.Y()), 0.016)
			assert.True(t, p.IsResizing())
			assert.False(t, p.IsDragging())
			c.Update(hold(tt.to.X(), tt.to.Y()), 0.016)
			assert.Equal(t, tt.pos, p.Position)
			assert.Equal(t, tt.size, p.Size)

			c.Update(release(tt.to.X(), tt.to.Y()), 0.016)
			assert.False(t, p.IsResizing())
			c.Update(hold(tt.to.X()+40, tt.to.Y()+40), 0.016)
			assert.Equal(t, tt.size, p.Size, "released panels stop resizing")
		})
	}
}

func TestPanel_DockedResizesFreeSideOnly(t *testing.T) {
	c, _ := newTestCanvas(t)
	p := NewPanel(c.Root(), monoFont{}, "tools", 12, mgl32.Vec2{100, 100}, mgl32.Vec2{200, 150})

	c.Update(press(150, 110), 0.016)
	c.Update(hold(5, 300), 0.016)
	c.Update(release(5, 300), 0.016)
	require.True(t, p.Docked())
	require.Equal(t, mgl32.Vec2{dockedSize, 600}, p.Size)

	// The edge against the canvas border does nothing.
	c.Update(press(2, 300), 0.016)
	assert.False(t, p.IsResizing())
	c.Update(release(2, 300), 0.016)

	c.Update(press(198, 300), 0.016)
	assert.True(t, p.IsResizing())
	c.Update(hold(298, 100), 0.016)
	assert.Equal(t, mgl32.Vec2{0, 0}, p.Position)
	assert.Equal(t, mgl32.Vec2{300, 600}, p.Size, "only the width follows the cursor")
	c.Update(release(298, 100), 0.016)

	c.Resize(800, 400)
	c.Update(frame(700, 300), 0.016)
	assert.Equal(t, mgl32.Vec2{300, 400}, p.Size, "docked width survives a canvas resize")

	// Undocking brings back the floating size.
	c.Update(press(50, 10), 0.016)
	c.Update(hold(400, 300), 0.016)
	assert.False(t, p.Docked())
	assert.Equal(t, mgl32.Vec2{200, 150}, p.Size)
}

func TestPanel_BodyStacksChildren(t *testing.T) {
	c, _ := newTestCanvas(t)
	p := NewPanel(c.Root(), monoFont{}, "tools", 12, mgl32.Vec2{0, 0}, mgl32.Vec2{200, 150})
	a := NewButton(p.Body, monoFont{}, "one", 12, nil)
	b := NewButton(p.Body, monoFont{}, "two", 12, nil)

	c.Update(&input.Snapshot{Cursor: mgl32.Vec2{700, 500}}, 0.016)

	assert.Equal(t, mgl32.Vec2{0, titleBarHeight}, p.Body.Position)
	assert.Equal(t, float32(200), a.Size.X())
	assert.Equal(t, a.Position.Y()+a.Size.Y()+4, b.Position.Y())
}
