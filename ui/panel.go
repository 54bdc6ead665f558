package ui

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpticalFlyer/vengine/input"
)

type DockState int

const (
	dockNone DockState = iota
	dockLeft
	dockRight
	dockTop
	dockBottom
)

// ResizeState is the edge or corner of a panel being dragged.
type ResizeState int

const (
	resizeNone ResizeState = iota
	resizeLeft
	resizeRight
	resizeTop
	resizeBottom
	resizeTopLeft
	resizeTopRight
	resizeBottomLeft
	resizeBottomRight
)

type resizableSides struct {
	left   bool
	right  bool
	top    bool
	bottom bool
}

const (
	titleBarHeight = 20.0
	dockThreshold  = 20.0
	dockedSize     = 200.0
	resizeArea     = 5.0
	minPanelWidth  = 100.0
	minPanelHeight = 50.0
	previewAlpha   = 84
	panelAlpha     = 200
)

var (
	panelColor   = rgba(100, 100, 100, panelAlpha)
	titleColor   = rgba(60, 60, 60, panelAlpha)
	previewColor = rgba(33, 150, 243, previewAlpha)
	previewTitle = rgba(60, 60, 60, previewAlpha)
)

// Panel is a window with a title bar that can be dragged around the canvas
// and docked to its edges. Its edges and corners resize it; a docked panel
// only resizes on the side facing the canvas. Children go into Body, which
// stacks them vertically.
type Panel struct {
	*Element
	TitleBar *Element
	Title    *Element
	Body     *Element

	// Docking state
	dockState     DockState
	isDockPreview bool
	// dockExtent is the width or height of the panel while docked.
	dockExtent    float32

	// Undocked dimensions (saved before docking)
	undockedPos  mgl32.Vec2
	undockedSize mgl32.Vec2

	// Interaction state
	isDragging  bool
	isResizing  bool
	dragStart   mgl32.Vec2
	resizeState ResizeState
	startPos    mgl32.Vec2
	startSize   mgl32.Vec2

	resizableSides resizableSides
}

// NewPanel creates a panel under parent.
func NewPanel(parent *Element, font Font, title string, textSize float32, position, size mgl32.Vec2) *Panel {
	e := NewElement(parent)
	e.Name = title
	e.Position = position
	e.Size = size
	e.IgnoreLayout = true
	e.Content = &Pane{Color: panelColor}

	bar := NewElement(e)
	bar.Content = &Pane{Color: titleColor}
	bar.Layout = AlignLayout{Horizontal: AlignStart, Vertical: AlignCenter}
	bar.IgnoreLayout = true

	label := NewLabel(bar, font, title, textSize)
	label.IgnoreInput = true
	label.Margin = Margin{Left: 6}

	body := NewElement(e)
	body.IgnoreLayout = true
	body.IgnoreInput = true
	body.Layout = StackLayout{
		Orientation: Vertical,
		Spacing:     4,
		Horizontal:  AlignStretch,
		Vertical:    AlignStart,
	}

	p := &Panel{
		Element:        e,
		TitleBar:       bar,
		Title:          label,
		Body:           body,
		undockedPos:    position,
		undockedSize:   size,
		dockExtent:     dockedSize,
		resizableSides: resizableSides{
			left:   true,
			right:  true,
			top:    true,
			bottom: true,
		},
	}
	pressed := func(_ *Element, ev MouseEvent) {
		if ev.Button == input.MouseLeft {
			p.press(ev.Position)
		}
	}
	bar.Events.MousePressed.Add(pressed)
	e.Events.MousePressed.Add(pressed)
	e.OnUpdate = func(_ *Element, snap *input.Snapshot, _ float32) {
		p.update(snap)
	}
	p.layoutParts()
	return p
}

// IsDragging reports whether the title bar is being dragged.
func (p *Panel) IsDragging() bool { return p.isDragging }

// IsResizing reports whether an edge or corner is being dragged.
func (p *Panel) IsResizing() bool { return p.isResizing }

// Docked reports whether the panel is docked to a canvas edge.
func (p *Panel) Docked() bool { return p.dockState != dockNone && !p.isDockPreview }

// press starts a resize when cursor is on a resizable edge, otherwise a drag
// when it is on the title bar.
func (p *Panel) press(cursor mgl32.Vec2) {
	if state := p.getResizeArea(cursor); state != resizeNone {
		p.isResizing = true
		p.resizeState = state
		p.dragStart = cursor
		p.startPos = p.Position
		p.startSize = p.Size
		return
	}
	if p.isInTitleBar(cursor) {
		p.beginDrag(cursor)
	}
}

func (p *Panel) isInTitleBar(cursor mgl32.Vec2) bool {
	x, y := cursor.X(), cursor.Y()
	return x >= p.Position.X() && x <= p.Position.X()+p.Size.X() &&
		y >= p.Position.Y() && y <= p.Position.Y()+titleBarHeight
}

// getResizeArea returns the edge or corner under cursor. Edges are
// resizeArea thick on either side of the border.
func (p *Panel) getResizeArea(cursor mgl32.Vec2) ResizeState {
	x, y := cursor.X(), cursor.Y()
	x0, y0 := p.Position.X(), p.Position.Y()
	x1, y1 := x0+p.Size.X(), y0+p.Size.Y()
	near := func(v, edge float32) bool {
		return v >= edge-resizeArea && v <= edge+resizeArea
	}

	left := near(x, x0) && p.resizableSides.left
	right := near(x, x1) && p.resizableSides.right
	top := near(y, y0) && p.resizableSides.top
	bottom := near(y, y1) && p.resizableSides.bottom

	switch {
	case left && top:
		return resizeTopLeft
	case right && top:
		return resizeTopRight
	case left && bottom:
		return resizeBottomLeft
	case right && bottom:
		return resizeBottomRight
	case left:
		return resizeLeft
	case right:
		return resizeRight
	case top:
		return resizeTop
	case bottom:
		return resizeBottom
	}
	return resizeNone
}

// updateResizableSides leaves only the side facing the canvas resizable
// while docked.
func (p *Panel) updateResizableSides() {
	free := p.dockState == dockNone
	p.resizableSides = resizableSides{
		left:   free || p.dockState == dockRight,
		right:  free || p.dockState == dockLeft,
		top:    free || p.dockState == dockBottom,
		bottom: free || p.dockState == dockTop,
	}
}

func (p *Panel) beginDrag(cursor mgl32.Vec2) {
	p.isDragging = true
	if p.dockState == dockNone {
		// Save current undocked state before potential docking
		p.undockedPos = p.Position
		p.undockedSize = p.Size
	} else {
		// Undocking - restore previous undocked dimensions
		relativeX := (cursor.X() - p.Position.X()) / p.Size.X()
		p.dockState = dockNone
		p.isDockPreview = false
		p.Size = p.undockedSize
		p.Position = mgl32.Vec2{
			cursor.X() - p.Size.X()*relativeX,
			cursor.Y() - titleBarHeight/2,
		}
		p.updateResizableSides()
	}
	p.dragStart = cursor.Sub(p.Position)
}

func (p *Panel) update(snap *input.Snapshot) {
	if p.isDragging {
		if snap.ButtonDown(input.MouseLeft) {
			p.Position = snap.Cursor.Sub(p.dragStart)
			p.checkDocking(snap.Cursor)
		} else {
			p.isDragging = false
			if p.isDockPreview {
				p.isDockPreview = false
			}
		}
	}
	if p.isResizing {
		if snap.ButtonDown(input.MouseLeft) {
			p.dragEdges(snap.Cursor)
		} else {
			p.isResizing = false
			p.resizeState = resizeNone
		}
	}
	if p.dockState != dockNone {
		p.applyDock()
	}
	p.layoutParts()
}

func (p *Panel) windowSize() mgl32.Vec2 {
	if p.canvas == nil {
		return mgl32.Vec2{}
	}
	return p.canvas.Size
}

func (p *Panel) checkDocking(cursor mgl32.Vec2) {
	prevDockState := p.dockState
	win := p.windowSize()
	x, y := cursor.X(), cursor.Y()

	switch {
	case x < dockThreshold:
		p.dockState = dockLeft
	case win.X()-x < dockThreshold:
		p.dockState = dockRight
	case y < dockThreshold:
		p.dockState = dockTop
	case win.Y()-y < dockThreshold:
		p.dockState = dockBottom
	default:
		p.dockState = dockNone
		if p.isDockPreview {
			// Keep following the cursor at the undocked size
			p.Size = p.undockedSize
		}
		p.isDockPreview = false
		p.updateResizableSides()
		return
	}

	// Save undocked dimensions before preview if not already in preview
	if prevDockState == dockNone && !p.isDockPreview {
		p.undockedSize = p.Size
		p.undockedPos = p.Position
		p.dockExtent = dockedSize
	}
	p.isDockPreview = true
	p.updateResizableSides()
}

// dragEdges moves the dragged edges with the cursor. The opposite edges stay
// put and the panel never shrinks below the minimum size.
func (p *Panel) dragEdges(cursor mgl32.Vec2) {
	d := cursor.Sub(p.dragStart)
	x, y := p.startPos.X(), p.startPos.Y()
	w, h := p.startSize.X(), p.startSize.Y()

	switch p.resizeState {
	case resizeLeft, resizeTopLeft, resizeBottomLeft:
		w = max(minPanelWidth, p.startSize.X()-d.X())
		x = p.startPos.X() + p.startSize.X() - w
	case resizeRight, resizeTopRight, resizeBottomRight:
		w = max(minPanelWidth, p.startSize.X()+d.X())
	}
	switch p.resizeState {
	case resizeTop, resizeTopLeft, resizeTopRight:
		h = max(minPanelHeight, p.startSize.Y()-d.Y())
		y = p.startPos.Y() + p.startSize.Y() - h
	case resizeBottom, resizeBottomLeft, resizeBottomRight:
		h = max(minPanelHeight, p.startSize.Y()+d.Y())
	}

	switch p.dockState {
	case dockLeft, dockRight:
		p.dockExtent = w
	case dockTop, dockBottom:
		p.dockExtent = h
	default:
		p.Position = mgl32.Vec2{x, y}
		p.Size = mgl32.Vec2{w, h}
		p.undockedPos = p.Position
		p.undockedSize = p.Size
	}
}

// applyDock snaps a docked panel to its edge of the canvas.
func (p *Panel) applyDock() {
	win := p.windowSize()
	ext := p.dockExtent
	switch p.dockState {
	case dockLeft:
		p.Position = mgl32.Vec2{0, 0}
		p.Size = mgl32.Vec2{ext, win.Y()}
	case dockRight:
		p.Position = mgl32.Vec2{win.X() - ext, 0}
		p.Size = mgl32.Vec2{ext, win.Y()}
	case dockTop:
		p.Position = mgl32.Vec2{0, 0}
		p.Size = mgl32.Vec2{win.X(), ext}
	case dockBottom:
		p.Position = mgl32.Vec2{0, win.Y() - ext}
		p.Size = mgl32.Vec2{win.X(), ext}
	}
}

// layoutParts sizes the title bar and body to the panel and colors them
// for the dock preview.
func (p *Panel) layoutParts() {
	p.TitleBar.Position = mgl32.Vec2{}
	p.TitleBar.Size = mgl32.Vec2{p.Size.X(), titleBarHeight}
	p.Body.Position = mgl32.Vec2{0, titleBarHeight}
	p.Body.Size = mgl32.Vec2{p.Size.X(), max(p.Size.Y()-titleBarHeight, 0)}

	bg, title := panelColor, titleColor
	if p.isDockPreview {
		bg, title = previewColor, previewTitle
	}
	p.Content.(*Pane).Color = bg
	p.TitleBar.Content.(*Pane).Color = title
}
