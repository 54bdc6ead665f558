package ui

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Button colors.
var (
	ButtonNormal  = rgba(150, 150, 150, 255)
	ButtonHovered = rgba(180, 180, 180, 255)
	ButtonPressed = rgba(100, 100, 100, 255)
	ButtonBorder  = rgba(0, 0, 0, 255)
)

func rgba(r, g, b, a uint8) mgl32.Vec4 {
	return mgl32.Vec4{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// Button is a pane with a centered label that reports clicks.
type Button struct {
	*Element
	Label   *Element
	onClick func()
}

// NewButton creates a 100x30 button under parent. onClick may be nil.
func NewButton(parent *Element, font Font, text string, textSize float32, onClick func()) *Button {
	e := NewElement(parent)
	e.Name = text
	e.Size = mgl32.Vec2{100, 30}
	e.Layout = AlignLayout{Horizontal: AlignCenter, Vertical: AlignCenter}
	e.Content = &Pane{Color: ButtonNormal, Border: 1, BorderColor: ButtonBorder}

	label := NewLabel(e, font, text, textSize)
	label.IgnoreInput = true
	label.Margin = Margin{Left: 8, Top: 6, Right: 8, Bottom: 6}

	b := &Button{Element: e, Label: label, onClick: onClick}
	e.Events.Entered.Add(func(*Element, MouseEvent) { b.refresh() })
	e.Events.Left.Add(func(*Element, MouseEvent) { b.refresh() })
	e.Events.MousePressed.Add(func(*Element, MouseEvent) { b.refresh() })
	e.Events.MouseReleased.Add(func(*Element, MouseEvent) { b.refresh() })
	e.Events.Clicked.Add(func(*Element, MouseEvent) {
		if b.onClick != nil {
			b.onClick()
		}
	})
	return b
}

// OnClick replaces the click callback.
func (b *Button) OnClick(fn func()) { b.onClick = fn }

func (b *Button) refresh() {
	pane := b.Content.(*Pane)
	switch {
	case b.Events.MouseDown():
		pane.Color = ButtonPressed
	case b.Events.MouseOver():
		pane.Color = ButtonHovered
	default:
		pane.Color = ButtonNormal
	}
}
