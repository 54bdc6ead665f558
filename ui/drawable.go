package ui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpticalFlyer/vengine/render"
)

// Drawable is the visual content of an element: *Image, *Label or *Pane.
type Drawable interface {
	drawable()
}

// Image draws a texture over the element's bounds. Without a texture it
// fills the bounds with Color.
type Image struct {
	Texture render.Texture
	Color   mgl32.Vec4
	Tint    mgl32.Vec4
	// UV selects part of the texture. The zero value means the whole
	// texture.
	UV [4]mgl32.Vec2
}

// Label draws one line of text starting at the element's top-left corner.
type Label struct {
	Text     string
	Font     Font
	TextSize float32
	Color    mgl32.Vec4
}

// Pane fills the element's bounds, optionally with a border drawn inside
// them.
type Pane struct {
	Color       mgl32.Vec4
	Border      float32
	BorderColor mgl32.Vec4
}

func (*Image) drawable() {}
func (*Label) drawable() {}
func (*Pane) drawable()  {}

func (l *Label) measure() mgl32.Vec2 {
	return mgl32.Vec2{l.Font.CalculateWidth(l.Text, l.TextSize), l.TextSize}
}

func appendContent(dst []render.Quad, e *Element) []render.Quad {
	switch c := e.Content.(type) {
	case nil:
		return dst
	case *Image:
		uv := c.UV
		if uv == ([4]mgl32.Vec2{}) {
			uv = render.FullUV
		}
		color := c.Color
		if c.Texture != nil {
			color = c.Tint
		}
		return append(dst, render.Quad{
			Position: e.AbsolutePosition(),
			Size:     e.Size,
			UV:       uv,
			Color:    color,
			Texture:  c.Texture,
		})
	case *Label:
		if c.Font == nil || c.Text == "" {
			return dst
		}
		return c.Font.AppendQuads(dst, c.Text, e.AbsolutePosition(), c.TextSize, c.Color)
	case *Pane:
		pos := e.AbsolutePosition()
		dst = append(dst, render.NewColorQuad(pos, e.Size, c.Color))
		if b := c.Border; b > 0 {
			w, h := e.Size.X(), e.Size.Y()
			dst = append(dst,
				render.NewColorQuad(pos, mgl32.Vec2{w, b}, c.BorderColor),
				render.NewColorQuad(pos.Add(mgl32.Vec2{0, h - b}), mgl32.Vec2{w, b}, c.BorderColor),
				render.NewColorQuad(pos.Add(mgl32.Vec2{0, b}), mgl32.Vec2{b, h - 2*b}, c.BorderColor),
				render.NewColorQuad(pos.Add(mgl32.Vec2{w - b, b}), mgl32.Vec2{b, h - 2*b}, c.BorderColor),
			)
		}
		return dst
	default:
		panic(fmt.Sprintf("ui: unknown drawable %T", c))
	}
}

// NewImage creates an element drawing tex at size.
func NewImage(parent *Element, tex render.Texture, size mgl32.Vec2) *Element {
	e := NewElement(parent)
	e.Size = size
	e.Content = &Image{Texture: tex, Color: render.White, Tint: render.White}
	return e
}

// NewLabel creates an element showing text, sized to fit it.
func NewLabel(parent *Element, font Font, text string, textSize float32) *Element {
	e := NewElement(parent)
	l := &Label{Text: text, Font: font, TextSize: textSize, Color: render.White}
	e.Content = l
	if font != nil {
		e.Size = l.measure()
	}
	return e
}

// NewPane creates an element filled with color.
func NewPane(parent *Element, color mgl32.Vec4) *Element {
	e := NewElement(parent)
	e.Content = &Pane{Color: color}
	return e
}

// SetText changes the text of a label element and resizes it to fit.
func (e *Element) SetText(text string) {
	l, ok := e.Content.(*Label)
	if !ok {
		panic(fmt.Sprintf("ui: SetText on element with %T content", e.Content))
	}
	l.Text = text
	if l.Font != nil {
		e.Size = l.measure()
	}
}
