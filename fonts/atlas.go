// Package fonts rasterizes font faces into a single texture atlas and lays
// out text as batch quads.
package fonts

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/OpticalFlyer/vengine/render"
)

const (
	firstRune   = ' '
	lastRune    = '~'
	atlasWidth  = 512
	glyphMargin = 1
	fallback    = '?'
)

// Glyph locates one rasterized character in the atlas. Offset is the
// distance from the top-left of the line box to the top-left of the glyph
// image, in atlas pixels.
type Glyph struct {
	Offset  image.Point
	Size    image.Point
	Advance float32
	UV      [4]mgl32.Vec2
}

// Atlas is a bitmap font rasterized at one base size and scaled on draw.
type Atlas struct {
	face     font.Face
	texture  render.Texture
	glyphs   map[rune]Glyph
	baseSize float32
	height   float32
}

// NewAtlas rasterizes the printable ASCII range of face. baseSize is the
// pixel size face was created with.
func NewAtlas(factory render.TextureFactory, face font.Face, baseSize float32) (*Atlas, error) {
	m := face.Metrics()
	dot := fixed.Point26_6{X: 0, Y: m.Ascent}

	type placed struct {
		r     rune
		dr    image.Rectangle
		mask  image.Image
		maskp image.Point
		at    image.Point
	}

	var (
		items     []placed
		pen       = image.Pt(glyphMargin, glyphMargin)
		rowHeight int
	)
	for r := rune(firstRune); r <= lastRune; r++ {
		dr, mask, maskp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		w, h := dr.Dx(), dr.Dy()
		if pen.X+w+glyphMargin > atlasWidth {
			pen.X = glyphMargin
			pen.Y += rowHeight + glyphMargin
			rowHeight = 0
		}
		items = append(items, placed{r: r, dr: dr, mask: mask, maskp: maskp, at: pen})
		pen.X += w + glyphMargin
		rowHeight = max(rowHeight, h)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("fonts: face has no printable glyphs")
	}

	atlasHeight := pen.Y + rowHeight + glyphMargin
	img := image.NewRGBA(image.Rect(0, 0, atlasWidth, atlasHeight))

	a := &Atlas{
		face:     face,
		glyphs:   make(map[rune]Glyph, len(items)),
		baseSize: baseSize,
		height:   float32(m.Height) / 64,
	}
	src := image.NewUniform(color.White)
	for _, it := range items {
		dst := image.Rectangle{Min: it.at, Max: it.at.Add(it.dr.Size())}
		if it.mask != nil {
			draw.DrawMask(img, dst, src, image.Point{}, it.mask, it.maskp, draw.Over)
		}
		adv, _ := face.GlyphAdvance(it.r)
		a.glyphs[it.r] = Glyph{
			Offset:  it.dr.Min,
			Size:    it.dr.Size(),
			Advance: fixedToFloat(adv),
			UV:      render.SubUV(dst, atlasWidth, atlasHeight),
		}
	}

	tex, err := factory.NewTexture(img)
	if err != nil {
		return nil, fmt.Errorf("fonts: upload atlas: %w", err)
	}
	a.texture = tex
	return a, nil
}

// LoadTTF parses a TrueType or OpenType font and rasterizes it at size
// pixels.
func LoadTTF(factory render.TextureFactory, data []byte, size float32) (*Atlas, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fonts: new face: %w", err)
	}
	return NewAtlas(factory, face, size)
}

// Default rasterizes Go Regular at size pixels.
func Default(factory render.TextureFactory, size float32) (*Atlas, error) {
	return LoadTTF(factory, goregular.TTF, size)
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// Texture returns the atlas texture.
func (a *Atlas) Texture() render.Texture { return a.texture }

// BaseSize returns the size the atlas was rasterized at.
func (a *Atlas) BaseSize() float32 { return a.baseSize }

// LineHeight returns the distance between baselines at size.
func (a *Atlas) LineHeight(size float32) float32 {
	return a.height * size / a.baseSize
}

// Glyph returns the atlas entry for r, falling back to '?'.
func (a *Atlas) Glyph(r rune) (Glyph, bool) {
	if g, ok := a.glyphs[r]; ok {
		return g, true
	}
	g, ok := a.glyphs[fallback]
	return g, ok
}

// CalculateWidth returns the advance width of text drawn at size.
func (a *Atlas) CalculateWidth(text string, size float32) float32 {
	scale := size / a.baseSize
	var width float32
	prev := rune(-1)
	for _, r := range text {
		g, ok := a.Glyph(r)
		if !ok {
			continue
		}
		if prev >= 0 {
			width += fixedToFloat(a.face.Kern(prev, r)) * scale
		}
		width += g.Advance * scale
		prev = r
	}
	return width
}

// AppendQuads lays text out on one line starting at the top-left corner
// position and appends one quad per visible glyph.
func (a *Atlas) AppendQuads(dst []render.Quad, text string, position mgl32.Vec2, size float32, tint mgl32.Vec4) []render.Quad {
	scale := size / a.baseSize
	pen := position.X()
	prev := rune(-1)
	for _, r := range text {
		g, ok := a.Glyph(r)
		if !ok {
			continue
		}
		if prev >= 0 {
			pen += fixedToFloat(a.face.Kern(prev, r)) * scale
		}
		if g.Size.X > 0 && g.Size.Y > 0 {
			dst = append(dst, render.Quad{
				Position: mgl32.Vec2{
					pen + float32(g.Offset.X)*scale,
					position.Y() + float32(g.Offset.Y)*scale,
				},
				Size:    mgl32.Vec2{float32(g.Size.X) * scale, float32(g.Size.Y) * scale},
				UV:      g.UV,
				Color:   tint,
				Texture: a.texture,
			})
		}
		pen += g.Advance * scale
		prev = r
	}
	return dst
}

// Dispose releases the atlas texture.
func (a *Atlas) Dispose() {
	a.texture.Dispose()
}

// Swap exchanges the contents of a and b. Reloading a font swaps the fresh
// atlas into the one already in use and disposes the old contents.
func (a *Atlas) Swap(b *Atlas) {
	*a, *b = *b, *a
}
