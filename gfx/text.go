package gfx

import (
	"bytes"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/OpticalFlyer/vengine/render"
	"github.com/OpticalFlyer/vengine/ui"
)

// maxGlyphTextures bounds the glyph image wrappers kept between frames.
const maxGlyphTextures = 1024

// TextFont shapes text with ebiten's text/v2 package. Unlike the bitmap
// atlas it handles kerning, ligatures and any script the font covers, at
// the cost of one texture per glyph image.
type TextFont struct {
	source   *text.GoTextFaceSource
	faces    map[float32]*text.GoTextFace
	textures map[*ebiten.Image]*Texture
	glyphs   []text.Glyph
}

var _ ui.Font = (*TextFont)(nil)

// NewTextFont parses a TrueType or OpenType font.
func NewTextFont(data []byte) (*TextFont, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gfx: parse font: %w", err)
	}
	return &TextFont{
		source:   src,
		faces:    make(map[float32]*text.GoTextFace),
		textures: make(map[*ebiten.Image]*Texture),
	}, nil
}

// DefaultTextFont returns Go Regular.
func DefaultTextFont() (*TextFont, error) {
	return NewTextFont(goregular.TTF)
}

func (f *TextFont) face(size float32) *text.GoTextFace {
	face, ok := f.faces[size]
	if !ok {
		face = &text.GoTextFace{Source: f.source, Size: float64(size)}
		f.faces[size] = face
	}
	return face
}

func (f *TextFont) CalculateWidth(s string, size float32) float32 {
	return float32(text.Advance(s, f.face(size)))
}

func (f *TextFont) AppendQuads(dst []render.Quad, s string, position mgl32.Vec2, size float32, color mgl32.Vec4) []render.Quad {
	f.glyphs = text.AppendGlyphs(f.glyphs[:0], s, f.face(size), nil)
	for _, g := range f.glyphs {
		if g.Image == nil {
			continue
		}
		b := g.Image.Bounds()
		dst = append(dst, render.NewTextureQuad(
			position.Add(mgl32.Vec2{float32(g.X), float32(g.Y)}),
			mgl32.Vec2{float32(b.Dx()), float32(b.Dy())},
			f.texture(g.Image),
			color,
		))
	}
	return dst
}

// texture returns a stable wrapper for a glyph image so the batch can
// share its slot between quads.
func (f *TextFont) texture(img *ebiten.Image) *Texture {
	if t, ok := f.textures[img]; ok {
		return t
	}
	if len(f.textures) >= maxGlyphTextures {
		clear(f.textures)
	}
	t := borrowTexture(img)
	f.textures[img] = t
	return t
}
