// Package gfx runs the engine on ebiten: textures, the triangle backend of
// the quad batch, input polling, shaped text and the game host.
package gfx

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/vengine/render"
)

var nextHandle atomic.Uint32

// Texture is an ebiten image used as a batch texture.
type Texture struct {
	img    *ebiten.Image
	handle uint32
	// owned textures deallocate their image on Dispose.
	owned bool
}

var _ render.Swapper = (*Texture)(nil)

// NewTexture wraps img. The texture takes ownership of img.
func NewTexture(img *ebiten.Image) *Texture {
	return &Texture{img: img, handle: nextHandle.Add(1), owned: true}
}

// borrowTexture wraps an image owned by someone else, such as a glyph
// cached by ebiten.
func borrowTexture(img *ebiten.Image) *Texture {
	return &Texture{img: img, handle: nextHandle.Add(1)}
}

func (t *Texture) Handle() uint32 { return t.handle }

// Image returns the wrapped image.
func (t *Texture) Image() *ebiten.Image { return t.img }

func (t *Texture) Size() (width, height int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Swap exchanges images with other, which must be a *Texture. Handles stay.
func (t *Texture) Swap(other render.Texture) bool {
	o, ok := other.(*Texture)
	if !ok || o == t {
		return false
	}
	t.img, o.img = o.img, t.img
	t.owned, o.owned = o.owned, t.owned
	return true
}

func (t *Texture) Dispose() {
	if t.owned && t.img != nil {
		t.img.Deallocate()
	}
	t.img = nil
}
