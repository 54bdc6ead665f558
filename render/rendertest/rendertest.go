// Package rendertest provides an in-memory render.Backend for tests.
package rendertest

import (
	"image"

	"github.com/OpticalFlyer/vengine/render"
)

// Texture is a texture that only remembers its size.
type Texture struct {
	ID            uint32
	Width, Height int
	Disposed      bool
}

func (t *Texture) Handle() uint32             { return t.ID }
func (t *Texture) Size() (width, height int) { return t.Width, t.Height }
func (t *Texture) Dispose()                  { t.Disposed = true }

// Swap exchanges sizes with other, which must be a *Texture. IDs stay.
func (t *Texture) Swap(other render.Texture) bool {
	o, ok := other.(*Texture)
	if !ok || o == t {
		return false
	}
	t.Width, o.Width = o.Width, t.Width
	t.Height, o.Height = o.Height, t.Height
	return true
}

// DrawCall is one recorded Backend.Draw.
type DrawCall struct {
	Vertices []render.Vertex
	Slots    []uint32
	Indices  []uint16
}

// Backend records everything submitted to it.
type Backend struct {
	Cameras  []render.Camera
	Calls    []DrawCall
	Textures []*Texture

	uploaded []render.Vertex
	nextID   uint32
}

var _ render.Backend = (*Backend)(nil)

// NewTexture records a texture with the bounds of img.
func (b *Backend) NewTexture(img image.Image) (render.Texture, error) {
	b.nextID++
	t := &Texture{ID: b.nextID, Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	b.Textures = append(b.Textures, t)
	return t, nil
}

// NewFakeTexture returns a texture with a fresh handle.
func (b *Backend) NewFakeTexture(width, height int) *Texture {
	tex, _ := b.NewTexture(image.Rect(0, 0, width, height))
	return tex.(*Texture)
}

func (b *Backend) Begin(cam render.Camera) {
	b.Cameras = append(b.Cameras, cam)
}

func (b *Backend) Upload(vertices []render.Vertex) {
	b.uploaded = append(b.uploaded[:0], vertices...)
}

func (b *Backend) Draw(slots []render.Texture, indices []uint16) {
	call := DrawCall{
		Vertices: append([]render.Vertex(nil), b.uploaded...),
		Indices:  append([]uint16(nil), indices...),
	}
	for _, s := range slots {
		call.Slots = append(call.Slots, s.Handle())
	}
	b.Calls = append(b.Calls, call)
}

// Quads returns the number of quads drawn over all calls.
func (b *Backend) Quads() int {
	n := 0
	for _, c := range b.Calls {
		n += len(c.Indices) / 6
	}
	return n
}

// Reset forgets all recorded calls and cameras.
func (b *Backend) Reset() {
	b.Calls = nil
	b.Cameras = nil
}
