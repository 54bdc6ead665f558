// Package render batches textured quads into indexed triangle draws.
//
// The package owns no GPU state itself. A Backend uploads vertices, draws
// index ranges and creates textures; the ebiten implementation lives in
// package gfx and tests use an in-memory fake.
package render

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture is a GPU texture owned by whoever created it.
type Texture interface {
	// Handle identifies the texture. Two textures with the same handle are
	// the same texture.
	Handle() uint32
	Size() (width, height int)
	Dispose()
}

// Swapper is a texture that can take over the pixels of another texture of
// the same kind while keeping its handle. other receives the old pixels.
type Swapper interface {
	Texture
	Swap(other Texture) bool
}

// TextureFactory creates textures from decoded images.
type TextureFactory interface {
	NewTexture(img image.Image) (Texture, error)
}

// Camera carries the matrices applied to every vertex of a batch.
type Camera struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
}

// NewCamera returns a camera with an identity view.
func NewCamera(projection mgl32.Mat4) Camera {
	return Camera{Projection: projection, View: mgl32.Ident4()}
}

// Backend is the graphics device a Batch submits to.
type Backend interface {
	TextureFactory
	// Begin starts a frame drawn with cam.
	Begin(cam Camera)
	// Upload replaces the vertex buffer contents.
	Upload(vertices []Vertex)
	// Draw draws indexed triangles over the uploaded vertices. Vertex.Slot
	// indexes into slots. Neither slice may be retained after the call.
	Draw(slots []Texture, indices []uint16)
}

// Vertex is the layout every batch vertex has.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
	UV       mgl32.Vec2
	Slot     float32
}

// FullUV maps a quad onto a whole texture. Corner order is bottom-left,
// top-left, bottom-right, top-right.
var FullUV = [4]mgl32.Vec2{{0, 1}, {0, 0}, {1, 1}, {1, 0}}

// White is the color that leaves a texture untinted.
var White = mgl32.Vec4{1, 1, 1, 1}

// Quad is one screen rectangle. Position is its top-left corner in pixels.
// A nil Texture draws Color over the batch's white texture.
type Quad struct {
	Position mgl32.Vec2
	Size     mgl32.Vec2
	UV       [4]mgl32.Vec2
	Color    mgl32.Vec4
	Texture  Texture
}

// NewColorQuad returns an untextured quad.
func NewColorQuad(position, size mgl32.Vec2, color mgl32.Vec4) Quad {
	return Quad{Position: position, Size: size, UV: FullUV, Color: color}
}

// NewTextureQuad returns a quad covering the whole of tex, tinted by tint.
func NewTextureQuad(position, size mgl32.Vec2, tex Texture, tint mgl32.Vec4) Quad {
	return Quad{Position: position, Size: size, UV: FullUV, Color: tint, Texture: tex}
}

// SubUV returns corner UVs for the pixel rectangle r of a texture of the
// given size.
func SubUV(r image.Rectangle, width, height int) [4]mgl32.Vec2 {
	w, h := float32(width), float32(height)
	u0, v0 := float32(r.Min.X)/w, float32(r.Min.Y)/h
	u1, v1 := float32(r.Max.X)/w, float32(r.Max.Y)/h
	return [4]mgl32.Vec2{{u0, v1}, {u0, v0}, {u1, v1}, {u1, v0}}
}
