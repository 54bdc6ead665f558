// Package proj holds the screen projection math shared by the renderer and
// the UI canvas.
package proj

import "github.com/go-gl/mathgl/mgl32"

// Depth range used by every screen projection.
const (
	near = -1.0
	far  = 1.0
)

// Screen returns the orthographic projection for a viewport of the given
// size with the origin in the top-left corner and y growing downwards.
//
// Parameters:
//   - width: Viewport width in pixels
//   - height: Viewport height in pixels
//
// Returns:
//   - The matrix mapping pixel coordinates to normalized device coordinates
func Screen(width, height float32) mgl32.Mat4 {
	return mgl32.Ortho(0, width, height, 0, near, far)
}

// View returns a camera matrix that scales around the origin and then
// translates by offset.
func View(offset mgl32.Vec2, scale float32) mgl32.Mat4 {
	return mgl32.Translate3D(offset.X(), offset.Y(), 0).Mul4(mgl32.Scale3D(scale, scale, 1))
}

// ToNDC transforms a point with the combined projection*view matrix into
// normalized device coordinates.
func ToNDC(projView mgl32.Mat4, p mgl32.Vec3) mgl32.Vec2 {
	v := projView.Mul4x1(p.Vec4(1))
	if v.W() != 0 && v.W() != 1 {
		v = v.Mul(1 / v.W())
	}
	return mgl32.Vec2{v.X(), v.Y()}
}

// NDCToPixels maps normalized device coordinates onto a framebuffer of the
// given size. NDC y points up, pixel y points down.
//
// Parameters:
//   - ndc: Point in [-1, 1] on both axes
//   - width: Framebuffer width in pixels
//   - height: Framebuffer height in pixels
//
// Returns:
//   - x: Pixel column (fractional)
//   - y: Pixel row (fractional)
func NDCToPixels(ndc mgl32.Vec2, width, height float32) (x, y float32) {
	x = (ndc.X() + 1) * 0.5 * width
	y = (1 - ndc.Y()) * 0.5 * height
	return x, y
}

// PixelsToWorld inverts projView for a framebuffer pixel, used to turn a
// cursor position into world coordinates under a zoomed camera.
func PixelsToWorld(projView mgl32.Mat4, x, y, width, height float32) mgl32.Vec2 {
	ndc := mgl32.Vec4{2*x/width - 1, 1 - 2*y/height, 0, 1}
	w := projView.Inv().Mul4x1(ndc)
	return mgl32.Vec2{w.X(), w.Y()}
}
