package gfx

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/vengine/proj"
	"github.com/OpticalFlyer/vengine/render"
)

// Backend draws batches onto an ebiten image with DrawTriangles. ebiten
// binds one source image per call, so each draw is split into runs of
// quads sharing a texture slot. Vertices are projected on the CPU.
type Backend struct {
	// Filter samples textures. The zero value is nearest filtering.
	Filter ebiten.Filter

	target   *ebiten.Image
	projView mgl32.Mat4
	uploaded []render.Vertex
	vertices []ebiten.Vertex
	indices  []uint16
}

var _ render.Backend = (*Backend)(nil)

func NewBackend() *Backend {
	return &Backend{Filter: ebiten.FilterNearest, projView: mgl32.Ident4()}
}

// SetTarget selects the image drawn to until the next call.
func (b *Backend) SetTarget(img *ebiten.Image) { b.target = img }

// NewTexture uploads img.
func (b *Backend) NewTexture(img image.Image) (render.Texture, error) {
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("gfx: empty image %v", img.Bounds())
	}
	return NewTexture(ebiten.NewImageFromImage(img)), nil
}

func (b *Backend) Begin(cam render.Camera) {
	b.projView = cam.Projection.Mul4(cam.View)
}

func (b *Backend) Upload(vertices []render.Vertex) {
	b.uploaded = append(b.uploaded[:0], vertices...)
}

func (b *Backend) Draw(slots []render.Texture, indices []uint16) {
	if b.target == nil {
		return
	}
	for start := 0; start < len(indices); {
		slot := b.slotOf(indices[start])
		end := start + 6
		for end < len(indices) && b.slotOf(indices[end]) == slot {
			end += 6
		}
		tex, ok := slots[slot].(*Texture)
		if !ok {
			panic(fmt.Sprintf("gfx: texture %T was not created by this backend", slots[slot]))
		}
		b.drawRun(tex, indices[start:end])
		start = end
	}
}

func (b *Backend) slotOf(index uint16) int {
	return int(b.uploaded[index].Slot)
}

// drawRun draws quads whose indices are contiguous and share tex.
func (b *Backend) drawRun(tex *Texture, indices []uint16) {
	first := int(indices[0])
	last := int(indices[len(indices)-6])/4*4 + 4

	bounds := b.target.Bounds()
	w, h := float32(bounds.Dx()), float32(bounds.Dy())
	src := tex.img.Bounds()
	sx, sy := float32(src.Min.X), float32(src.Min.Y)
	sw, sh := float32(src.Dx()), float32(src.Dy())

	b.vertices = b.vertices[:0]
	for _, v := range b.uploaded[first:last] {
		x, y := proj.NDCToPixels(proj.ToNDC(b.projView, v.Position), w, h)
		b.vertices = append(b.vertices, ebiten.Vertex{
			DstX:   x,
			DstY:   y,
			SrcX:   sx + v.UV.X()*sw,
			SrcY:   sy + v.UV.Y()*sh,
			ColorR: v.Color.X(),
			ColorG: v.Color.Y(),
			ColorB: v.Color.Z(),
			ColorA: v.Color.W(),
		})
	}
	b.indices = b.indices[:0]
	for _, i := range indices {
		b.indices = append(b.indices, i-uint16(first))
	}

	b.target.DrawTriangles(b.vertices, b.indices, tex.img, &ebiten.DrawTrianglesOptions{
		Filter: b.Filter,
	})
}
