package render_test

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpticalFlyer/vengine/proj"
	"github.com/OpticalFlyer/vengine/render"
	"github.com/OpticalFlyer/vengine/render/rendertest"
)

func newBatch(t *testing.T, quads, slots int) (*render.Batch, *rendertest.Backend) {
	t.Helper()
	backend := &rendertest.Backend{}
	b, err := render.NewBatch(backend, quads, slots)
	require.NoError(t, err)
	return b, backend
}

func TestBatch_SingleQuadLayout(t *testing.T) {
	b, backend := newBatch(t, 10, 4)

	b.Begin(render.NewCamera(proj.Screen(800, 600)))
	b.Add(render.NewColorQuad(mgl32.Vec2{10, 20}, mgl32.Vec2{30, 40}, mgl32.Vec4{1, 0, 0, 1}))
	b.End()
	b.Flush()

	require.Len(t, backend.Calls, 1)
	call := backend.Calls[0]
	assert.Equal(t, []uint16{0, 1, 2, 2, 1, 3}, call.Indices)
	require.Len(t, call.Vertices, 4)

	assert.Equal(t, mgl32.Vec3{10, 60, 0}, call.Vertices[0].Position)
	assert.Equal(t, mgl32.Vec3{10, 20, 0}, call.Vertices[1].Position)
	assert.Equal(t, mgl32.Vec3{40, 60, 0}, call.Vertices[2].Position)
	assert.Equal(t, mgl32.Vec3{40, 20, 0}, call.Vertices[3].Position)
	assert.Equal(t, render.FullUV[0], call.Vertices[0].UV)
	assert.Equal(t, render.FullUV[3], call.Vertices[3].UV)
	for _, v := range call.Vertices {
		assert.Equal(t, float32(0), v.Slot, "untextured quads use the white slot")
		assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, v.Color)
	}
	assert.Equal(t, []uint32{b.WhiteTexture().Handle()}, call.Slots)
}

func TestBatch_IndexPatternAdvances(t *testing.T) {
	b, backend := newBatch(t, 10, 4)

	b.Begin(render.NewCamera(mgl32.Ident4()))
	for i := 0; i < 3; i++ {
		b.Add(render.NewColorQuad(mgl32.Vec2{}, mgl32.Vec2{1, 1}, render.White))
	}
	b.End()
	b.Flush()

	require.Len(t, backend.Calls, 1)
	assert.Equal(t, []uint16{
		0, 1, 2, 2, 1, 3,
		4, 5, 6, 6, 5, 7,
		8, 9, 10, 10, 9, 11,
	}, backend.Calls[0].Indices)
}

func TestBatch_OverflowFlushesImplicitly(t *testing.T) {
	b, backend := newBatch(t, 500, 16)

	b.Begin(render.NewCamera(proj.Screen(800, 600)))
	for i := 0; i < 1000; i++ {
		b.Add(render.NewColorQuad(mgl32.Vec2{float32(i), 0}, mgl32.Vec2{1, 1}, render.White))
	}
	b.End()
	b.Flush()

	stats := b.Stats()
	assert.GreaterOrEqual(t, stats.ImplicitFlushes, 1)
	assert.Equal(t, 1000, stats.Quads)
	assert.Equal(t, 2, stats.DrawCalls)

	total := 0
	for _, c := range backend.Calls {
		total += len(c.Indices)
	}
	assert.Equal(t, 6000, total)
	assert.Equal(t, 1000, backend.Quads())

	// Submission order survives the split.
	assert.Equal(t, float32(0), backend.Calls[0].Vertices[1].Position.X())
	assert.Equal(t, float32(500), backend.Calls[1].Vertices[1].Position.X())
}

func TestBatch_TextureSlotsDeduplicate(t *testing.T) {
	b, backend := newBatch(t, 10, 4)
	tex := backend.NewFakeTexture(8, 8)

	b.Begin(render.NewCamera(mgl32.Ident4()))
	b.Add(render.NewTextureQuad(mgl32.Vec2{}, mgl32.Vec2{8, 8}, tex, render.White))
	b.Add(render.NewTextureQuad(mgl32.Vec2{8, 0}, mgl32.Vec2{8, 8}, tex, render.White))
	b.Add(render.NewColorQuad(mgl32.Vec2{16, 0}, mgl32.Vec2{8, 8}, render.White))
	b.End()
	b.Flush()

	require.Len(t, backend.Calls, 1)
	call := backend.Calls[0]
	assert.Equal(t, []uint32{b.WhiteTexture().Handle(), tex.Handle()}, call.Slots)
	assert.Equal(t, float32(1), call.Vertices[0].Slot)
	assert.Equal(t, float32(1), call.Vertices[4].Slot)
	assert.Equal(t, float32(0), call.Vertices[8].Slot)
}

func TestBatch_SlotTableOverflow(t *testing.T) {
	b, backend := newBatch(t, 100, 3)
	texs := []*rendertest.Texture{
		backend.NewFakeTexture(1, 1),
		backend.NewFakeTexture(1, 1),
		backend.NewFakeTexture(1, 1),
	}

	b.Begin(render.NewCamera(mgl32.Ident4()))
	for _, tex := range texs {
		b.Add(render.NewTextureQuad(mgl32.Vec2{}, mgl32.Vec2{1, 1}, tex, render.White))
	}
	b.End()
	b.Flush()

	require.Len(t, backend.Calls, 2)
	assert.Equal(t, 1, b.Stats().ImplicitFlushes)
	assert.Equal(t, []uint32{b.WhiteTexture().Handle(), texs[0].ID, texs[1].ID}, backend.Calls[0].Slots)
	assert.Equal(t, []uint32{b.WhiteTexture().Handle(), texs[2].ID}, backend.Calls[1].Slots)
	assert.Equal(t, float32(1), backend.Calls[1].Vertices[0].Slot)
}

func TestBatch_EmptyFlushDrawsNothing(t *testing.T) {
	b, backend := newBatch(t, 10, 4)
	b.Begin(render.NewCamera(mgl32.Ident4()))
	b.End()
	b.Flush()
	assert.Empty(t, backend.Calls)
	assert.Zero(t, b.Stats().DrawCalls)
}

func TestBatch_Preconditions(t *testing.T) {
	backend := &rendertest.Backend{}
	assert.Panics(t, func() { _, _ = render.NewBatch(backend, 0, 4) })
	assert.Panics(t, func() { _, _ = render.NewBatch(backend, render.MaxQuads+1, 4) })
	assert.Panics(t, func() { _, _ = render.NewBatch(backend, 10, 1) })

	b, err := render.NewBatch(backend, 10, 4)
	require.NoError(t, err)
	assert.Panics(t, func() { b.Add(render.Quad{}) }, "Add before Begin")
}

func TestSubUV(t *testing.T) {
	uv := render.SubUV(image.Rect(0, 0, 8, 16), 32, 32)
	assert.Equal(t, mgl32.Vec2{0, 0.5}, uv[0])
	assert.Equal(t, mgl32.Vec2{0, 0}, uv[1])
	assert.Equal(t, mgl32.Vec2{0.25, 0.5}, uv[2])
	assert.Equal(t, mgl32.Vec2{0.25, 0}, uv[3])
}
