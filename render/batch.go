package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpticalFlyer/vengine/logx"
)

const (
	verticesPerQuad = 4
	indicesPerQuad  = 6

	// MaxQuads is the most quads a 16 bit index buffer can address.
	MaxQuads = 65536/verticesPerQuad - 1
)

// Stats counts the work done since the last Begin.
type Stats struct {
	Quads           int
	DrawCalls       int
	ImplicitFlushes int
}

// Batch accumulates quads and submits them in as few draws as possible.
// Quads are drawn in submission order; there is no depth sorting.
//
// A frame is Begin, any number of Add, End, Flush. When the index buffer or
// the texture slot table fills up, Add ends and flushes the current batch
// and starts a new one with the same camera.
type Batch struct {
	backend  Backend
	maxQuads int
	maxSlots int

	white    Texture
	vertices []Vertex
	indices  []uint16
	slots    []Texture
	quads    int

	camera Camera
	open   bool
	stats  Stats
}

// NewBatch creates a batch holding up to maxQuads quads and maxSlots
// textures per draw. Slot 0 is reserved for a 1x1 white texture.
func NewBatch(backend Backend, maxQuads, maxSlots int) (*Batch, error) {
	if maxQuads <= 0 || maxQuads > MaxQuads {
		panic(fmt.Sprintf("render: batch size %d out of range [1, %d]", maxQuads, MaxQuads))
	}
	if maxSlots < 2 {
		panic(fmt.Sprintf("render: need at least 2 texture slots, got %d", maxSlots))
	}

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)
	white, err := backend.NewTexture(img)
	if err != nil {
		return nil, fmt.Errorf("render: create white texture: %w", err)
	}

	b := &Batch{
		backend:  backend,
		maxQuads: maxQuads,
		maxSlots: maxSlots,
		white:    white,
		vertices: make([]Vertex, maxQuads*verticesPerQuad),
		indices:  make([]uint16, maxQuads*indicesPerQuad),
		slots:    make([]Texture, 1, maxSlots),
	}
	b.slots[0] = white

	for i := 0; i < maxQuads; i++ {
		v := uint16(i * verticesPerQuad)
		copy(b.indices[i*indicesPerQuad:], []uint16{v, v + 1, v + 2, v + 2, v + 1, v + 3})
	}
	return b, nil
}

// WhiteTexture returns the texture untextured quads are drawn with.
func (b *Batch) WhiteTexture() Texture { return b.white }

// Stats returns the counters since the last Begin.
func (b *Batch) Stats() Stats { return b.stats }

// Begin starts a frame drawn with cam and resets the statistics.
func (b *Batch) Begin(cam Camera) {
	b.camera = cam
	b.stats = Stats{}
	b.restart()
}

func (b *Batch) restart() {
	b.backend.Begin(b.camera)
	b.quads = 0
	b.slots = b.slots[:1]
	b.open = true
}

// Add appends q to the batch.
func (b *Batch) Add(q Quad) {
	if !b.open {
		panic("render: Add called outside Begin/End")
	}

	if b.quads == b.maxQuads {
		b.implicitFlush("index buffer full")
	}
	slot := b.slotFor(q.Texture)
	if slot < 0 {
		b.implicitFlush("texture slots full")
		slot = b.slotFor(q.Texture)
	}

	x, y := q.Position.X(), q.Position.Y()
	w, h := q.Size.X(), q.Size.Y()
	s := float32(slot)
	v := b.vertices[b.quads*verticesPerQuad:]
	v[0] = Vertex{Position: mgl32.Vec3{x, y + h, 0}, Color: q.Color, UV: q.UV[0], Slot: s}
	v[1] = Vertex{Position: mgl32.Vec3{x, y, 0}, Color: q.Color, UV: q.UV[1], Slot: s}
	v[2] = Vertex{Position: mgl32.Vec3{x + w, y + h, 0}, Color: q.Color, UV: q.UV[2], Slot: s}
	v[3] = Vertex{Position: mgl32.Vec3{x + w, y, 0}, Color: q.Color, UV: q.UV[3], Slot: s}

	b.quads++
	b.stats.Quads++
}

// slotFor returns the slot of tex, binding it to a free slot when needed.
// It returns -1 when the slot table is full.
func (b *Batch) slotFor(tex Texture) int {
	if tex == nil {
		return 0
	}
	h := tex.Handle()
	for i, t := range b.slots {
		if t.Handle() == h {
			return i
		}
	}
	if len(b.slots) == b.maxSlots {
		return -1
	}
	b.slots = append(b.slots, tex)
	return len(b.slots) - 1
}

func (b *Batch) implicitFlush(reason string) {
	logx.Logger().Debug("render: implicit flush", "reason", reason, "quads", b.quads)
	b.End()
	b.Flush()
	b.stats.ImplicitFlushes++
	b.restart()
}

// End uploads the accumulated vertices.
func (b *Batch) End() {
	if !b.open {
		return
	}
	b.backend.Upload(b.vertices[:b.quads*verticesPerQuad])
	b.open = false
}

// Flush draws everything uploaded by End and clears the batch.
func (b *Batch) Flush() {
	if b.quads > 0 {
		b.backend.Draw(b.slots, b.indices[:b.quads*indicesPerQuad])
		b.stats.DrawCalls++
	}
	b.quads = 0
	b.slots = b.slots[:1]
}

// Dispose releases the white texture.
func (b *Batch) Dispose() {
	b.white.Dispose()
}
