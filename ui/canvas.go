package ui

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpticalFlyer/vengine/input"
	"github.com/OpticalFlyer/vengine/proj"
	"github.com/OpticalFlyer/vengine/render"
)

// Canvas is the root element of an interface. It owns the batch the tree is
// drawn with and the event system that feeds it input.
type Canvas struct {
	Element

	batch      *render.Batch
	events     *EventSystem
	projection mgl32.Mat4
	quads      []render.Quad
}

// NewCanvas creates a canvas covering a width x height viewport, drawing
// through backend with batches of maxQuads quads and maxSlots textures.
func NewCanvas(backend render.Backend, width, height float32, maxQuads, maxSlots int) (*Canvas, error) {
	batch, err := render.NewBatch(backend, maxQuads, maxSlots)
	if err != nil {
		return nil, err
	}
	c := &Canvas{batch: batch}
	c.Visible = true
	c.Name = "canvas"
	c.canvas = c
	c.events = newEventSystem(c)
	c.Resize(width, height)
	return c, nil
}

// Root returns the canvas as an element, for use as a parent.
func (c *Canvas) Root() *Element { return &c.Element }

// EventSystem returns the event system of the canvas.
func (c *Canvas) EventSystem() *EventSystem { return c.events }

// Batch returns the batch the canvas draws with.
func (c *Canvas) Batch() *render.Batch { return c.batch }

// Projection returns the pixel projection of the viewport.
func (c *Canvas) Projection() mgl32.Mat4 { return c.projection }

// Resize updates the viewport size and projection.
func (c *Canvas) Resize(width, height float32) {
	c.Size = mgl32.Vec2{width, height}
	c.projection = proj.Screen(width, height)
}

// Update dispatches input events against last frame's layout, runs the
// element update hooks and lays the tree out again.
func (c *Canvas) Update(snap *input.Snapshot, dt float32) {
	c.events.Update(snap)
	c.update(snap, dt)
	c.UpdateLayout()
}

// Render draws the visible tree.
func (c *Canvas) Render() {
	c.quads = c.AppendQuads(c.quads[:0])
	c.batch.Begin(render.NewCamera(c.projection))
	for _, q := range c.quads {
		c.batch.Add(q)
	}
	c.batch.End()
	c.batch.Flush()
}

// IsInteracting reports whether the interface is using the pointer, so the
// game beneath it should ignore pointer input.
func (c *Canvas) IsInteracting() bool {
	return c.events.Hovering()
}

// Dispose releases the canvas' GPU resources.
func (c *Canvas) Dispose() {
	c.batch.Dispose()
}
