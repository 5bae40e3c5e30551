// Package render turns the scene held in an ECS storage into a flat list of
// screen-space triangles and line segments. It does no drawing itself; the
// host paints the DrawList with whatever backend it has.
package render

import (
	"cmp"
	"image/color"
	"iter"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Layer orders groups of primitives. Layers are painted in increasing order
// and primitives inside a layer far to near.
type Layer uint8

const (
	// LayerGround holds helpers lying on the floor, such as the grid.
	LayerGround Layer = iota
	// LayerShadow holds opaque shadow shapes. The host composites the whole
	// layer at DrawList.ShadowOpacity so overlapping shadows do not darken.
	LayerShadow
	// LayerScene holds lit meshes and lines.
	LayerScene
)

// Kind says how Points is interpreted.
type Kind uint8

const (
	KindTriangle Kind = iota
	KindSegment
)

// Primitive is a triangle or a line segment in pixels, y down. Color is
// alpha-premultiplied. Depth is the view-space distance used for sorting.
type Primitive struct {
	Kind   Kind
	Layer  Layer
	Points [3]mgl32.Vec2
	Color  color.RGBA
	Width  float32
	Depth  float32
}

// DrawList is the per-frame output of the render System, stored as a
// singleton.
type DrawList struct {
	Width         int
	Height        int
	Background    color.RGBA
	ShadowOpacity float32
	Primitives    []Primitive

	// Culled counts back faces dropped this frame.
	Culled int
	// Builds counts how many times System has rebuilt the list.
	Builds uint64
}

// Request is set by the update side whenever something moved. When the
// singleton exists, System rebuilds the DrawList only while Pending is set or
// the viewport changed, and clears Pending afterwards. Without it System
// rebuilds every frame.
type Request struct {
	Pending bool
	Count   uint64
}

// Mark asks for the next render pass to rebuild the list.
func (r *Request) Mark() {
	r.Pending = true
	r.Count++
}

// Reset empties the list for a new frame, keeping its capacity.
func (d *DrawList) Reset(width, height int, background color.RGBA) {
	d.Width, d.Height = width, height
	d.Background = background
	d.ShadowOpacity = 0
	d.Primitives = d.Primitives[:0]
	d.Culled = 0
}

func (d *DrawList) add(p Primitive) {
	d.Primitives = append(d.Primitives, p)
}

// Sort puts primitives in paint order: by layer, then farthest first.
func (d *DrawList) Sort() {
	slices.SortStableFunc(d.Primitives, func(a, b Primitive) int {
		if a.Layer != b.Layer {
			return cmp.Compare(a.Layer, b.Layer)
		}
		return cmp.Compare(b.Depth, a.Depth)
	})
}

// Layer yields the primitives of one layer in list order.
func (d *DrawList) Layer(l Layer) iter.Seq[Primitive] {
	return func(yield func(Primitive) bool) {
		for _, p := range d.Primitives {
			if p.Layer != l {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Count returns how many primitives of kind k are in layer l.
func (d *DrawList) Count(l Layer, k Kind) int {
	n := 0
	for p := range d.Layer(l) {
		if p.Kind == k {
			n++
		}
	}
	return n
}
