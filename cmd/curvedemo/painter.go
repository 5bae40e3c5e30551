package main

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/curvedemo/render"
)

var whiteSubImage *ebiten.Image

func init() {
	white := ebiten.NewImage(3, 3)
	white.Fill(image.White)
	whiteSubImage = white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// maxBatchVertices keeps indices within uint16.
const maxBatchVertices = math.MaxUint16 - 3

// painter draws a render.DrawList with ebiten.
type painter struct {
	shadow   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func (p *painter) Paint(screen *ebiten.Image, list *render.DrawList) {
	screen.Fill(list.Background)

	p.paintLayer(screen, list, render.LayerGround)

	if list.Count(render.LayerShadow, render.KindTriangle) > 0 && list.ShadowOpacity > 0 {
		bounds := screen.Bounds()
		if p.shadow == nil || p.shadow.Bounds() != bounds {
			p.shadow = ebiten.NewImage(bounds.Dx(), bounds.Dy())
		}
		p.shadow.Clear()
		p.paintLayer(p.shadow, list, render.LayerShadow)

		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(list.ShadowOpacity)
		screen.DrawImage(p.shadow, op)
	}

	p.paintLayer(screen, list, render.LayerScene)
}

// paintLayer batches consecutive triangles into one DrawTriangles call and
// strokes segments in between, keeping paint order.
func (p *painter) paintLayer(dst *ebiten.Image, list *render.DrawList, layer render.Layer) {
	for prim := range list.Layer(layer) {
		switch prim.Kind {
		case render.KindTriangle:
			if len(p.vertices)+3 > maxBatchVertices {
				p.flush(dst)
			}
			base := uint16(len(p.vertices))
			r, g, b, a := float32(prim.Color.R)/255, float32(prim.Color.G)/255, float32(prim.Color.B)/255, float32(prim.Color.A)/255
			for _, pt := range prim.Points {
				p.vertices = append(p.vertices, ebiten.Vertex{
					DstX: pt.X(), DstY: pt.Y(),
					SrcX: 1, SrcY: 1,
					ColorR: r, ColorG: g, ColorB: b, ColorA: a,
				})
			}
			p.indices = append(p.indices, base, base+1, base+2)
		case render.KindSegment:
			p.flush(dst)
			a, b := prim.Points[0], prim.Points[1]
			vector.StrokeLine(dst, a.X(), a.Y(), b.X(), b.Y(), prim.Width, prim.Color, true)
		}
	}
	p.flush(dst)
}

func (p *painter) flush(dst *ebiten.Image) {
	if len(p.indices) == 0 {
		return
	}
	dst.DrawTriangles(p.vertices, p.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		AntiAlias:      true,
	})
	p.vertices = p.vertices[:0]
	p.indices = p.indices[:0]
}
