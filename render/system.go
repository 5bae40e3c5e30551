package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/curvedemo/ecs"
	"github.com/plus3/curvedemo/scene"
)

// Grid colors used when a GridHelper leaves them unset.
var (
	DefaultGridCenter = scene.Hex(0x444444)
	DefaultGridColor  = scene.Hex(0x888888)
)

var shadowColor = color.RGBA{A: 0xFF}

// System rebuilds the DrawList singleton from the scene every frame. Run it
// on the render scheduler, after the update scheduler has moved things.
type System struct {
	Camera     ecs.Singleton[scene.Camera]
	Background ecs.Singleton[scene.Background]
	Out        ecs.Singleton[DrawList]
	Request    ecs.Singleton[Request]

	Meshes ecs.Query[struct {
		*scene.Transform
		*scene.Mesh
	}]
	Lines ecs.Query[struct {
		*scene.Transform
		*scene.Line
	}]
	Grids ecs.Query[struct {
		*scene.Transform
		*scene.GridHelper
	}]
	Ambients ecs.Query[struct{ *scene.AmbientLight }]
	Spots    ecs.Query[struct {
		*scene.Transform
		*scene.SpotLight
	}]
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	cam := s.Camera.Get()
	if cam == nil {
		return
	}
	out := s.Out.Get()
	if out == nil {
		frame.Storage.AddSingleton(DrawList{})
		out = s.Out.Get()
	}
	req := s.Request.Get()
	if req != nil && !req.Pending && out.Builds > 0 && out.Width == cam.Width && out.Height == cam.Height {
		return
	}

	background := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	if bg := s.Background.Get(); bg != nil {
		background = bg.Color
	}
	out.Reset(cam.Width, cam.Height, background)

	p := newProjector(cam.ViewProjection(), cam.Width, cam.Height)
	env := s.gatherLights(frame.Storage)
	receivers := s.gatherReceivers(frame.Storage, out)

	for id, item := range s.Meshes.Entries() {
		g := item.Mesh.Geometry
		if g == nil {
			continue
		}
		world := scene.WorldMatrix(frame.Storage, id)
		if item.Mesh.Material.Kind != scene.MaterialShadow {
			s.drawMesh(p, out, env, world, item.Mesh)
		}
		if item.Mesh.CastShadow {
			s.castShadows(p, out, env, receivers, id, world, g)
		}
	}

	for id, item := range s.Lines.Entries() {
		world := scene.WorldMatrix(frame.Storage, id)
		width := item.Line.Width
		if width <= 0 {
			width = 1
		}
		c := premultiply(item.Line.Color, 1)
		for i := 0; i+1 < len(item.Line.Points); i++ {
			a := mgl32.TransformCoordinate(item.Line.Points[i], world)
			b := mgl32.TransformCoordinate(item.Line.Points[i+1], world)
			addSegment(p, out, LayerScene, a, b, c, width)
		}
	}

	for id, item := range s.Grids.Entries() {
		drawGrid(p, out, scene.WorldMatrix(frame.Storage, id), item.GridHelper)
	}

	out.Sort()
	out.Builds++
	if req != nil {
		req.Pending = false
	}
}

func (s *System) gatherLights(storage *ecs.Storage) *lights {
	env := &lights{}
	for item := range s.Ambients.Iter() {
		env.ambient = env.ambient.Add(rgb(item.AmbientLight.Color).Mul(intensity(item.AmbientLight.Intensity)))
	}
	for id, item := range s.Spots.Entries() {
		pos := scene.WorldPosition(storage, id)
		dir := item.SpotLight.Target.Sub(pos)
		if dir.Len() == 0 {
			dir = mgl32.Vec3{0, -1, 0}
		}
		env.spots = append(env.spots, spot{
			position:  pos,
			direction: dir.Normalize(),
			color:     rgb(item.SpotLight.Color).Mul(intensity(item.SpotLight.Intensity)),
			cone:      item.SpotLight.Cone(),
			shadows:   item.SpotLight.CastShadow,
		})
	}
	return env
}

func (s *System) gatherReceivers(storage *ecs.Storage, out *DrawList) []receiver {
	var receivers []receiver
	for id, item := range s.Meshes.Entries() {
		if !item.Mesh.ReceiveShadow {
			continue
		}
		r, ok := planeFromWorld(scene.WorldMatrix(storage, id))
		if !ok {
			continue
		}
		r.owner = id
		receivers = append(receivers, r)
		if item.Mesh.Material.Kind == scene.MaterialShadow {
			out.ShadowOpacity = max(out.ShadowOpacity, item.Mesh.Material.Alpha())
		}
	}
	if len(receivers) > 0 && out.ShadowOpacity == 0 {
		out.ShadowOpacity = 1
	}
	return receivers
}

func (s *System) drawMesh(p *projector, out *DrawList, env *lights, world mgl32.Mat4, mesh *scene.Mesh) {
	g := mesh.Geometry
	mat := mesh.Material
	alpha := mat.Alpha()
	flat := premultiply(mat.Color, alpha)

	for i := 0; i+2 < len(g.Indices); i += 3 {
		a := mgl32.TransformCoordinate(g.Positions[g.Indices[i]], world)
		b := mgl32.TransformCoordinate(g.Positions[g.Indices[i+1]], world)
		c := mgl32.TransformCoordinate(g.Positions[g.Indices[i+2]], world)

		col := flat
		if mat.Kind == scene.MaterialLambert {
			n := b.Sub(a).Cross(c.Sub(a))
			if n.Len() > 0 {
				n = n.Normalize()
			}
			centroid := a.Add(b).Add(c).Mul(1.0 / 3)
			col = shade(mat.Color, env.lambert(centroid, n), alpha)
		}

		culled := p.triangle(a, b, c, true, func(pts [3]mgl32.Vec2, depth float32) {
			out.add(Primitive{Kind: KindTriangle, Layer: LayerScene, Points: pts, Color: col, Depth: depth})
		})
		if culled {
			out.Culled++
		}
	}
}

func (s *System) castShadows(p *projector, out *DrawList, env *lights, receivers []receiver, self ecs.EntityId, world mgl32.Mat4, g *scene.Geometry) {
	for _, light := range env.spots {
		if !light.shadows {
			continue
		}
		for _, r := range receivers {
			if r.owner == self || !r.above(light.position) {
				continue
			}
			for i := 0; i+2 < len(g.Indices); i += 3 {
				a := mgl32.TransformCoordinate(g.Positions[g.Indices[i]], world)
				b := mgl32.TransformCoordinate(g.Positions[g.Indices[i+1]], world)
				c := mgl32.TransformCoordinate(g.Positions[g.Indices[i+2]], world)

				// Only faces lit by the light contribute to the silhouette.
				centroid := a.Add(b).Add(c).Mul(1.0 / 3)
				if b.Sub(a).Cross(c.Sub(a)).Dot(light.position.Sub(centroid)) <= 0 || !light.inCone(centroid) {
					continue
				}

				sa, okA := r.project(light.position, a)
				sb, okB := r.project(light.position, b)
				sc, okC := r.project(light.position, c)
				if !okA || !okB || !okC {
					continue
				}
				p.triangle(sa, sb, sc, false, func(pts [3]mgl32.Vec2, depth float32) {
					out.add(Primitive{Kind: KindTriangle, Layer: LayerShadow, Points: pts, Color: shadowColor, Depth: depth})
				})
			}
		}
	}
}

func drawGrid(p *projector, out *DrawList, world mgl32.Mat4, grid *scene.GridHelper) {
	divisions := grid.Divisions
	if divisions < 1 {
		divisions = 1
	}
	alpha := grid.Opacity
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	center, regular := grid.CenterColor, grid.Color
	if center == (color.RGBA{}) {
		center = DefaultGridCenter
	}
	if regular == (color.RGBA{}) {
		regular = DefaultGridColor
	}

	half := grid.Size / 2
	step := grid.Size / float32(divisions)
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		c := regular
		if 2*i == divisions {
			c = center
		}
		c = premultiply(c, alpha)

		addSegment(p, out, LayerGround,
			mgl32.TransformCoordinate(mgl32.Vec3{-half, 0, k}, world),
			mgl32.TransformCoordinate(mgl32.Vec3{half, 0, k}, world), c, 1)
		addSegment(p, out, LayerGround,
			mgl32.TransformCoordinate(mgl32.Vec3{k, 0, -half}, world),
			mgl32.TransformCoordinate(mgl32.Vec3{k, 0, half}, world), c, 1)
	}
}

func addSegment(p *projector, out *DrawList, layer Layer, a, b mgl32.Vec3, c color.RGBA, width float32) {
	sa, sb, depth, ok := p.segment(a, b)
	if !ok {
		return
	}
	out.add(Primitive{
		Kind:   KindSegment,
		Layer:  layer,
		Points: [3]mgl32.Vec2{sa, sb},
		Color:  c,
		Width:  width,
		Depth:  depth,
	})
}

func intensity(v float32) float32 {
	if v <= 0 {
		return 1
	}
	return v
}
