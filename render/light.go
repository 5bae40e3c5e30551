package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

type spot struct {
	position  mgl32.Vec3
	direction mgl32.Vec3
	color     mgl32.Vec3
	cone      float32
	shadows   bool
}

// inCone reports whether p lies inside the light cone.
func (s spot) inCone(p mgl32.Vec3) bool {
	toPoint := p.Sub(s.position)
	if toPoint.Len() == 0 {
		return true
	}
	return toPoint.Normalize().Dot(s.direction) >= s.cone
}

// lights is the lighting environment gathered once per frame. Colors are
// already multiplied by intensity.
type lights struct {
	ambient mgl32.Vec3
	spots   []spot
}

// lambert returns the diffuse light reaching a surface at p with normal n.
func (l *lights) lambert(p, n mgl32.Vec3) mgl32.Vec3 {
	total := l.ambient
	for _, s := range l.spots {
		if !s.inCone(p) {
			continue
		}
		toLight := s.position.Sub(p)
		if toLight.Len() == 0 {
			continue
		}
		d := n.Dot(toLight.Normalize())
		if d <= 0 {
			continue
		}
		total = total.Add(s.color.Mul(d))
	}
	return total
}

func rgb(c color.RGBA) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// shade multiplies the base color by light and premultiplies by alpha.
func shade(base color.RGBA, light mgl32.Vec3, alpha float32) color.RGBA {
	c := rgb(base)
	return color.RGBA{
		R: channel(c.X() * light.X() * alpha),
		G: channel(c.Y() * light.Y() * alpha),
		B: channel(c.Z() * light.Z() * alpha),
		A: channel(alpha),
	}
}

// premultiply returns base at the given opacity.
func premultiply(base color.RGBA, alpha float32) color.RGBA {
	return shade(base, mgl32.Vec3{1, 1, 1}, alpha)
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}
