package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrTooFewPoints is returned when a spline is built from fewer than two points.
var ErrTooFewPoints = errors.New("curve: at least two control points are required")

// Kind selects the knot parameterization of a Catmull-Rom spline.
type Kind uint8

const (
	Centripetal Kind = iota
	Chordal
	Uniform
)

func (k Kind) String() string {
	switch k {
	case Centripetal:
		return "centripetal"
	case Chordal:
		return "chordal"
	case Uniform:
		return "uniform"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// DefaultArcLengthDivisions is the resolution of the arc-length table.
const DefaultArcLengthDivisions = 200

// Options tune a spline. The zero value is a centripetal spline.
type Options struct {
	Kind Kind
	// Tension applies to Uniform splines only. Zero means 0.5.
	Tension float64
	// ArcLengthDivisions is the number of chords used to approximate arc
	// length. Zero means DefaultArcLengthDivisions.
	ArcLengthDivisions int
}

// CatmullRom is an open Catmull-Rom spline. It is immutable once built and
// safe for concurrent use.
type CatmullRom struct {
	points     []r3.Vec
	kind       Kind
	tension    float64
	arcLengths []float64
}

// NewCatmullRom builds a spline through points. The slice is copied.
func NewCatmullRom(points []r3.Vec, opts Options) (*CatmullRom, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	if opts.Kind > Uniform {
		return nil, fmt.Errorf("curve: unknown kind %v", opts.Kind)
	}

	c := &CatmullRom{
		points:  append([]r3.Vec(nil), points...),
		kind:    opts.Kind,
		tension: opts.Tension,
	}
	if c.tension == 0 {
		c.tension = 0.5
	}

	divisions := opts.ArcLengthDivisions
	if divisions <= 0 {
		divisions = DefaultArcLengthDivisions
	}
	c.arcLengths = c.buildArcLengths(divisions)
	return c, nil
}

// MustCatmullRom is NewCatmullRom for fixed, known-good control points.
func MustCatmullRom(points []r3.Vec, opts Options) *CatmullRom {
	c, err := NewCatmullRom(points, opts)
	if err != nil {
		panic(err)
	}
	return c
}

// ControlPoints returns a copy of the control points.
func (c *CatmullRom) ControlPoints() []r3.Vec {
	return append([]r3.Vec(nil), c.points...)
}

// Kind returns the knot parameterization.
func (c *CatmullRom) Kind() Kind {
	return c.kind
}

// Length returns the approximate arc length of the whole spline.
func (c *CatmullRom) Length() float64 {
	return c.arcLengths[len(c.arcLengths)-1]
}

// Point samples the spline at raw parameter u in [0, 1]. Values outside the
// range are clamped.
func (c *CatmullRom) Point(u float64) r3.Vec {
	u = clamp01(u)
	l := len(c.points)

	p := float64(l-1) * u
	seg := int(math.Floor(p))
	weight := p - float64(seg)
	if seg >= l-1 {
		seg = l - 2
		weight = 1
	}

	p1 := c.points[seg]
	p2 := c.points[seg+1]

	var p0, p3 r3.Vec
	if seg > 0 {
		p0 = c.points[seg-1]
	} else {
		p0 = r3.Add(r3.Sub(c.points[0], c.points[1]), c.points[0])
	}
	if seg+2 < l {
		p3 = c.points[seg+2]
	} else {
		p3 = r3.Add(r3.Sub(c.points[l-1], c.points[l-2]), c.points[l-1])
	}

	var px, py, pz cubicPoly
	switch c.kind {
	case Uniform:
		px = catmullRomPoly(p0.X, p1.X, p2.X, p3.X, c.tension)
		py = catmullRomPoly(p0.Y, p1.Y, p2.Y, p3.Y, c.tension)
		pz = catmullRomPoly(p0.Z, p1.Z, p2.Z, p3.Z, c.tension)
	default:
		exp := 0.25
		if c.kind == Chordal {
			exp = 0.5
		}
		dt0 := math.Pow(dist2(p0, p1), exp)
		dt1 := math.Pow(dist2(p1, p2), exp)
		dt2 := math.Pow(dist2(p2, p3), exp)

		// Coincident points would divide by zero.
		if dt1 < 1e-4 {
			dt1 = 1
		}
		if dt0 < 1e-4 {
			dt0 = dt1
		}
		if dt2 < 1e-4 {
			dt2 = dt1
		}

		px = nonuniformPoly(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2)
		py = nonuniformPoly(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2)
		pz = nonuniformPoly(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2)
	}

	return r3.Vec{X: px.at(weight), Y: py.at(weight), Z: pz.at(weight)}
}

// PointAt samples the spline at arc-length fraction t in [0, 1]. PointAt(0)
// is the first control point and PointAt(1) the last.
func (c *CatmullRom) PointAt(t float64) r3.Vec {
	return c.Point(c.arcToParameter(clamp01(t)))
}

// Points returns divisions+1 samples evenly spaced in the raw parameter.
func (c *CatmullRom) Points(divisions int) []r3.Vec {
	if divisions < 1 {
		divisions = 1
	}
	out := make([]r3.Vec, divisions+1)
	for i := range out {
		out[i] = c.Point(float64(i) / float64(divisions))
	}
	return out
}

// SpacedPoints returns divisions+1 samples evenly spaced by arc length.
func (c *CatmullRom) SpacedPoints(divisions int) []r3.Vec {
	if divisions < 1 {
		divisions = 1
	}
	out := make([]r3.Vec, divisions+1)
	for i := range out {
		out[i] = c.PointAt(float64(i) / float64(divisions))
	}
	return out
}

func (c *CatmullRom) buildArcLengths(divisions int) []float64 {
	lengths := make([]float64, divisions+1)
	last := c.Point(0)
	var sum float64
	for i := 1; i <= divisions; i++ {
		current := c.Point(float64(i) / float64(divisions))
		sum += r3.Norm(r3.Sub(current, last))
		lengths[i] = sum
		last = current
	}
	return lengths
}

// arcToParameter maps an arc-length fraction to the raw spline parameter.
func (c *CatmullRom) arcToParameter(t float64) float64 {
	lengths := c.arcLengths
	n := len(lengths)
	target := t * lengths[n-1]

	// Last index whose cumulative length is <= target.
	i := sort.Search(n, func(i int) bool { return lengths[i] > target }) - 1
	if i < 0 {
		i = 0
	}
	if i >= n-1 || lengths[i] == target {
		return float64(i) / float64(n-1)
	}

	segment := lengths[i+1] - lengths[i]
	if segment == 0 {
		return float64(i) / float64(n-1)
	}
	return (float64(i) + (target-lengths[i])/segment) / float64(n-1)
}

// cubicPoly is c0 + c1*t + c2*t^2 + c3*t^3 on one segment.
type cubicPoly struct {
	c0, c1, c2, c3 float64
}

func hermite(x0, x1, t0, t1 float64) cubicPoly {
	return cubicPoly{
		c0: x0,
		c1: t0,
		c2: -3*x0 + 3*x1 - 2*t0 - t1,
		c3: 2*x0 - 2*x1 + t0 + t1,
	}
}

func catmullRomPoly(x0, x1, x2, x3, tension float64) cubicPoly {
	return hermite(x1, x2, tension*(x2-x0), tension*(x3-x1))
}

func nonuniformPoly(x0, x1, x2, x3, dt0, dt1, dt2 float64) cubicPoly {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	return hermite(x1, x2, t1*dt1, t2*dt1)
}

func (p cubicPoly) at(t float64) float64 {
	t2 := t * t
	return p.c0 + p.c1*t + p.c2*t2 + p.c3*t2*t
}

func dist2(a, b r3.Vec) float64 {
	d := r3.Sub(a, b)
	return r3.Dot(d, d)
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
