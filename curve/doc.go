// Package curve samples smooth parametric paths through 3D control points.
//
// The only path type is an open Catmull-Rom spline. Point(u) samples the raw
// spline parameter, which moves faster over long segments; PointAt(t) samples
// by arc length so equal steps in t cover equal distances along the path.
package curve
