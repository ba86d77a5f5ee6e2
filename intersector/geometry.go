package intersector

import (
	"math"

	"github.com/notargets/m2c/surface"
	"github.com/notargets/m2c/utils"
)

// segmentTriangleIntersect is the standard Moller-Trumbore parametric
// test, applied to the finite segment p0->p1
// rather than an infinite ray: t in [0,1] means the crossing lies on
// the segment.
func segmentTriangleIntersect(p0, p1, v0, v1, v2 surface.Vec3) (t float64, ok bool) {
	const eps = utils.NODETOL
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	dir := p1.Sub(p0)
	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < eps {
		return 0, false
	}
	f := 1 / a
	s := p0.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	tt := f * edge2.Dot(q)
	if tt < 0 || tt > 1 {
		return 0, false
	}
	return tt, true
}

// pointInThickenedTriangle implements the node occlusion test: distance
// to the triangle's plane within halfThickness,
// and the plane-projected point's barycentric coordinates within the
// triangle.
func pointInThickenedTriangle(p, v0, v1, v2, normal surface.Vec3, halfThickness float64) bool {
	d := p.Sub(v0).Dot(normal)
	if math.Abs(d) > halfThickness {
		return false
	}
	proj := p.Sub(normal.Scale(d))
	edge1, edge2 := v1.Sub(v0), v2.Sub(v0)
	vp := proj.Sub(v0)
	d00, d01, d11 := edge1.Dot(edge1), edge1.Dot(edge2), edge2.Dot(edge2)
	d20, d21 := vp.Dot(edge1), vp.Dot(edge2)
	denom := d00*d11 - d01*d01
	if math.Abs(denom) < 1e-300 {
		return false
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	const tol = 1e-9
	return u >= -tol && v >= -tol && w >= -tol
}

// closestPointOnTriangle is Ericson's clamped-barycentric closest-point
// algorithm, used for the narrow-band unsigned distance computation.
func closestPointOnTriangle(p, a, b, c surface.Vec3) surface.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Scale(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Scale(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Scale(v)).Add(ac.Scale(w))
}
