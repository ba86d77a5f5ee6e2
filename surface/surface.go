// Package surface implements the triangulated-surface data model: an
// embedded boundary used by the intersector.
package surface

import (
	"fmt"
	"math"
)

// Vec3 is a plain 3-vector, used throughout the intersector/kdtree
// packages for node positions, triangle normals, and barycentric math.
type Vec3 struct{ X, Y, Z float64 }

func (a Vec3) Add(b Vec3) Vec3    { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3    { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{a.Y*b.Z - a.Z*b.Y, a.Z*b.X - a.X*b.Z, a.X*b.Y - a.Y*b.X}
}
func (a Vec3) Norm() float64 { return math.Sqrt(a.Dot(a)) }
func (a Vec3) Normalized() Vec3 {
	n := a.Norm()
	if n == 0 {
		return a
	}
	return a.Scale(1 / n)
}

// AABB is an axis-aligned bounding box.
type AABB struct{ Min, Max Vec3 }

// Union returns the smallest AABB containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(a.Min.X, b.Min.X), math.Min(a.Min.Y, b.Min.Y), math.Min(a.Min.Z, b.Min.Z)},
		Max: Vec3{math.Max(a.Max.X, b.Max.X), math.Max(a.Max.Y, b.Max.Y), math.Max(a.Max.Z, b.Max.Z)},
	}
}

// Overlaps reports whether a and b intersect (including touching).
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Center returns the box's geometric center.
func (a AABB) Center() Vec3 {
	return Vec3{(a.Min.X + a.Max.X) / 2, (a.Min.Y + a.Max.Y) / 2, (a.Min.Z + a.Max.Z) / 2}
}

// Triangle is one element of the surface, referencing three node indices.
type Triangle struct {
	V0, V1, V2 int
}

// Mesh is a triangulated surface: an ordered vertex list, a triangle
// list, and cached per-triangle geometry. Mesh is value-semantic and
// read-only within a step: every rank holds (or shares) the same Mesh
// and never mutates it concurrently.
type Mesh struct {
	X      []Vec3     // vertex positions
	Elems  []Triangle // connectivity
	Normal []Vec3     // per-triangle unit normal, cached at construction
	Area   []float64  // per-triangle area, cached at construction
	Closed bool        // derived once at construction

	// NodeElems[v] lists the triangle indices incident on vertex v.
	NodeElems [][]int
}

// New builds a Mesh from raw nodes and zero-based triangle connectivity,
// rejecting degenerate triangles and computing cached
// normals/areas/adjacency/closedness.
func New(nodes []Vec3, elems []Triangle) (*Mesh, error) {
	m := &Mesh{X: nodes, Elems: elems}
	m.Normal = make([]Vec3, len(elems))
	m.Area = make([]float64, len(elems))
	m.NodeElems = make([][]int, len(nodes))

	for ti, e := range elems {
		p0, p1, p2 := nodes[e.V0], nodes[e.V1], nodes[e.V2]
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		area2 := n.Norm()
		if area2 < 1e-300 {
			return nil, &DegenerateTriangleError{Index: ti}
		}
		m.Area[ti] = 0.5 * area2
		m.Normal[ti] = n.Scale(1 / area2)
		m.NodeElems[e.V0] = append(m.NodeElems[e.V0], ti)
		m.NodeElems[e.V1] = append(m.NodeElems[e.V1], ti)
		m.NodeElems[e.V2] = append(m.NodeElems[e.V2], ti)
	}
	m.Closed = m.deriveClosed()
	return m, nil
}

// DegenerateTriangleError is a topology error: fail fast
// at construction time.
type DegenerateTriangleError struct{ Index int }

func (e *DegenerateTriangleError) Error() string {
	return fmt.Sprintf("surface: degenerate triangle at index %d", e.Index)
}

// deriveClosed reports whether every edge is shared by exactly two
// triangles -- the standard watertight-mesh check.
func (m *Mesh) deriveClosed() bool {
	type edge struct{ a, b int }
	mk := func(i, j int) edge {
		if i > j {
			i, j = j, i
		}
		return edge{i, j}
	}
	count := make(map[edge]int)
	for _, e := range m.Elems {
		count[mk(e.V0, e.V1)]++
		count[mk(e.V1, e.V2)]++
		count[mk(e.V2, e.V0)]++
	}
	for _, c := range count {
		if c != 2 {
			return false
		}
	}
	return true
}

// TriangleBounds returns the AABB of triangle ti.
func (m *Mesh) TriangleBounds(ti int) AABB {
	e := m.Elems[ti]
	p0, p1, p2 := m.X[e.V0], m.X[e.V1], m.X[e.V2]
	lo := Vec3{math.Min(p0.X, math.Min(p1.X, p2.X)), math.Min(p0.Y, math.Min(p1.Y, p2.Y)), math.Min(p0.Z, math.Min(p1.Z, p2.Z))}
	hi := Vec3{math.Max(p0.X, math.Max(p1.X, p2.X)), math.Max(p0.Y, math.Max(p1.Y, p2.Y)), math.Max(p0.Z, math.Max(p1.Z, p2.Z))}
	return AABB{Min: lo, Max: hi}
}
