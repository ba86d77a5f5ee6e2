// Package intersector finds where a triangulated surface crosses a
// structured node grid: per-edge intersections, per-node occlusion, and
// the narrow-band unsigned distance feeding the level-set reinitializer.
// Connected-component coloring is delegated to the floodfill package.
package intersector

import (
	"math"
	"sort"

	"github.com/notargets/m2c/kdtree"
	"github.com/notargets/m2c/surface"
)

// Params holds the thickness and query-widening parameters of the
// intersection pipeline.
type Params struct {
	HalfThickness float64 // slab half-thickness for the occlusion test
	WidenFactor   float64 // "±5*half-thickness" widened query box factor
}

// DefaultParams returns a 5*half-thickness widened query box, wide
// enough to catch every triangle that could intersect an edge incident
// on a node within half-thickness of the surface.
func DefaultParams(halfThickness float64) Params {
	return Params{HalfThickness: halfThickness, WidenFactor: 5}
}

// Dims describes a structured node grid's extents.
type Dims struct{ Nx, Ny, Nz int }

func (d Dims) Index(i, j, k int) int { return (k*d.Ny+j)*d.Nx + i }
func (d Dims) N() int                { return d.Nx * d.Ny * d.Nz }

// EdgeKey identifies the edge from node (I,J,K) to its neighbor one
// step up along Axis (0=X,1=Y,2=Z).
type EdgeKey struct {
	I, J, K int
	Axis    int
}

// Intersection is one recorded edge-surface crossing.
type Intersection struct {
	Point      surface.Vec3
	TriangleID int
	T          float64 // parametric position along the edge, in [0,1]
}

// NodeResult is the per-node output of the pipeline.
type NodeResult struct {
	Occluded          bool
	OccludingTriangle int // -1 if not occluded
	FirstLayer        bool
	Color             int     // filled in by the caller after floodfill.Renumber
	Distance          float64 // unsigned distance; +Inf outside the first layer
}

// Result is the full per-node/per-edge output of one Run.
type Result struct {
	Dims  Dims
	Nodes []NodeResult
	Edges map[EdgeKey][]Intersection
}

// Intersector holds a (possibly subdomain-scoped) k-d tree over the
// surface's triangles.
type Intersector struct {
	mesh   *surface.Mesh
	tree   *kdtree.Tree
	params Params
}

// New builds an Intersector over the whole surface mesh.
func New(mesh *surface.Mesh, params Params) *Intersector {
	all := make([]int, len(mesh.Elems))
	for i := range all {
		all[i] = i
	}
	return &Intersector{mesh: mesh, tree: kdtree.BuildFromMesh(mesh, all), params: params}
}

// NewScoped builds an Intersector over only the triangles whose AABB
// overlaps scopeBox, typically the ghosted subdomain AABB.
func NewScoped(mesh *surface.Mesh, scopeBox surface.AABB, params Params) *Intersector {
	var scope []int
	for ti := range mesh.Elems {
		if mesh.TriangleBounds(ti).Overlaps(scopeBox) {
			scope = append(scope, ti)
		}
	}
	return &Intersector{mesh: mesh, tree: kdtree.BuildFromMesh(mesh, scope), params: params}
}

// Run executes the full per-node/per-edge pipeline -- occlusion,
// per-axis edge intersection, occluded-edge patch-up, and narrow-band
// distance -- over the given node positions.
func (it *Intersector) Run(nodes []surface.Vec3, dims Dims) *Result {
	res := &Result{Dims: dims, Nodes: make([]NodeResult, dims.N()), Edges: make(map[EdgeKey][]Intersection)}
	for idx := range res.Nodes {
		res.Nodes[idx] = NodeResult{OccludingTriangle: -1, Distance: math.Inf(1)}
	}

	for k := 0; k < dims.Nz; k++ {
		for j := 0; j < dims.Ny; j++ {
			for i := 0; i < dims.Nx; i++ {
				idx := dims.Index(i, j, k)
				it.testOcclusion(res, nodes[idx], idx)
				if i+1 < dims.Nx {
					it.testEdge(res, nodes, dims, i, j, k, i+1, j, k, 0)
				}
				if j+1 < dims.Ny {
					it.testEdge(res, nodes, dims, i, j, k, i, j+1, k, 1)
				}
				if k+1 < dims.Nz {
					it.testEdge(res, nodes, dims, i, j, k, i, j, k+1, 2)
				}
			}
		}
	}

	it.patchOccludedEdges(res, nodes, dims)
	it.narrowBandDistance(res, nodes)
	return res
}

func (it *Intersector) widenedBox(p surface.Vec3) surface.AABB {
	r := it.params.HalfThickness * it.params.WidenFactor
	if r <= 0 {
		r = 1e-9
	}
	return surface.AABB{
		Min: surface.Vec3{X: p.X - r, Y: p.Y - r, Z: p.Z - r},
		Max: surface.Vec3{X: p.X + r, Y: p.Y + r, Z: p.Z + r},
	}
}

func (it *Intersector) testOcclusion(res *Result, p surface.Vec3, idx int) {
	box := it.widenedBox(p)
	cands := it.tree.FindInBox(box.Min, box.Max, nil)
	for _, ti := range cands {
		e := it.mesh.Elems[ti]
		v0, v1, v2 := it.mesh.X[e.V0], it.mesh.X[e.V1], it.mesh.X[e.V2]
		if pointInThickenedTriangle(p, v0, v1, v2, it.mesh.Normal[ti], it.params.HalfThickness) {
			res.Nodes[idx].Occluded = true
			res.Nodes[idx].OccludingTriangle = ti
			return
		}
	}
}

func (it *Intersector) testEdge(res *Result, nodes []surface.Vec3, dims Dims, i, j, k, i2, j2, k2, axis int) {
	p0, p1 := nodes[dims.Index(i, j, k)], nodes[dims.Index(i2, j2, k2)]
	lo := surface.Vec3{X: math.Min(p0.X, p1.X), Y: math.Min(p0.Y, p1.Y), Z: math.Min(p0.Z, p1.Z)}
	hi := surface.Vec3{X: math.Max(p0.X, p1.X), Y: math.Max(p0.Y, p1.Y), Z: math.Max(p0.Z, p1.Z)}
	r := it.params.HalfThickness * it.params.WidenFactor
	box := surface.AABB{Min: surface.Vec3{X: lo.X - r, Y: lo.Y - r, Z: lo.Z - r}, Max: surface.Vec3{X: hi.X + r, Y: hi.Y + r, Z: hi.Z + r}}
	cands := it.tree.FindInBox(box.Min, box.Max, nil)

	var hits []Intersection
	for _, ti := range cands {
		e := it.mesh.Elems[ti]
		v0, v1, v2 := it.mesh.X[e.V0], it.mesh.X[e.V1], it.mesh.X[e.V2]
		if t, ok := segmentTriangleIntersect(p0, p1, v0, v1, v2); ok {
			hits = append(hits, Intersection{Point: p0.Add(p1.Sub(p0).Scale(t)), TriangleID: ti, T: t})
		}
	}
	if len(hits) == 0 {
		return
	}
	sort.Slice(hits, func(a, b int) bool { return hits[a].T < hits[b].T })
	if len(hits) > 2 {
		hits = []Intersection{hits[0], hits[len(hits)-1]}
	}
	res.Edges[EdgeKey{I: i, J: j, K: k, Axis: axis}] = hits
	res.Nodes[dims.Index(i, j, k)].FirstLayer = true
	res.Nodes[dims.Index(i2, j2, k2)].FirstLayer = true
}

// patchOccludedEdges enforces the invariant that every edge incident on
// an occluded node has at least one recorded
// intersection, synthesizing one from the node's already-recorded
// occluding triangle when the raw segment test found none (e.g. the
// segment grazes the slab without crossing the triangle itself).
func (it *Intersector) patchOccludedEdges(res *Result, nodes []surface.Vec3, dims Dims) {
	visit := func(i, j, k, i2, j2, k2, axis int) {
		key := EdgeKey{I: i, J: j, K: k, Axis: axis}
		if _, ok := res.Edges[key]; ok {
			return
		}
		idxA, idxB := dims.Index(i, j, k), dims.Index(i2, j2, k2)
		a, b := res.Nodes[idxA], res.Nodes[idxB]
		if !a.Occluded && !b.Occluded {
			return
		}
		var synth []Intersection
		if a.Occluded {
			pt := it.projectOntoTriangle(nodes[idxA], a.OccludingTriangle)
			synth = append(synth, Intersection{Point: pt, TriangleID: a.OccludingTriangle, T: 0})
		}
		if b.Occluded {
			pt := it.projectOntoTriangle(nodes[idxB], b.OccludingTriangle)
			synth = append(synth, Intersection{Point: pt, TriangleID: b.OccludingTriangle, T: 1})
		}
		res.Edges[key] = synth
		res.Nodes[idxA].FirstLayer = true
		res.Nodes[idxB].FirstLayer = true
	}

	for k := 0; k < dims.Nz; k++ {
		for j := 0; j < dims.Ny; j++ {
			for i := 0; i < dims.Nx; i++ {
				if i+1 < dims.Nx {
					visit(i, j, k, i+1, j, k, 0)
				}
				if j+1 < dims.Ny {
					visit(i, j, k, i, j+1, k, 1)
				}
				if k+1 < dims.Nz {
					visit(i, j, k, i, j, k+1, 2)
				}
			}
		}
	}
}

func (it *Intersector) projectOntoTriangle(p surface.Vec3, ti int) surface.Vec3 {
	e := it.mesh.Elems[ti]
	v0 := it.mesh.X[e.V0]
	n := it.mesh.Normal[ti]
	d := p.Sub(v0).Dot(n)
	return p.Sub(n.Scale(d))
}

// narrowBandDistance computes the exact unsigned distance for first-
// layer nodes only (point-to-triangle projection). Propagation to
// further rings is left to the level-set reinitializer's own pseudo-time
// sweep, which only needs a valid value at the interface to converge
// the rest of the field.
func (it *Intersector) narrowBandDistance(res *Result, nodes []surface.Vec3) {
	for idx := range res.Nodes {
		if !res.Nodes[idx].FirstLayer {
			continue
		}
		p := nodes[idx]
		cands := it.tree.FindInBox(it.widenedBox(p).Min, it.widenedBox(p).Max, nil)
		if len(cands) == 0 {
			cands = make([]int, len(it.mesh.Elems))
			for i := range cands {
				cands[i] = i
			}
		}
		best := math.Inf(1)
		for _, ti := range cands {
			if d := it.pointTriangleDistance(p, ti); d < best {
				best = d
			}
		}
		res.Nodes[idx].Distance = best
	}
}

func (it *Intersector) pointTriangleDistance(p surface.Vec3, ti int) float64 {
	e := it.mesh.Elems[ti]
	a, b, c := it.mesh.X[e.V0], it.mesh.X[e.V1], it.mesh.X[e.V2]
	cp := closestPointOnTriangle(p, a, b, c)
	return p.Sub(cp).Norm()
}
