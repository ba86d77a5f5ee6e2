package intersector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/m2c/surface"
)

// planeMesh builds a two-triangle square surface spanning
// [0,1]x[0,1] at z=0.5.
func planeMesh(t *testing.T) *surface.Mesh {
	nodes := []surface.Vec3{
		{X: 0, Y: 0, Z: 0.5},
		{X: 1, Y: 0, Z: 0.5},
		{X: 1, Y: 1, Z: 0.5},
		{X: 0, Y: 1, Z: 0.5},
	}
	elems := []surface.Triangle{{V0: 0, V1: 1, V2: 2}, {V0: 0, V1: 2, V2: 3}}
	m, err := surface.New(nodes, elems)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func gridNodes(dims Dims) []surface.Vec3 {
	nodes := make([]surface.Vec3, dims.N())
	for k := 0; k < dims.Nz; k++ {
		for j := 0; j < dims.Ny; j++ {
			for i := 0; i < dims.Nx; i++ {
				nodes[dims.Index(i, j, k)] = surface.Vec3{
					X: float64(i) / 4, Y: float64(j) / 4, Z: float64(k) / 4,
				}
			}
		}
	}
	return nodes
}

func TestNodeOnPlaneIsOccluded(t *testing.T) {
	mesh := planeMesh(t)
	params := DefaultParams(0.02)
	it := New(mesh, params)

	dims := Dims{Nx: 5, Ny: 5, Nz: 5} // z in {0, 0.25, 0.5, 0.75, 1.0}
	nodes := gridNodes(dims)

	res := it.Run(nodes, dims)

	// Node (2,2,2) sits at z=0.5, exactly on the plane, so the occlusion
	// test marks it Occluded and records the triangle that occludes it.
	idxOn := dims.Index(2, 2, 2)
	assert.True(t, res.Nodes[idxOn].Occluded)
	assert.GreaterOrEqual(t, res.Nodes[idxOn].OccludingTriangle, 0)
}

func TestOccludedNodeEdgesAlwaysHaveIntersection(t *testing.T) {
	mesh := planeMesh(t)
	it := New(mesh, DefaultParams(0.05))

	dims := Dims{Nx: 5, Ny: 5, Nz: 5}
	nodes := gridNodes(dims)
	res := it.Run(nodes, dims)

	for idx, n := range res.Nodes {
		if !n.Occluded {
			continue
		}
		k := idx / (dims.Nx * dims.Ny)
		rem := idx % (dims.Nx * dims.Ny)
		j := rem / dims.Nx
		i := rem % dims.Nx
		if i+1 < dims.Nx {
			assert.NotEmpty(t, res.Edges[EdgeKey{I: i, J: j, K: k, Axis: 0}])
		}
		if k+1 < dims.Nz {
			assert.NotEmpty(t, res.Edges[EdgeKey{I: i, J: j, K: k, Axis: 2}])
		}
	}
}

func TestFirstLayerNodesGetFiniteDistance(t *testing.T) {
	mesh := planeMesh(t)
	it := New(mesh, DefaultParams(0.02))

	dims := Dims{Nx: 5, Ny: 5, Nz: 5}
	nodes := gridNodes(dims)
	res := it.Run(nodes, dims)

	idx := dims.Index(2, 2, 1) // z=0.25, one step below the plane
	assert.True(t, res.Nodes[idx].FirstLayer)
	assert.False(t, res.Nodes[idx].Distance == res.Nodes[idx].Distance && res.Nodes[idx].Distance < 0)
	assert.InDelta(t, 0.25, res.Nodes[idx].Distance, 1e-6)
}
