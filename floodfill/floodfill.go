// Package floodfill implements connected-component coloring of the
// non-occluded nodes of a structured grid, treating edges flagged
// "intersected" by the intersector as obstructions, then remapping the
// raw component ids to a named palette (0=occluded, 1=inlet-connected,
// 2=outlet-connected, negative=enclosed pocket).
package floodfill

import "github.com/notargets/m2c/spmd"

// Dims describes a structured node grid's extents, independent of any
// particular Field[T] type so this package has no dependency on grid.
type Dims struct{ Nx, Ny, Nz int }

func (d Dims) Index(i, j, k int) int { return (k*d.Ny+j)*d.Nx + i }
func (d Dims) N() int                { return d.Nx * d.Ny * d.Nz }

// Node is a node's 3-D index.
type Node struct{ I, J, K int }

// ObstructedFunc reports whether the edge between adjacent nodes a and
// b is obstructed (crossed by the embedded surface), blocking flood
// propagation across it.
type ObstructedFunc func(a, b Node) bool

// BFS assigns a positive connected-component id (1..N) to every
// non-occluded node, propagating only across unobstructed edges.
// Occluded nodes keep component 0.
func BFS(dims Dims, occluded []bool, obstructed ObstructedFunc) []int {
	n := dims.N()
	comp := make([]int, n)
	visited := make([]bool, n)
	next := 1
	queue := make([]Node, 0, 64)

	for k := 0; k < dims.Nz; k++ {
		for j := 0; j < dims.Ny; j++ {
			for i := 0; i < dims.Nx; i++ {
				idx := dims.Index(i, j, k)
				if occluded[idx] || visited[idx] {
					continue
				}
				queue = queue[:0]
				queue = append(queue, Node{i, j, k})
				visited[idx] = true
				comp[idx] = next
				for len(queue) > 0 {
					cur := queue[len(queue)-1]
					queue = queue[:len(queue)-1]
					for _, nb := range neighbors(dims, cur) {
						nidx := dims.Index(nb.I, nb.J, nb.K)
						if occluded[nidx] || visited[nidx] || obstructed(cur, nb) {
							continue
						}
						visited[nidx] = true
						comp[nidx] = next
						queue = append(queue, nb)
					}
				}
				next++
			}
		}
	}
	return comp
}

func neighbors(dims Dims, n Node) []Node {
	out := make([]Node, 0, 6)
	if n.I+1 < dims.Nx {
		out = append(out, Node{n.I + 1, n.J, n.K})
	}
	if n.I-1 >= 0 {
		out = append(out, Node{n.I - 1, n.J, n.K})
	}
	if n.J+1 < dims.Ny {
		out = append(out, Node{n.I, n.J + 1, n.K})
	}
	if n.J-1 >= 0 {
		out = append(out, Node{n.I, n.J - 1, n.K})
	}
	if n.K+1 < dims.Nz {
		out = append(out, Node{n.I, n.J, n.K + 1})
	}
	if n.K-1 >= 0 {
		out = append(out, Node{n.I, n.J, n.K - 1})
	}
	return out
}

// Renumber maps raw positive component ids to the named palette: 1 for
// any component touching an inlet/farfield boundary
// (inlet takes priority over outlet, matching "any color seen at any
// inlet ghost is identified with color 1"), 2 for outlet-touching
// components, and a distinct negative integer for every remaining
// ("enclosed pocket") component. Occluded nodes (component 0) stay 0.
func Renumber(comp []int, touchesInlet, touchesOutlet map[int]bool) []int {
	final := make(map[int]int)
	nextEnclosed := -1
	for _, c := range comp {
		if c == 0 {
			continue
		}
		if _, ok := final[c]; ok {
			continue
		}
		switch {
		case touchesInlet[c]:
			final[c] = 1
		case touchesOutlet[c]:
			final[c] = 2
		default:
			final[c] = nextEnclosed
			nextEnclosed--
		}
	}
	out := make([]int, len(comp))
	for idx, c := range comp {
		if c != 0 {
			out[idx] = final[c]
		}
	}
	return out
}

// GlobalMaxColor agrees, across every rank, on the largest raw
// component id assigned anywhere, via a MAX-reduction. Callers use it
// to size a global presence vector before exchanging which colors
// touch which boundary type.
func GlobalMaxColor(world *spmd.World, rank int, localMax int) int {
	return int(world.Allreduce(rank, float64(localMax), spmd.Max))
}
