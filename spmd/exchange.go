package spmd

import "github.com/notargets/m2c/grid"

// FieldSet is the per-rank collection of grid.Field[T] pointers that
// together cover one global field across all ranks, plus the neighbor
// topology needed to copy ghost layers between them. The ghost exchange
// run when a write scope is released is an insert collective: after it
// returns, every rank's ghost copies hold the values its neighbors most
// recently wrote to their owned cells.
type FieldSet[T any] struct {
	Fields []*grid.Field[T] // one per rank, same length as World.NP
	Procs  [3]int           // process grid shape used by grid.Decompose3D
	world  *World
}

// NewFieldSet builds one grid.Field[T] per rank from subdomains produced
// by grid.Decompose3D, and wires each field's write-scope Release to call
// exchangeOne for that rank.
func NewFieldSet[T any](name string, world *World, subdomains []grid.Subdomain, procs [3]int) *FieldSet[T] {
	fs := &FieldSet[T]{Procs: procs, world: world}
	fs.Fields = make([]*grid.Field[T], len(subdomains))
	for r, sub := range subdomains {
		fs.Fields[r] = grid.NewField[T](name, sub)
	}
	for r := range fs.Fields {
		r := r
		fs.Fields[r].SetExchangeHook(func() {
			fs.exchangeOne(r)
		})
	}
	return fs
}

// exchangeOne fills r's own inner-ghost region from the owned boundary
// layers of every neighbor that shares a face; it does not write into the
// neighbors' fields. Every rank runs it for itself, so after all ranks
// have released their scopes both sides of each face are filled. Because all
// ranks live in one process's memory (goroutines, not real MPI workers),
// the copy is direct rather than wire-serialized: the two sides of the
// exchange are just two Field values, so a plain copy suffices.
//
// Every rank's write scope fires this hook independently, so the world
// barrier below is load-bearing: it holds each rank here until all NP
// ranks have finished writing their owned cells for this step, so the
// reads of neighbor.At below never race a neighbor still mid-write.
func (fs *FieldSet[T]) exchangeOne(r int) {
	fs.world.Barrier()
	px, py, pz := grid.RankCoord(r, fs.Procs)
	me := fs.Fields[r]
	sub := me.Subdomain()

	type nb struct {
		dpx, dpy, dpz int
	}
	neighbors := []nb{
		{-1, 0, 0}, {1, 0, 0},
		{0, -1, 0}, {0, 1, 0},
		{0, 0, -1}, {0, 0, 1},
	}
	for _, n := range neighbors {
		nx, ny, nz := px+n.dpx, py+n.dpy, pz+n.dpz
		if nx < 0 || nx >= fs.Procs[0] || ny < 0 || ny >= fs.Procs[1] || nz < 0 || nz >= fs.Procs[2] {
			continue // outer (physical) boundary: no neighbor to exchange with
		}
		nr := grid.RankIndex(nx, ny, nz, fs.Procs)
		other := fs.Fields[nr]
		copyGhostLayer(me, other, n.dpx, n.dpy, n.dpz, sub)
	}
}

// copyGhostLayer copies the layer of `src` cells owned by `src` that sit
// just inside `dst`'s boundary on the (dpx,dpy,dpz) side into `dst`'s
// matching ghost layer, for every owned index on the other two axes.
func copyGhostLayer[T any](dst, src *grid.Field[T], dpx, dpy, dpz int, dstSub grid.Subdomain) {
	var dAxis grid.Axis
	switch {
	case dpx != 0:
		dAxis = grid.X
	case dpy != 0:
		dAxis = grid.Y
	default:
		dAxis = grid.Z
	}
	ghost := dstSub.Ghost
	srcSub := src.Subdomain()

	var dstRange, srcRange grid.Bounds
	if dAxis == grid.X && dpx < 0 || dAxis == grid.Y && dpy < 0 || dAxis == grid.Z && dpz < 0 {
		dstRange = grid.Bounds{Lo: dstSub.Owned[dAxis].Lo - ghost, Hi: dstSub.Owned[dAxis].Lo}
		srcRange = grid.Bounds{Lo: srcSub.Owned[dAxis].Hi - ghost, Hi: srcSub.Owned[dAxis].Hi}
	} else {
		dstRange = grid.Bounds{Lo: dstSub.Owned[dAxis].Hi, Hi: dstSub.Owned[dAxis].Hi + ghost}
		srcRange = grid.Bounds{Lo: srcSub.Owned[dAxis].Lo, Hi: srcSub.Owned[dAxis].Lo + ghost}
	}

	oy := dstSub.Owned[otherAxis1(dAxis)]
	oz := dstSub.Owned[otherAxis2(dAxis)]

	n := dstRange.Len()
	for b := 0; b < oz.Len(); b++ {
		for a := 0; a < oy.Len(); a++ {
			for d := 0; d < n; d++ {
				di, dj, dk := composeIndex(dAxis, dstRange.Lo+d, oy.Lo+a, oz.Lo+b)
				si, sj, sk := composeIndex(dAxis, srcRange.Lo+d, oy.Lo+a, oz.Lo+b)
				dst.SetRaw(di, dj, dk, src.At(si, sj, sk))
			}
		}
	}
}

func otherAxis1(a grid.Axis) grid.Axis {
	switch a {
	case grid.X:
		return grid.Y
	case grid.Y:
		return grid.X
	default:
		return grid.X
	}
}

func otherAxis2(a grid.Axis) grid.Axis {
	switch a {
	case grid.X:
		return grid.Z
	case grid.Y:
		return grid.Z
	default:
		return grid.Y
	}
}

func composeIndex(axis grid.Axis, along, b1, b2 int) (i, j, k int) {
	switch axis {
	case grid.X:
		return along, b1, b2
	case grid.Y:
		return b1, along, b2
	default:
		return b1, b2, along
	}
}
